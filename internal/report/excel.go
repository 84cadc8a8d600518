// Package report renders a solved orchestrator.Solution as an Excel
// workbook or a PDF document, for operators who want the route set outside
// the CLI's stdout/JSON output.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mmghannam/scip-routing/internal/orchestrator"
)

// Excel renders sol as an .xlsx workbook: a summary sheet and one "Routes"
// sheet listing every vehicle's path, cost, and LP value.
func Excel(instanceName string, sol *orchestrator.Solution) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	f.DeleteSheet("Sheet1")

	writeSummarySheet(f, instanceName, sol)
	writeRoutesSheet(f, sol)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, instanceName string, sol *orchestrator.Solution) {
	const sheet = "Summary"
	f.NewSheet(sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})

	f.SetCellValue(sheet, "A1", "VRPTW Solve Report")
	f.MergeCell(sheet, "A1", "B1")
	f.SetCellStyle(sheet, "A1", "B1", headerStyle)

	rows := [][2]any{
		{"Instance", instanceName},
		{"Status", sol.Status},
		{"Objective", sol.ObjVal},
		{"Vehicles Used", len(sol.Routes)},
		{"Nodes Explored", sol.NodesExplored},
		{"Duration", sol.Duration.String()},
		{"Generated", time.Now().UTC().Format(time.RFC3339)},
	}
	for i, r := range rows {
		row := i + 3
		f.SetCellValue(sheet, cellAddr("A", row), r[0])
		f.SetCellValue(sheet, cellAddr("B", row), r[1])
	}
	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "B", 28)
}

func writeRoutesSheet(f *excelize.File, sol *orchestrator.Solution) {
	const sheet = "Routes"
	f.NewSheet(sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	headers := []string{"#", "Path", "Cost", "LP Value"}
	for i, h := range headers {
		addr := cellAddr(string(rune('A'+i)), 1)
		f.SetCellValue(sheet, addr, h)
	}
	f.SetCellStyle(sheet, "A1", "D1", headerStyle)

	for i, route := range sol.Routes {
		row := i + 2
		f.SetCellValue(sheet, cellAddr("A", row), i+1)
		f.SetCellValue(sheet, cellAddr("B", row), pathString(route.Path))
		f.SetCellValue(sheet, cellAddr("C", row), route.Cost)
		f.SetCellValue(sheet, cellAddr("D", row), route.Value)
	}
	f.SetColWidth(sheet, "B", "B", 40)
}

func cellAddr(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func pathString(path []int) string {
	s := ""
	for i, v := range path {
		if i > 0 {
			s += " -> "
		}
		s += fmt.Sprintf("%d", v)
	}
	return s
}
