package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mmghannam/scip-routing/internal/orchestrator"
)

func sampleSolution() *orchestrator.Solution {
	return &orchestrator.Solution{
		ObjVal:        42.5,
		Status:        "optimal",
		NodesExplored: 3,
		Duration:      250 * time.Millisecond,
		Routes: []orchestrator.Route{
			{Path: []int{0, 1, 2, 0}, Cost: 25.0, Value: 1},
			{Path: []int{0, 3, 0}, Cost: 17.5, Value: 1},
		},
	}
}

func TestExcel_ProducesSummaryAndRoutesSheets(t *testing.T) {
	data, err := Excel("s1", sampleSolution())
	if err != nil {
		t.Fatalf("Excel() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty workbook bytes")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to reopen generated workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	wantSheets := map[string]bool{"Summary": false, "Routes": false}
	for _, s := range sheets {
		if _, ok := wantSheets[s]; ok {
			wantSheets[s] = true
		}
	}
	for name, found := range wantSheets {
		if !found {
			t.Errorf("expected sheet %q to be present, got sheets %v", name, sheets)
		}
	}

	val, err := f.GetCellValue("Routes", "B2")
	if err != nil {
		t.Fatalf("GetCellValue error = %v", err)
	}
	if val != "0 -> 1 -> 2 -> 0" {
		t.Errorf("Routes!B2 = %q, want %q", val, "0 -> 1 -> 2 -> 0")
	}
}

func TestPDF_ProducesNonEmptyDocument(t *testing.T) {
	data, err := PDF("s1", sampleSolution())
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty PDF bytes")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("expected PDF bytes to start with %%PDF header")
	}
}
