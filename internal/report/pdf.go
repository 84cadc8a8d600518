package report

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mmghannam/scip-routing/internal/orchestrator"
)

var (
	headerColor = &props.Color{Red: 44, Green: 62, Blue: 80}

	titleStyle = props.Text{Size: 20, Style: fontstyle.Bold, Align: align.Center, Color: headerColor}
	h2Style    = props.Text{Size: 13, Style: fontstyle.Bold, Color: headerColor, Top: 4}
	smallStyle = props.Text{Size: 8, Color: &props.Color{Red: 127, Green: 140, Blue: 141}}
	boldStyle  = props.Text{Size: 10, Style: fontstyle.Bold}
	plainStyle = props.Text{Size: 10}
)

// PDF renders sol as a one-page PDF summary plus a route table.
func PDF(instanceName string, sol *orchestrator.Solution) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)
	addHeader(m, instanceName)
	addSummary(m, sol)
	addRoutes(m, sol)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, instanceName string) {
	m.AddRow(12, text.NewCol(12, "VRPTW Solve Report", titleStyle))
	m.AddRow(6,
		text.NewCol(6, fmt.Sprintf("Instance: %s", instanceName), smallStyle),
		text.NewCol(6, fmt.Sprintf("Generated: %s", time.Now().UTC().Format("2006-01-02 15:04:05")),
			props.Text{Size: 8, Align: align.Right}),
	)
}

func addSummary(m core.Maroto, sol *orchestrator.Solution) {
	m.AddRow(8, text.NewCol(12, "Summary", h2Style))
	m.AddRow(6,
		text.NewCol(3, fmt.Sprintf("Status: %s", sol.Status), plainStyle),
		text.NewCol(3, fmt.Sprintf("Objective: %.2f", sol.ObjVal), plainStyle),
		text.NewCol(3, fmt.Sprintf("Vehicles: %d", len(sol.Routes)), plainStyle),
		text.NewCol(3, fmt.Sprintf("Nodes: %d", sol.NodesExplored), plainStyle),
	)
}

func addRoutes(m core.Maroto, sol *orchestrator.Solution) {
	m.AddRow(8, text.NewCol(12, "Routes", h2Style))
	m.AddRow(6,
		text.NewCol(1, "#", boldStyle),
		text.NewCol(8, "Path", boldStyle),
		text.NewCol(3, "Cost", boldStyle),
	)
	for i, route := range sol.Routes {
		m.AddRow(6,
			text.NewCol(1, fmt.Sprintf("%d", i+1), plainStyle),
			text.NewCol(8, pathString(route.Path), plainStyle),
			text.NewCol(3, fmt.Sprintf("%.2f", route.Cost), plainStyle),
		)
	}
}
