package export

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/ventworks/quotecalc/internal/format"
)

// GeneratePDF renders the quote summary to PDF bytes using maroto/v2.
func GeneratePDF(s Summary) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, s)
	addPDFSection(m, "Costs", s.CostLines)
	addPDFSection(m, "Totals", s.TotalLines)
	addPDFGrandTotal(m, s.GrandTotal)
	addPDFSection(m, "Profit", s.ProfitLines)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate quote pdf: %w", err)
	}

	return doc.GetBytes(), nil
}

func addPDFHeader(m core.Maroto, s Summary) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(s.Title, props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Reference: %s", s.Reference), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", s.Date), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	m.AddRows(row.New(4))
}

func addPDFSection(m core.Maroto, heading string, lines []Line) {
	if len(lines) == 0 {
		return
	}

	headingBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(heading, props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Left,
					Color: &props.Color{Red: 255, Green: 255, Blue: 255},
				}),
			).WithStyle(&props.Cell{BackgroundColor: headingBg}),
		),
	)

	for _, line := range lines {
		m.AddRows(
			row.New(7).Add(
				col.New(8).Add(
					text.New(line.Label, props.Text{Size: 8, Align: align.Left}),
				),
				col.New(4).Add(
					text.New(format.USD(line.Amount), props.Text{Size: 8, Align: align.Right}),
				),
			),
		)
	}

	m.AddRows(row.New(3))
}

func addPDFGrandTotal(m core.Maroto, total float64) {
	totalBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	totalCell := &props.Cell{BackgroundColor: totalBg}

	m.AddRows(
		row.New(10).Add(
			col.New(8).Add(
				text.New("GRAND TOTAL", props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			).WithStyle(totalCell),
			col.New(4).Add(
				text.New(format.USD(total), props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Align: align.Right,
				}),
			).WithStyle(totalCell),
		),
	)

	m.AddRows(row.New(3))
}
