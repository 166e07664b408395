package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GeneratePDF creates the customer-facing PDF of a costed sheet using
// maroto/v2: item rows with quantities and final prices, a subtotal per
// section and the grand total in the output currency. Internal cost and
// margin columns stay out of this document.
func GeneratePDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, data)
	addPDFTableHeader(m, data.OutputCurrency)

	for _, section := range data.Sections {
		addPDFSectionRow(m, section)
		for _, r := range section.Rows {
			addPDFItemRow(m, r)
		}
		addPDFSubtotalRow(m, section)
	}

	addPDFGrandTotal(m, data)
	addPDFFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addPDFHeader adds the title, project reference and date.
func addPDFHeader(m core.Maroto, data ExportData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(data.Title, props.Text{
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
				text.New(fmt.Sprintf("Project: %s", orNA(data.ProjectName)), props.Text{
					Size:  9,
					Align: align.Left,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", data.GeneratedDate), props.Text{
					Size:  9,
					Align: align.Right,
					Color: &props.Color{Red: 80, Green: 80, Blue: 80},
				}),
			),
		),
	)

	if data.CustomerReference != "" {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Customer Ref: %s", data.CustomerReference), props.Text{
						Size:  9,
						Align: align.Left,
						Color: &props.Color{Red: 80, Green: 80, Blue: 80},
					}),
				),
			),
		)
	}

	m.AddRows(row.New(4))
}

// addPDFTableHeader adds the column header row.
func addPDFTableHeader(m core.Maroto, currency string) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("#", headerText)).WithStyle(&headerCell),
			col.New(5).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Unit Price", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New(fmt.Sprintf("Total (%s)", currency), headerText)).WithStyle(&headerCell),
		),
	)
}

// addPDFSectionRow adds a section title band.
func addPDFSectionRow(m core.Maroto, section ExportSection) {
	bg := &props.Color{Red: 240, Green: 240, Blue: 240}
	cell := &props.Cell{BackgroundColor: bg}

	m.AddRows(
		row.New(7).Add(
			col.New(12).Add(
				text.New(section.SectionNumber+"  "+section.Title, props.Text{
					Size:  9,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			).WithStyle(cell),
		),
	)
}

// addPDFItemRow adds one line item row.
func addPDFItemRow(m core.Maroto, r ExportRow) {
	baseText := props.Text{Size: 7, Align: align.Center}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	desc := r.Description
	if r.Make != "" {
		desc += " (" + r.Make
		if r.ModelNumber != "" {
			desc += " " + r.ModelNumber
		}
		desc += ")"
	}

	m.AddRows(
		row.New(6).Add(
			col.New(1).Add(text.New(r.ItemNumber, baseText)),
			col.New(5).Add(text.New(desc, leftText)),
			col.New(1).Add(text.New(FormatQty(r.Quantity), rightText)),
			col.New(1).Add(text.New(r.Unit, baseText)),
			col.New(2).Add(text.New(FormatAmount(r.FinalUnitPriceDisplay), rightText)),
			col.New(2).Add(text.New(FormatAmount(r.FinalTotalPriceDisplay), rightText)),
		),
	)
}

// addPDFSubtotalRow adds the section subtotal.
func addPDFSubtotalRow(m core.Maroto, section ExportSection) {
	bg := &props.Color{Red: 248, Green: 248, Blue: 248}
	cell := &props.Cell{BackgroundColor: bg}
	style := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}

	m.AddRows(
		row.New(7).Add(
			col.New(10).Add(text.New("Sub-Total", style)).WithStyle(cell),
			col.New(2).Add(text.New(FormatAmount(section.SubtotalDisplay), style)).WithStyle(cell),
		),
	)
}

// addPDFGrandTotal adds the grand total band in the output currency.
func addPDFGrandTotal(m core.Maroto, data ExportData) {
	bg := &props.Color{Red: 196, Green: 30, Blue: 58}
	cell := &props.Cell{BackgroundColor: bg}
	style := props.Text{
		Size:  10,
		Style: fontstyle.Bold,
		Align: align.Right,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}

	m.AddRows(row.New(3))
	m.AddRows(
		row.New(9).Add(
			col.New(10).Add(
				text.New(fmt.Sprintf("GRAND TOTAL (%s)", data.OutputCurrency), style),
			).WithStyle(cell),
			col.New(2).Add(
				text.New(FormatAmount(data.GrandTotalDisplay), style),
			).WithStyle(cell),
		),
	)
}

// addPDFFooter adds the generated-date line and any missing-rate warning.
func addPDFFooter(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	if len(data.MissingRates) > 0 {
		m.AddRows(
			row.New(6).Add(
				col.New(12).Add(
					text.New(
						fmt.Sprintf("Warning: no exchange rate for %v; affected items were priced without conversion.", data.MissingRates),
						props.Text{
							Size:  7,
							Align: align.Left,
							Color: &props.Color{Red: 196, Green: 30, Blue: 58},
						},
					),
				),
			),
		)
	}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", data.GeneratedDate),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
