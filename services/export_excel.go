package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateExcel creates a bill-of-material workbook from the given
// ExportData and returns the file contents as a byte slice. The layout
// groups columns into an item-details block, a supplier-cost block, a
// cost-in-base block and a quoted-price block, with a subtotal row per
// section and a grand-total row at the bottom.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := data.Title
	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "BOM"
	}

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R"}
	lastCol := columns[len(columns)-1]

	widths := []float64{10, 45, 14, 14, 7, 7, 14, 16, 14, 6, 12, 7, 12, 14, 10, 12, 14, 16}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
	})
	if err != nil {
		return nil, fmt.Errorf("create label style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	sectionStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("create section style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 9},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	subtotalStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 10},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtotal style: %w", err)
	}

	grandStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#C41E3A"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create grand total style: %w", err)
	}

	// ── Header block ────────────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", "J1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheetName, "A1", "J1", titleStyle)

	f.SetCellValue(sheetName, "A2", "Project:")
	f.SetCellStyle(sheetName, "A2", "A2", labelStyle)
	f.SetCellValue(sheetName, "B2", sanitizeExcelCell(orNA(data.ProjectName)))
	f.SetCellValue(sheetName, "A3", "Cust Ref:")
	f.SetCellStyle(sheetName, "A3", "A3", labelStyle)
	f.SetCellValue(sheetName, "B3", sanitizeExcelCell(orNA(data.CustomerReference)))
	f.SetCellValue(sheetName, "A4", "Date:")
	f.SetCellStyle(sheetName, "A4", "A4", labelStyle)
	f.SetCellValue(sheetName, "B4", data.GeneratedDate)

	// Sheet parameters and exchange rates on the right of the header.
	params := []struct {
		label string
		value string
	}{
		{"Margin", data.Defaults.Margin.String()},
		{"Discount", data.Defaults.Discount.String()},
		{"Shipping", data.Defaults.Shipping.String()},
		{"Customs", data.Defaults.Customs.String()},
		{"Finances", data.Defaults.Finances.String()},
		{"Installation", data.Defaults.Installation.String()},
	}
	for i, p := range params {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheetName, "L"+row, p.label)
		f.SetCellStyle(sheetName, "L"+row, "L"+row, labelStyle)
		f.SetCellValue(sheetName, "M"+row, p.value)
	}

	f.SetCellValue(sheetName, "O2", "EXCHANGE RATES")
	f.SetCellStyle(sheetName, "O2", "O2", labelStyle)
	rateRow := 3
	for _, r := range data.Rates {
		rowStr := fmt.Sprintf("%d", rateRow)
		f.SetCellValue(sheetName, "O"+rowStr, r.Code)
		f.SetCellStyle(sheetName, "O"+rowStr, "O"+rowStr, labelStyle)
		rate, _ := r.Rate.Float64()
		f.SetCellValue(sheetName, "P"+rowStr, rate)
		rateRow++
	}

	// ── Column headers ──────────────────────────────────────────────────

	headerRow := rateRow + 1
	if headerRow < 9 {
		headerRow = 9
	}
	headers := []string{
		"Item No", "Description", "Make", "Model", "Qty", "Unit",
		"Vendor", "System",
		"Base Cost", "Cur", "Unit Cost", "Rate", "Cost " + BaseCurrency,
		"Base Price " + BaseCurrency, "Add-on %",
		"Final Unit " + BaseCurrency, "Final Total " + BaseCurrency,
		"Total Cost " + BaseCurrency,
	}
	hdrStr := fmt.Sprintf("%d", headerRow)
	for i, h := range headers {
		f.SetCellValue(sheetName, columns[i]+hdrStr, h)
	}
	f.SetCellStyle(sheetName, "A"+hdrStr, lastCol+hdrStr, headerStyle)

	// ── Data rows ───────────────────────────────────────────────────────

	row := headerRow + 1
	for _, section := range data.Sections {
		rowStr := fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+rowStr, lastCol+rowStr); err != nil {
			return nil, fmt.Errorf("merge section row: %w", err)
		}
		f.SetCellValue(sheetName, "A"+rowStr, sanitizeExcelCell(section.SectionNumber+"  "+section.Title))
		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, sectionStyle)
		row++

		for _, r := range section.Rows {
			rowStr = fmt.Sprintf("%d", row)
			rateStr := r.ExchangeRate.String()
			if r.RateMissing {
				rateStr += " (missing)"
			}
			values := []any{
				sanitizeExcelCell(r.ItemNumber),
				sanitizeExcelCell(r.Description),
				sanitizeExcelCell(r.Make),
				sanitizeExcelCell(r.ModelNumber),
				FormatQty(r.Quantity),
				r.Unit,
				sanitizeExcelCell(r.VendorName),
				sanitizeExcelCell(r.System),
				FormatAmount(r.BaseUnitCost),
				r.SupplierCurrency,
				FormatAmount(r.UnitCost),
				rateStr,
				FormatAmount(r.UnitCostBase),
				FormatAmount(r.BaseUnitPrice),
				r.AddonPct.String(),
				FormatAmount(r.FinalUnitPrice),
				FormatAmount(r.FinalTotalPrice),
				FormatAmount(r.TotalCost),
			}
			for i, v := range values {
				f.SetCellValue(sheetName, columns[i]+rowStr, v)
			}
			f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
			row++
		}

		rowStr = fmt.Sprintf("%d", row)
		if err := f.MergeCell(sheetName, "A"+rowStr, "P"+rowStr); err != nil {
			return nil, fmt.Errorf("merge subtotal row: %w", err)
		}
		f.SetCellValue(sheetName, "A"+rowStr, "Sub-Total")
		f.SetCellStyle(sheetName, "A"+rowStr, "P"+rowStr, subtotalStyle)
		f.SetCellValue(sheetName, "Q"+rowStr, FormatAmount(section.Subtotal))
		f.SetCellStyle(sheetName, "Q"+rowStr, "Q"+rowStr, subtotalStyle)
		row++
	}

	// ── Grand total ─────────────────────────────────────────────────────

	rowStr := fmt.Sprintf("%d", row)
	if err := f.MergeCell(sheetName, "A"+rowStr, "P"+rowStr); err != nil {
		return nil, fmt.Errorf("merge grand total row: %w", err)
	}
	f.SetCellValue(sheetName, "A"+rowStr, fmt.Sprintf("GRAND TOTAL (%s)", data.OutputCurrency))
	f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, grandStyle)
	f.SetCellValue(sheetName, "Q"+rowStr, FormatAmount(data.GrandTotalDisplay))

	if len(data.MissingRates) > 0 {
		row += 2
		rowStr = fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "A"+rowStr,
			fmt.Sprintf("Warning: no exchange rate for %v; those items were priced without conversion.", data.MissingRates))
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
