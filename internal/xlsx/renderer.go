// Package xlsx renders payroll sheets as Excel workbooks.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"payroll/internal/domain"
	"payroll/internal/port"
)

const (
	firstCol   = "A"
	lastCol    = "K"
	headerRow  = 3
	firstData  = headerRow + 1
	signHeight = 30
)

var columnWidths = []float64{10, 15, 15, 30, 25, 15, 25, 15, 15, 15, 15}

// signatureCells are the merged ranges that hold the signature labels, in label order.
var signatureCells = [][2]string{{"A", "B"}, {"E", "F"}, {"G", "H"}}

// Renderer produces the payroll workbook.
type Renderer struct{}

// NewRenderer creates an excelize-backed SheetRenderer.
func NewRenderer() port.SheetRenderer {
	return &Renderer{}
}

func (r *Renderer) ContentType() string { return domain.XLSXContentType }

func (r *Renderer) Extension() string { return ".xlsx" }

// Render lays the sheet out as: merged title, issuer and pay-period line, header row,
// one row per worker, a total row, and the signature line.
func (r *Renderer) Render(sheet *domain.Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	name := sheet.Title
	if name == "" {
		name = domain.SheetTitle
	}
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, fmt.Errorf("%w: naming sheet: %v", domain.ErrSheetRenderFailed, err)
	}

	st, err := newStyles(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSheetRenderFailed, err)
	}

	l := &layout{f: f, sheet: name}
	for i, w := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		l.do(func() error { return f.SetColWidth(name, col, col, w) })
	}

	// Title and issuer block.
	l.merged("A1", "K1", name, st.title)
	l.merged("A2", "E2", sheet.Issuer, st.subtitle)
	l.merged("F2", "K2", "工资属期: "+sheet.SalaryDate, st.subtitle)

	headers := make([]interface{}, len(domain.SheetHeaders))
	for i, h := range domain.SheetHeaders {
		headers[i] = h
	}
	l.row(headerRow, headers, st.header)

	for i := range sheet.Rows {
		row := &sheet.Rows[i]
		l.row(firstData+i, []interface{}{
			row.Index,
			row.Name,
			string(row.Job),
			row.Address,
			row.Bankcard,
			row.Phone,
			row.Identity,
			row.DailyWage,
			row.AttendanceDays,
			row.AttendanceSalary,
			row.Signature,
		}, st.body)
	}

	totalRow := firstData + len(sheet.Rows)
	l.row(totalRow, []interface{}{domain.SheetTotalLabel, "", "", "", "", "", "", "", "", sheet.Total, ""}, st.total)
	l.do(func() error { return f.MergeCell(name, cell("A", totalRow), cell("B", totalRow)) })

	signRow := totalRow + 1
	l.do(func() error { return f.SetRowHeight(name, signRow, signHeight) })
	for i, label := range sheet.Signatures {
		if i >= len(signatureCells) {
			break
		}
		span := signatureCells[i]
		l.merged(cell(span[0], signRow), cell(span[1], signRow), label, st.signature)
	}

	if l.err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSheetRenderFailed, l.err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: writing workbook: %v", domain.ErrSheetRenderFailed, err)
	}
	return buf.Bytes(), nil
}

// layout records the first excelize error so the rendering steps read top to bottom.
type layout struct {
	f     *excelize.File
	sheet string
	err   error
}

func (l *layout) do(fn func() error) {
	if l.err != nil {
		return
	}
	l.err = fn()
}

func (l *layout) merged(from, to string, value interface{}, style int) {
	l.do(func() error { return l.f.MergeCell(l.sheet, from, to) })
	l.do(func() error { return l.f.SetCellValue(l.sheet, from, value) })
	l.do(func() error { return l.f.SetCellStyle(l.sheet, from, to, style) })
}

func (l *layout) row(n int, values []interface{}, style int) {
	l.do(func() error { return l.f.SetSheetRow(l.sheet, cell(firstCol, n), &values) })
	l.do(func() error { return l.f.SetCellStyle(l.sheet, cell(firstCol, n), cell(lastCol, n), style) })
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

type styles struct {
	title     int
	subtitle  int
	header    int
	body      int
	total     int
	signature int
}

func newStyles(f *excelize.File) (*styles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	left := &excelize.Alignment{Horizontal: "left", Vertical: "center"}
	bold := func(size float64) *excelize.Font { return &excelize.Font{Bold: true, Size: size} }

	st := &styles{}
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&st.title, &excelize.Style{Font: bold(24), Alignment: center, Border: border}},
		{&st.subtitle, &excelize.Style{Font: bold(12), Alignment: left, Border: border}},
		{&st.header, &excelize.Style{Font: bold(12), Alignment: center, Border: border}},
		{&st.body, &excelize.Style{Border: border}},
		{&st.total, &excelize.Style{Font: bold(12), Alignment: center, Border: border}},
		{&st.signature, &excelize.Style{Font: bold(12), Alignment: left}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return nil, fmt.Errorf("creating style: %w", err)
		}
		*d.dst = id
	}
	return st, nil
}
