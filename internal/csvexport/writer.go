package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"payroll/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"序号",
	"姓名",
	"工种",
	"开户行名称",
	"银行卡号码",
	"电话号码",
	"身份证号码",
	"日工资",
	"出勤天数",
	"出勤工资",
	"工资属期",
	"制表时间",
}

// Writer wraps csv.Writer for exporting salary snapshots as CSV.
type Writer struct {
	csv *csv.Writer
	loc *time.Location
}

// NewWriter creates a Writer that writes CSV to w. Sheet timestamps are formatted in loc.
func NewWriter(w io.Writer, loc *time.Location) *Writer {
	if loc == nil {
		loc = time.Local
	}
	return &Writer{csv: csv.NewWriter(w), loc: loc}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteSnapshots converts a sheet's snapshots to CSV rows and writes them.
func (w *Writer) WriteSnapshots(rows []domain.SalarySnapshot) error {
	for i := range rows {
		if err := w.csv.Write(w.snapshotToRow(i, &rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// snapshotToRow converts one snapshot to a row. Long digit strings get a leading tab so
// spreadsheet programs keep them as text.
func (w *Writer) snapshotToRow(i int, s *domain.SalarySnapshot) []string {
	index := s.RowIndex
	if index == 0 {
		index = i + 1
	}
	return []string{
		strconv.Itoa(index),
		s.Name,
		string(s.Job),
		s.Address,
		asText(s.Bankcard),
		asText(s.Phone),
		asText(s.Identity),
		strconv.Itoa(s.DailyWage),
		strconv.FormatFloat(s.AttendanceDays, 'f', -1, 64),
		strconv.Itoa(s.Salary),
		s.SalaryDate,
		time.UnixMilli(s.SheetDate).In(w.loc).Format("2006-01-02 15:04:05"),
	}
}

func asText(s string) string {
	if s == "" {
		return ""
	}
	return "\t" + s
}

// unsafeFilename matches characters that are not letters, digits, hyphen, or underscore.
var unsafeFilename = regexp.MustCompile(`[^\p{L}\p{N}_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a pay-period label for use in Content-Disposition.
// Replaces unsafe chars with _, collapses consecutive underscores, and truncates
// to 100 bytes without splitting a rune.
func SanitizeFilename(name string) string {
	s := unsafeFilename.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		cut := 0
		for i := range s {
			if i > 100 {
				break
			}
			cut = i
		}
		s = s[:cut]
	}
	return s
}

// BuildFilename returns a sanitized filename for Content-Disposition header.
// Format: 工资表_{salary_date}_{YYYY-MM-DD}.csv
func BuildFilename(salaryDate string, sheetDate int64) string {
	date := time.UnixMilli(sheetDate).Format("2006-01-02")
	if label := SanitizeFilename(salaryDate); label != "" {
		return fmt.Sprintf("%s_%s_%s.csv", domain.SheetTitle, label, date)
	}
	return fmt.Sprintf("%s_%s.csv", domain.SheetTitle, date)
}
