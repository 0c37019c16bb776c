package payroll

import "payroll/internal/domain"

// Header identifies one sheet generation event.
type Header struct {
	Issuer     string
	SalaryDate string
	SheetDate  int64
}

// Line pairs a sheet row with the snapshot that records it.
type Line struct {
	Row      domain.SheetRow
	Snapshot domain.SalarySnapshot
}

// Synthesize builds the sheet for workers, in order. Each worker's Salary is the total
// paid for the period. The total row is the sum of the input salaries.
func Synthesize(h Header, workers []domain.Worker, rnd Random) (*domain.Sheet, []Line) {
	sheet := &domain.Sheet{
		Title:      domain.SheetTitle,
		Issuer:     h.Issuer,
		SalaryDate: h.SalaryDate,
		SheetDate:  h.SheetDate,
		Rows:       make([]domain.SheetRow, 0, len(workers)),
		Signatures: append([]string(nil), domain.SheetSignatures...),
	}
	lines := make([]Line, 0, len(workers))

	for i := range workers {
		w := &workers[i]
		split := Decompose(w.Salary, rnd)
		job := domain.ClassifyJob(w.Salary)

		row := domain.SheetRow{
			Index:            i + 1,
			Name:             w.Name,
			Job:              job,
			Address:          w.Address,
			Bankcard:         w.Bankcard,
			Phone:            w.Phone,
			Identity:         w.Identity,
			DailyWage:        split.DailyWage,
			AttendanceDays:   split.AttendanceDays,
			AttendanceSalary: w.Salary,
		}
		sheet.Rows = append(sheet.Rows, row)
		sheet.Total += w.Salary

		lines = append(lines, Line{
			Row: row,
			Snapshot: domain.SalarySnapshot{
				SheetDate:      h.SheetDate,
				RowIndex:       row.Index,
				SalaryDate:     h.SalaryDate,
				Identity:       w.Identity,
				Name:           w.Name,
				Phone:          w.Phone,
				Bankcard:       w.Bankcard,
				Address:        w.Address,
				Salary:         w.Salary,
				DailyWage:      split.DailyWage,
				AttendanceDays: split.AttendanceDays,
				Job:            job,
			},
		})
	}
	return sheet, lines
}
