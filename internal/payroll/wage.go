// Package payroll derives the daily-wage breakdown and the sheet layout for a pay period.
package payroll

import (
	"math"
	"math/rand/v2"

	"payroll/internal/domain"
)

const (
	ReferenceDailyWage      = 350
	ReferenceAttendanceDays = 14.0

	MinDailyWage      = 150
	MaxDailyWage      = 260
	DailyWageStep     = 10
	MaxAttendanceDays = 28.0

	// maxDraws bounds the random search before the deterministic scan takes over.
	maxDraws = 64
)

// Random is the source used to sample daily wages.
type Random interface {
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }

// DefaultRandom samples from the process-wide generator.
var DefaultRandom Random = globalRandom{}

// Split is one (daily wage, attendance days) decomposition of a total salary.
type Split struct {
	DailyWage      int
	AttendanceDays float64
}

// DailyWages returns the candidate daily wages in ascending order.
func DailyWages() []int {
	wages := make([]int, 0, (MaxDailyWage-MinDailyWage)/DailyWageStep+1)
	for w := MinDailyWage; w <= MaxDailyWage; w += DailyWageStep {
		wages = append(wages, w)
	}
	return wages
}

// AttendanceDays is total/dailyWage rounded to one decimal place.
func AttendanceDays(total, dailyWage int) float64 {
	return math.Round(float64(total)/float64(dailyWage)*10) / 10
}

// Decompose picks a plausible daily wage for total and the attendance days it implies.
//
// The reference salary always maps to 350 x 14. Otherwise wages are drawn at random
// until one keeps attendance within MaxAttendanceDays. After maxDraws failed draws the
// wages are scanned in ascending order; when no wage fits, the largest wage is used and
// the attendance days exceed the ceiling.
func Decompose(total int, rnd Random) Split {
	if total == domain.BaselineSalary {
		return Split{DailyWage: ReferenceDailyWage, AttendanceDays: ReferenceAttendanceDays}
	}
	if rnd == nil {
		rnd = DefaultRandom
	}

	wages := DailyWages()
	for i := 0; i < maxDraws; i++ {
		w := wages[rnd.IntN(len(wages))]
		if days := AttendanceDays(total, w); days <= MaxAttendanceDays {
			return Split{DailyWage: w, AttendanceDays: days}
		}
	}

	for _, w := range wages {
		if days := AttendanceDays(total, w); days <= MaxAttendanceDays {
			return Split{DailyWage: w, AttendanceDays: days}
		}
	}
	return Split{DailyWage: MaxDailyWage, AttendanceDays: AttendanceDays(total, MaxDailyWage)}
}
