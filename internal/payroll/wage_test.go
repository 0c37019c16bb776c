package payroll_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll/internal/payroll"
)

// fixedRandom always returns the same index and counts the draws.
type fixedRandom struct {
	index int
	draws int
}

func (f *fixedRandom) IntN(n int) int {
	f.draws++
	return f.index % n
}

func TestDailyWages(t *testing.T) {
	wages := payroll.DailyWages()

	require.Len(t, wages, 12)
	assert.Equal(t, 150, wages[0])
	assert.Equal(t, 260, wages[len(wages)-1])
	for i := 1; i < len(wages); i++ {
		assert.Equal(t, 10, wages[i]-wages[i-1])
	}
}

func TestAttendanceDays_RoundsToOneDecimal(t *testing.T) {
	assert.Equal(t, 18.7, payroll.AttendanceDays(2800, 150))
	assert.Equal(t, 28.0, payroll.AttendanceDays(5600, 200))
	assert.Equal(t, 14.0, payroll.AttendanceDays(4900, 350))
	assert.Equal(t, 0.0, payroll.AttendanceDays(0, 150))
}

func TestDecompose_ReferenceSalary(t *testing.T) {
	rnd := &fixedRandom{}
	for i := 0; i < 10; i++ {
		split := payroll.Decompose(4900, rnd)
		assert.Equal(t, 350, split.DailyWage)
		assert.Equal(t, 14.0, split.AttendanceDays)
	}
	assert.Zero(t, rnd.draws, "reference salary must not sample")
}

func TestDecompose_2800_IsValidAcrossSeeds(t *testing.T) {
	valid := map[int]bool{}
	for _, w := range payroll.DailyWages() {
		valid[w] = true
	}

	for seed := uint64(0); seed < 500; seed++ {
		rnd := rand.New(rand.NewPCG(seed, seed*31+7))
		split := payroll.Decompose(2800, rnd)

		assert.True(t, valid[split.DailyWage], "seed %d wage %d", seed, split.DailyWage)
		assert.Equal(t, payroll.AttendanceDays(2800, split.DailyWage), split.AttendanceDays)
		assert.LessOrEqual(t, split.AttendanceDays, payroll.MaxAttendanceDays)
	}
}

func TestDecompose_FirstAcceptedDrawWins(t *testing.T) {
	// index 5 -> 200
	rnd := &fixedRandom{index: 5}
	split := payroll.Decompose(3000, rnd)

	assert.Equal(t, 200, split.DailyWage)
	assert.Equal(t, 15.0, split.AttendanceDays)
	assert.Equal(t, 1, rnd.draws)
}

func TestDecompose_FallsBackToScanAfterBoundedDraws(t *testing.T) {
	// index 0 -> 150 never fits 5600 (37.3 days)
	rnd := &fixedRandom{index: 0}
	split := payroll.Decompose(5600, rnd)

	assert.Equal(t, 200, split.DailyWage)
	assert.Equal(t, 28.0, split.AttendanceDays)
	assert.Equal(t, 64, rnd.draws)
}

func TestDecompose_NoValidWageUsesLargest(t *testing.T) {
	rnd := &fixedRandom{index: 3}
	split := payroll.Decompose(20000, rnd)

	assert.Equal(t, payroll.MaxDailyWage, split.DailyWage)
	assert.Equal(t, 76.9, split.AttendanceDays)
}

func TestDecompose_NilRandomUsesDefault(t *testing.T) {
	split := payroll.Decompose(2800, nil)
	assert.LessOrEqual(t, split.AttendanceDays, payroll.MaxAttendanceDays)
}
