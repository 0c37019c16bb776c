package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"payroll/internal/domain"
	"payroll/internal/service"
	"payroll/mocks"
)

// seqRandom returns the given draws in order, then repeats the last one.
type seqRandom struct {
	draws []int
	i     int
}

func (r *seqRandom) IntN(n int) int {
	v := r.draws[len(r.draws)-1]
	if r.i < len(r.draws) {
		v = r.draws[r.i]
		r.i++
	}
	return v % n
}

type sheetDeps struct {
	workers  *mocks.MockWorkerRepo
	salaries *mocks.MockSalaryRepo
	renderer *mocks.MockSheetRenderer
	archive  *mocks.MockArchive
	svc      service.SheetService
	now      time.Time
}

func newSheetDeps() *sheetDeps {
	d := &sheetDeps{
		workers:  new(mocks.MockWorkerRepo),
		salaries: new(mocks.MockSalaryRepo),
		renderer: new(mocks.MockSheetRenderer),
		archive:  new(mocks.MockArchive),
		now:      time.Date(2026, 3, 31, 10, 0, 0, 0, time.UTC),
	}
	d.renderer.On("ContentType").Return(domain.XLSXContentType).Maybe()
	d.renderer.On("Extension").Return(".xlsx").Maybe()
	d.svc = service.NewSheetServiceWithRandom(d.workers, d.salaries, d.renderer, d.archive,
		service.SheetServiceConfig{Issuer: "发放单位：测试"}, &seqRandom{draws: []int{5}}, func() time.Time { return d.now })
	return d
}

func TestSheetService_Generate(t *testing.T) {
	d := newSheetDeps()
	idA, idB := uuid.New(), uuid.New()
	sheetDate := d.now.UnixMilli()

	d.renderer.On("Render", mock.MatchedBy(func(s *domain.Sheet) bool {
		return s.Total == 7900 && len(s.Rows) == 2 && s.Issuer == "发放单位：测试" && s.SalaryDate == "2026年3月"
	})).Return([]byte("xlsx-bytes"), nil)
	d.workers.On("Update", mock.Anything, mock.MatchedBy(func(w *domain.Worker) bool { return w.ID == idA && w.Salary == 4900 })).Return(nil)
	d.workers.On("Update", mock.Anything, mock.MatchedBy(func(w *domain.Worker) bool { return w.ID == idB })).Return(domain.ErrNotFound)
	d.salaries.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.SalarySnapshot) bool {
		return s.SheetDate == sheetDate && s.Name == "甲" && s.DailyWage == 350 && s.AttendanceDays == 14 && s.RowIndex == 1
	})).Return(nil).Once()
	d.salaries.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.SalarySnapshot) bool {
		return s.SheetDate == sheetDate && s.Name == "乙" && s.DailyWage == 200 && s.AttendanceDays == 15 &&
			s.Job == domain.JobGeneralWorker && s.RowIndex == 2
	})).Return(nil).Once()
	d.archive.On("Put", mock.Anything, mock.Anything).Return("", nil)

	out, err := d.svc.Generate(context.Background(), service.GenerateSheetInput{
		SalaryDate: "2026年3月",
		Workers: []service.SheetWorkerInput{
			{ID: idA, Name: "甲", Salary: 4900},
			{ID: idB, Name: "乙", Salary: 3000},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx-bytes"), out.Content)
	assert.Equal(t, 7900, out.Total)
	assert.Equal(t, sheetDate, out.SheetDate)
	assert.Equal(t, domain.XLSXContentType, out.ContentType)
	assert.Contains(t, out.FileName, ".xlsx")
	d.salaries.AssertExpectations(t)
	d.workers.AssertExpectations(t)
}

func TestSheetService_Generate_NoWorkers(t *testing.T) {
	d := newSheetDeps()

	_, err := d.svc.Generate(context.Background(), service.GenerateSheetInput{SalaryDate: "x"})

	assert.ErrorIs(t, err, domain.ErrNoSheetWorkers)
	d.renderer.AssertNotCalled(t, "Render", mock.Anything)
}

func TestSheetService_Generate_RenderFailure_PersistsNothing(t *testing.T) {
	d := newSheetDeps()
	d.renderer.On("Render", mock.Anything).Return(nil, domain.ErrSheetRenderFailed)

	_, err := d.svc.Generate(context.Background(), service.GenerateSheetInput{
		Workers: []service.SheetWorkerInput{{ID: uuid.New(), Salary: 4900}},
	})

	assert.ErrorIs(t, err, domain.ErrSheetRenderFailed)
	d.workers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	d.salaries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSheetService_Generate_StoreErrorAborts(t *testing.T) {
	d := newSheetDeps()
	d.renderer.On("Render", mock.Anything).Return([]byte("x"), nil)
	d.workers.On("Update", mock.Anything, mock.Anything).Return(errors.New("deadlock"))

	_, err := d.svc.Generate(context.Background(), service.GenerateSheetInput{
		Workers: []service.SheetWorkerInput{{ID: uuid.New(), Salary: 4900}},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadlock")
	d.salaries.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSheetService_Generate_ArchiveFailureIgnored(t *testing.T) {
	d := newSheetDeps()
	d.renderer.On("Render", mock.Anything).Return([]byte("x"), nil)
	d.salaries.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.archive.On("Put", mock.Anything, mock.Anything).Return("", errors.New("bucket gone"))

	out, err := d.svc.Generate(context.Background(), service.GenerateSheetInput{
		Workers: []service.SheetWorkerInput{{Name: "无编号", Salary: 4900}},
	})

	require.NoError(t, err)
	assert.Equal(t, 4900, out.Total)
	d.workers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestSheetService_Latest(t *testing.T) {
	d := newSheetDeps()
	d.salaries.On("LatestSheetDate", mock.Anything).Return(int64(1700), nil)
	d.salaries.On("ListBySheetDate", mock.Anything, int64(1700)).Return([]domain.SalarySnapshot{
		{SheetDate: 1700, SalaryDate: "2026年2月", Name: "甲"},
	}, nil)

	latest, err := d.svc.Latest(context.Background())

	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, int64(1700), latest.SheetDate)
	assert.Equal(t, "2026年2月", latest.SalaryDate)
	assert.Len(t, latest.Rows, 1)
}

func TestSheetService_Latest_None(t *testing.T) {
	d := newSheetDeps()
	d.salaries.On("LatestSheetDate", mock.Anything).Return(int64(0), domain.ErrNotFound)

	latest, err := d.svc.Latest(context.Background())

	require.NoError(t, err)
	assert.Nil(t, latest)
}
