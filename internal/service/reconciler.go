package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"payroll/internal/domain"
	"payroll/internal/port"
)

// ReconcileResult is what one reconciliation batch produced.
type ReconcileResult struct {
	Workers       []domain.Worker `json:"workers"`
	ErrorMessages []string        `json:"error_messages"`
}

// Reconciler merges extracted candidates into the worker store.
type Reconciler interface {
	Reconcile(ctx context.Context, candidates []domain.Candidate) *ReconcileResult
}

type reconciler struct {
	repo port.WorkerRepository
	mu   sync.Mutex
}

// NewReconciler creates a Reconciler over the given repository.
func NewReconciler(repo port.WorkerRepository) Reconciler {
	return &reconciler{repo: repo}
}

// Reconcile processes candidates strictly in order; later candidates see the writes of
// earlier ones. Incomplete candidates and per-candidate store failures become diagnostics
// and never abort the batch.
func (r *reconciler) Reconcile(ctx context.Context, candidates []domain.Candidate) *ReconcileResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := &ReconcileResult{Workers: []domain.Worker{}, ErrorMessages: []string{}}
	for i := range candidates {
		c := candidates[i]
		c.Normalize()

		if !c.IsComplete() {
			result.ErrorMessages = append(result.ErrorMessages, IncompleteMessage(&c))
			continue
		}

		worker, err := r.upsert(ctx, &c)
		if err != nil {
			log.Error().Err(err).Str("name", c.Name).Msg("reconciler.Reconcile: failed to store candidate")
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("保存人员信息失败, 名字: %s, 身份证: %s", c.Name, c.Identity))
			continue
		}
		result.Workers = append(result.Workers, worker.WithJob())
	}
	return result
}

func (r *reconciler) upsert(ctx context.Context, c *domain.Candidate) (*domain.Worker, error) {
	matches, err := r.repo.FindByIdentityOrName(ctx, c.Identity, c.Name)
	if err != nil {
		return nil, fmt.Errorf("reconciler.upsert lookup: %w", err)
	}

	if len(matches) == 0 {
		worker := &domain.Worker{
			Identity: c.Identity,
			Name:     c.Name,
			Phone:    c.Phone,
			Bankcard: c.Bankcard,
			Address:  c.Address,
			Salary:   resolveSalary(c.Salary, 0),
		}
		if err := r.repo.Create(ctx, worker); err != nil {
			return nil, fmt.Errorf("reconciler.upsert create: %w", err)
		}
		return worker, nil
	}

	keep := matches[0]
	for _, dup := range matches[1:] {
		if err := r.repo.Delete(ctx, dup.ID); err != nil {
			return nil, fmt.Errorf("reconciler.upsert delete duplicate %s: %w", dup.ID, err)
		}
		log.Info().Str("kept", keep.ID.String()).Str("deleted", dup.ID.String()).Msg("reconciler.upsert: removed duplicate worker")
	}

	keep.Identity = c.Identity
	keep.Name = c.Name
	keep.Phone = c.Phone
	keep.Bankcard = c.Bankcard
	keep.Address = c.Address
	keep.Salary = resolveSalary(c.Salary, keep.Salary)
	if err := r.repo.Update(ctx, &keep); err != nil {
		return nil, fmt.Errorf("reconciler.upsert update: %w", err)
	}
	return &keep, nil
}

// resolveSalary picks the candidate salary, else the existing salary, else the baseline.
// Zero means "not recognised".
func resolveSalary(candidate, existing int) int {
	switch {
	case candidate > 0:
		return candidate
	case existing > 0:
		return existing
	default:
		return domain.BaselineSalary
	}
}

// IncompleteMessage formats the diagnostic reported for a candidate missing required fields.
func IncompleteMessage(c *domain.Candidate) string {
	salary := ""
	if c.Salary > 0 {
		salary = strconv.Itoa(c.Salary)
	}
	return fmt.Sprintf("识别人员信息不完整, 身份证: %s, 名字: %s, 电话: %s, 银行卡: %s, 开户行: %s, 工资: %s",
		orNone(c.Identity), orNone(c.Name), orNone(c.Phone), orNone(c.Bankcard), orNone(c.Address), orNone(salary))
}

func orNone(s string) string {
	if s == "" {
		return "无"
	}
	return s
}
