package domain

// JobTier is the wage classification derived from a worker's salary.
type JobTier string

const (
	JobTemplateWorker JobTier = "模板工"
	JobGeneralWorker  JobTier = "普工"
)

// BaselineSalary is the default salary for workers whose salary was not recognised.
// It is also the template-worker threshold.
const BaselineSalary = 4900

// ClassifyJob maps a salary to its job tier.
func ClassifyJob(salary int) JobTier {
	if salary >= BaselineSalary {
		return JobTemplateWorker
	}
	return JobGeneralWorker
}

// WithJob returns the worker with its job tier filled in.
func (w Worker) WithJob() Worker {
	w.Job = ClassifyJob(w.Salary)
	return w
}

// ClassifyWorkers fills in the job tier of every worker in place.
func ClassifyWorkers(workers []Worker) {
	for i := range workers {
		workers[i].Job = ClassifyJob(workers[i].Salary)
	}
}
