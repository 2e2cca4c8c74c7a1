package cron

import (
	"context"
	"fmt"
)

// Job is one maintenance task run on every scheduled cycle.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds maintenance jobs in run order. Job names are unique; they
// label logs and the job metrics.
type Registry struct {
	jobs  []Job
	names map[string]struct{}
}

// NewRegistry registers jobs in order. Nil jobs and repeated names are skipped.
func NewRegistry(jobs ...Job) *Registry {
	r := &Registry{names: map[string]struct{}{}}
	for _, job := range jobs {
		_ = r.Register(job)
	}
	return r
}

func (r *Registry) Register(job Job) error {
	if job == nil {
		return fmt.Errorf("nil maintenance job")
	}
	name := job.Name()
	if _, taken := r.names[name]; taken {
		return fmt.Errorf("maintenance job %q already registered", name)
	}
	r.names[name] = struct{}{}
	r.jobs = append(r.jobs, job)
	return nil
}

// Jobs returns a copy of the registered jobs.
func (r *Registry) Jobs() []Job {
	return append([]Job(nil), r.jobs...)
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.jobs))
	for _, job := range r.jobs {
		names = append(names, job.Name())
	}
	return names
}
