package cron

import (
	"context"
	"fmt"
)

type counterResyncer interface {
	Resync(ctx context.Context) error
}

// NewOrderCounterJob lifts the shared order-number counter above the highest
// stored order, so a flushed redis never hands out a taken number.
func NewOrderCounterJob(numbers counterResyncer) (Job, error) {
	if numbers == nil {
		return nil, fmt.Errorf("number allocator required")
	}
	return &orderCounterJob{numbers: numbers}, nil
}

type orderCounterJob struct {
	numbers counterResyncer
}

func (j *orderCounterJob) Name() string { return "order-counter-resync" }

func (j *orderCounterJob) Run(ctx context.Context) error {
	if err := j.numbers.Resync(ctx); err != nil {
		return fmt.Errorf("order counter resync: %w", err)
	}
	return nil
}
