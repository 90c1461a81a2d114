package distribute

import (
	"fmt"

	"github.com/saad2128/jsonl-task-processor/internal/task"
)

// Plan is a complete distribution: the sequenced tasks, their weekly
// batches and one allocation per batch, in week order.
type Plan struct {
	Teams       []Team
	Tasks       []task.Task
	Batches     []Batch
	Allocations []*Allocation
}

// NewPlan runs the whole pipeline. Weeks are allocated one after another,
// each from a fresh view of the roster.
func NewPlan(tasks []task.Task, teams []Team) (*Plan, error) {
	if TotalCapacity(teams) <= 0 {
		return nil, fmt.Errorf("%w (%d teams)", ErrZeroCapacity, len(teams))
	}

	sequenced, err := Sequence(tasks)
	if err != nil {
		return nil, fmt.Errorf("sequencing tasks: %w", err)
	}

	batches, err := Batches(sequenced, teams)
	if err != nil {
		return nil, fmt.Errorf("batching tasks: %w", err)
	}

	p := &Plan{
		Teams:       teams,
		Tasks:       sequenced,
		Batches:     batches,
		Allocations: make([]*Allocation, 0, len(batches)),
	}
	for _, b := range batches {
		alloc, err := Allocate(b, teams)
		if err != nil {
			return nil, fmt.Errorf("allocating week %d: %w", b.Week, err)
		}
		p.Allocations = append(p.Allocations, alloc)
	}
	return p, nil
}

// Weeks returns the number of weekly batches.
func (p *Plan) Weeks() int { return len(p.Batches) }
