package distribute

import (
	"fmt"

	"github.com/saad2128/jsonl-task-processor/internal/task"
)

// Batch is one week's contiguous slice of the global sequence.
type Batch struct {
	Week  int
	Tasks []task.Task
}

// SerialRange returns the first and last serial numbers in the batch.
func (b Batch) SerialRange() (lo, hi int) {
	if len(b.Tasks) == 0 {
		return 0, 0
	}
	return b.Tasks[0].Serial, b.Tasks[len(b.Tasks)-1].Serial
}

// WeeksNeeded returns ceil(tasks / capacity).
func WeeksNeeded(tasks, capacity int) int {
	if capacity <= 0 {
		return 0
	}
	return (tasks + capacity - 1) / capacity
}

// Batches slices sequenced tasks into weekly batches of the roster's total
// capacity; the last batch holds the remainder. Batch boundaries follow
// position only, so a repository may straddle two weeks.
func Batches(sequenced []task.Task, teams []Team) ([]Batch, error) {
	capacity := TotalCapacity(teams)
	if capacity <= 0 {
		return nil, fmt.Errorf("%w (%d teams)", ErrZeroCapacity, len(teams))
	}

	n := len(sequenced)
	weeks := WeeksNeeded(n, capacity)
	batches := make([]Batch, 0, weeks)
	for w := 0; w < weeks; w++ {
		start := w * capacity
		end := min(start+capacity, n)
		batches = append(batches, Batch{
			Week:  w + 1,
			Tasks: sequenced[start:end:end],
		})
	}
	return batches, nil
}
