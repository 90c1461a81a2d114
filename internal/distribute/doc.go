// Package distribute turns a flat task list into weekly, per-team work
// assignments.
//
// The pipeline has three pure stages:
//
//	Sequence  sort by repo_name (stable) and number tasks 1..N
//	Batches   cut the sequence into weekly slices of total team capacity
//	Allocate  hand whole repositories to teams within one weekly slice
//
// Allocation is a deterministic greedy heuristic, not an optimal packing.
// A forward-only team pointer keeps early repositories with early teams; a
// repository that fits no team from the pointer onwards goes to the team
// with the most remaining capacity, which may then run over. A team the
// pointer has already moved past is not reconsidered for later, smaller
// repositories.
package distribute
