package distribute

import (
	"math/rand"
	"testing"

	"github.com/saad2128/jsonl-task-processor/internal/task"
	"github.com/stretchr/testify/require"
)

func allocateAll(t *testing.T, teams []Team, sizes ...repoSize) *Allocation {
	t.Helper()
	seq, err := Sequence(makeTasks(sizes...))
	require.NoError(t, err)
	alloc, err := Allocate(Batch{Week: 1, Tasks: seq}, teams)
	require.NoError(t, err)
	return alloc
}

func TestAllocate(t *testing.T) {
	t.Run("pointer advance then overflow fallback", func(t *testing.T) {
		alloc := allocateAll(t, teamsWithCapacity(6, 6),
			repoSize{"A", 5}, repoSize{"B", 4}, repoSize{"C", 3})

		require.Equal(t, []string{"A"}, reposOf(alloc.Teams[0]))
		require.Equal(t, 5, alloc.Teams[0].AssignedTasks)
		require.Equal(t, 1, alloc.Teams[0].RemainingCapacity)

		require.Equal(t, []string{"B", "C"}, reposOf(alloc.Teams[1]))
		require.Equal(t, 7, alloc.Teams[1].AssignedTasks)
		require.Equal(t, -1, alloc.Teams[1].RemainingCapacity)
		require.True(t, alloc.Teams[1].Overallocated())

		rules := []Rule{alloc.Placements[0].Rule, alloc.Placements[1].Rule, alloc.Placements[2].Rule}
		require.Equal(t, []Rule{RuleCurrent, RuleAdvance, RuleOverflow}, rules)
		require.Equal(t, 12, alloc.Teams[0].AssignedTasks+alloc.Teams[1].AssignedTasks)
	})

	t.Run("earlier team is not revisited after the pointer moves", func(t *testing.T) {
		alloc := allocateAll(t, teamsWithCapacity(10, 10),
			repoSize{"A", 8}, repoSize{"B", 5}, repoSize{"C", 2})

		require.Equal(t, []string{"A"}, reposOf(alloc.Teams[0]))
		require.Equal(t, 2, alloc.Teams[0].RemainingCapacity)
		require.Equal(t, []string{"B", "C"}, reposOf(alloc.Teams[1]))
		require.Equal(t, RuleCurrent, alloc.Placements[2].Rule)
	})

	t.Run("overflow ties go to the lowest index and keep the pointer", func(t *testing.T) {
		alloc := allocateAll(t, teamsWithCapacity(5, 5),
			repoSize{"A", 7}, repoSize{"B", 3})

		require.Equal(t, []string{"A"}, reposOf(alloc.Teams[0]))
		require.Equal(t, -2, alloc.Teams[0].RemainingCapacity)
		require.Equal(t, RuleOverflow, alloc.Placements[0].Rule)

		require.Equal(t, []string{"B"}, reposOf(alloc.Teams[1]))
		require.Equal(t, RuleAdvance, alloc.Placements[1].Rule)
		require.Equal(t, 2, alloc.Teams[1].RemainingCapacity)
	})

	t.Run("overflow picks the team with most remaining capacity", func(t *testing.T) {
		alloc := allocateAll(t, teamsWithCapacity(4, 9, 3),
			repoSize{"A", 4}, repoSize{"B", 6}, repoSize{"C", 5})

		// A fills team 1, B advances to team 2 (3 left), C fits nowhere
		// from team 2 on; teams 2 and 3 tie on 3 left and team 2 wins.
		require.Equal(t, []string{"A"}, reposOf(alloc.Teams[0]))
		require.Equal(t, []string{"B", "C"}, reposOf(alloc.Teams[1]))
		require.Empty(t, alloc.Teams[2].Tasks)
		require.Equal(t, -2, alloc.Teams[1].RemainingCapacity)
	})

	t.Run("repository larger than every capacity is kept whole", func(t *testing.T) {
		alloc := allocateAll(t, teamsWithCapacity(3, 3), repoSize{"huge", 10})

		require.Len(t, alloc.Teams[0].Tasks, 10)
		require.Equal(t, -7, alloc.Teams[0].RemainingCapacity)
		require.Empty(t, alloc.Teams[1].Tasks)
	})

	t.Run("team tasks are in serial order", func(t *testing.T) {
		alloc := allocateAll(t, teamsWithCapacity(20),
			repoSize{"c", 3}, repoSize{"a", 2}, repoSize{"b", 4})

		prev := 0
		for _, tk := range alloc.Teams[0].Tasks {
			require.Greater(t, tk.Serial, prev)
			prev = tk.Serial
		}
		lo, hi, ok := alloc.Teams[0].SerialRange()
		require.True(t, ok)
		require.Equal(t, 1, lo)
		require.Equal(t, 9, hi)
	})

	t.Run("empty team reports no serial range", func(t *testing.T) {
		alloc := allocateAll(t, teamsWithCapacity(10, 10), repoSize{"a", 2})

		_, _, ok := alloc.Teams[1].SerialRange()
		require.False(t, ok)
		require.Equal(t, 10, alloc.Teams[1].RemainingCapacity)
	})

	t.Run("no teams is an error", func(t *testing.T) {
		_, err := Allocate(Batch{Week: 1}, nil)
		require.Error(t, err)
	})

	t.Run("does not modify the roster", func(t *testing.T) {
		teams := teamsWithCapacity(2, 2)
		_ = allocateAll(t, teams, repoSize{"a", 5})

		require.Equal(t, 2, teams[0].WeeklyCapacity)
		require.Equal(t, 2, teams[1].WeeklyCapacity)
	})
}

func TestGroupByRepo(t *testing.T) {
	seq, err := Sequence(makeTasks(repoSize{"b", 2}, repoSize{"a", 3}))
	require.NoError(t, err)

	// Reversed input must still come out ordered by serial.
	var rev []task.Task
	for i := len(seq) - 1; i >= 0; i-- {
		rev = append(rev, seq[i])
	}

	groups := GroupByRepo(rev)

	require.Len(t, groups, 2)
	require.Equal(t, "a", groups[0].Repo)
	require.Equal(t, 1, groups[0].MinSerial)
	require.Equal(t, 3, groups[0].MaxSerial)
	require.Equal(t, 1, groups[0].Tasks[0].Serial)
	require.Equal(t, "b", groups[1].Repo)
	require.Equal(t, 2, groups[1].Count())
}

func randomSizes(rng *rand.Rand, repos int) []repoSize {
	sizes := make([]repoSize, repos)
	for i := range sizes {
		sizes[i] = repoSize{repo: string(rune('a'+rng.Intn(26))) + string(rune('a'+i%26)) + string(rune('0'+i/26)), count: 1 + rng.Intn(40)}
	}
	return sizes
}

func TestPlanProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rosters := [][]int{{25}, {25, 50}, {75, 25, 50}, {10, 10, 10, 10}}

	for round := 0; round < 20; round++ {
		sizes := randomSizes(rng, 5+rng.Intn(30))
		tasks := makeTasks(sizes...)
		teams := teamsWithCapacity(rosters[round%len(rosters)]...)

		plan, err := NewPlan(tasks, teams)
		require.NoError(t, err)

		total := 0
		for _, alloc := range plan.Allocations {
			owner := make(map[string]int)
			overflowed := make(map[int]bool)
			for _, p := range alloc.Placements {
				if p.Rule == RuleOverflow {
					overflowed[p.TeamIndex] = true
				}
			}
			for ti, ta := range alloc.Teams {
				total += ta.AssignedTasks
				require.Equal(t, len(ta.Tasks), ta.AssignedTasks)
				require.Equal(t, ta.Team.WeeklyCapacity-ta.AssignedTasks, ta.RemainingCapacity)
				if !overflowed[ti] {
					require.LessOrEqual(t, ta.AssignedTasks, ta.Team.WeeklyCapacity)
				}
				for _, tk := range ta.Tasks {
					if prev, ok := owner[tk.Repo]; ok {
						require.Equal(t, prev, ti, "repo %s split within week %d", tk.Repo, alloc.Week)
					}
					owner[tk.Repo] = ti
				}
			}
		}
		require.Equal(t, len(tasks), total)
		require.Equal(t, WeeksNeeded(len(tasks), TotalCapacity(teams)), plan.Weeks())
	}
}

func TestPlanDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tasks := makeTasks(randomSizes(rng, 40)...)
	teams := teamsWithCapacity(50, 25, 75)

	first, err := NewPlan(tasks, teams)
	require.NoError(t, err)
	second, err := NewPlan(tasks, teams)
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestPlanOverflowVisible(t *testing.T) {
	plan, err := NewPlan(makeTasks(repoSize{"big", 30}, repoSize{"small", 2}), teamsWithCapacity(10, 10, 20))
	require.NoError(t, err)

	// Total capacity 40 gives one week; "big" exceeds every team.
	require.Equal(t, 1, plan.Weeks())
	negative := false
	for _, ta := range plan.Allocations[0].Teams {
		if ta.Overallocated() {
			negative = true
		}
	}
	require.True(t, negative)
}

func TestPlanZeroCapacity(t *testing.T) {
	_, err := NewPlan(makeTasks(repoSize{"a", 1}), teamsWithCapacity(0))
	require.ErrorIs(t, err, ErrZeroCapacity)
}
