package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saad2128/jsonl-task-processor/internal/db"
	"github.com/saad2128/jsonl-task-processor/internal/distribute"
	"github.com/saad2128/jsonl-task-processor/internal/report"
)

// ErrNotFound is returned when a run id is unknown.
var ErrNotFound = errors.New("run not found")

// timeLayout is fixed-width so created_at sorts correctly as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store records distribution runs in SQLite.
type Store struct {
	db  *db.DB
	now func() time.Time
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: time.Now}
}

// Record stores a run with its roster and every repository placement, in a
// single transaction. It returns the new run id.
func (s *Store) Record(ctx context.Context, plan *distribute.Plan, r *report.Report, meta RunMeta) (string, error) {
	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at, input_path, output_dir, total_tasks, total_weeks,
			total_teams, weekly_capacity, utilization, skipped_lines, overallocated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		s.now().UTC().Format(timeLayout),
		meta.InputPath,
		meta.OutputDir,
		r.TotalTasks,
		r.TotalWeeks,
		len(plan.Teams),
		r.TotalWeeklyCapacity,
		r.Overall.Ratio,
		meta.SkippedLines,
		boolToInt(r.HasOverallocation()),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, t := range plan.Teams {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO run_teams (run_id, team_number, lead_name, num_developers, weekly_capacity)
			VALUES (?, ?, ?, ?, ?)`,
			id, t.Number, t.LeadName, t.Developers, t.WeeklyCapacity,
		); err != nil {
			return "", fmt.Errorf("inserting team %d: %w", t.Number, err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO assignments (run_id, week, team_number, repo_name, task_count, min_serial, max_serial, rule)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing assignment insert: %w", err)
	}
	defer stmt.Close()

	for _, alloc := range plan.Allocations {
		for _, p := range alloc.Placements {
			team := alloc.Teams[p.TeamIndex].Team
			if _, err := stmt.ExecContext(ctx,
				id, alloc.Week, team.Number, p.Repo, p.Count, p.MinSerial, p.MaxSerial, p.Rule.String(),
			); err != nil {
				return "", fmt.Errorf("inserting assignment %s (week %d): %w", p.Repo, alloc.Week, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}
	return id, nil
}

// List returns the most recent runs first. A non-positive limit returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := runColumns + " ORDER BY created_at DESC, id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// Get returns one run with its roster and assignments.
func (s *Store) Get(ctx context.Context, id string) (*RunDetail, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, runColumns+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	detail := &RunDetail{Run: *run}

	teamRows, err := s.db.QueryContext(ctx, `
		SELECT team_number, lead_name, num_developers, weekly_capacity
		FROM run_teams WHERE run_id = ? ORDER BY team_number`, id)
	if err != nil {
		return nil, fmt.Errorf("querying run teams: %w", err)
	}
	defer teamRows.Close()
	for teamRows.Next() {
		var t Team
		if err := teamRows.Scan(&t.TeamNumber, &t.LeadName, &t.NumDevelopers, &t.WeeklyCapacity); err != nil {
			return nil, err
		}
		detail.Teams = append(detail.Teams, t)
	}
	if err := teamRows.Err(); err != nil {
		return nil, err
	}

	detail.Assignments, err = s.queryAssignments(ctx, "a.run_id = ?", id)
	if err != nil {
		return nil, err
	}
	return detail, nil
}

// RepoAssignments returns every recorded placement of a repository, newest
// run first.
func (s *Store) RepoAssignments(ctx context.Context, repo string) ([]Assignment, error) {
	return s.queryAssignments(ctx, "a.repo_name = ?", repo)
}

func (s *Store) queryAssignments(ctx context.Context, where string, arg any) ([]Assignment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.run_id, a.week, a.team_number, COALESCE(t.lead_name, ''), a.repo_name,
		       a.task_count, a.min_serial, a.max_serial, a.rule
		FROM assignments a
		JOIN runs r ON r.id = a.run_id
		LEFT JOIN run_teams t ON t.run_id = a.run_id AND t.team_number = a.team_number
		WHERE `+where+`
		ORDER BY r.created_at DESC, a.run_id, a.week, a.min_serial`, arg)
	if err != nil {
		return nil, fmt.Errorf("querying assignments: %w", err)
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.RunID, &a.Week, &a.TeamNumber, &a.LeadName, &a.Repo,
			&a.TaskCount, &a.MinSerial, &a.MaxSerial, &a.Rule); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

const runColumns = `SELECT id, created_at, input_path, output_dir, total_tasks, total_weeks,
	total_teams, weekly_capacity, utilization, skipped_lines, overallocated FROM runs`

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r             Run
		createdAt     string
		overallocated int
	)
	err := sc.Scan(&r.ID, &createdAt, &r.InputPath, &r.OutputDir, &r.TotalTasks, &r.TotalWeeks,
		&r.TotalTeams, &r.WeeklyCapacity, &r.Utilization, &r.SkippedLines, &overallocated)
	if err != nil {
		return nil, err
	}
	r.CreatedAt, _ = time.Parse(timeLayout, createdAt)
	r.Overallocated = overallocated != 0
	return &r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
