package output

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/saad2128/jsonl-task-processor/internal/distribute"
	"github.com/saad2128/jsonl-task-processor/internal/logging"
	"github.com/saad2128/jsonl-task-processor/internal/report"
	"github.com/saad2128/jsonl-task-processor/internal/site"
	"github.com/saad2128/jsonl-task-processor/internal/task"
)

// Report file names inside the output directory.
const (
	ReportMarkdown = "distribution_report.md"
	ReportJSON     = "distribution_report.json"
)

// Writer lays out the artifacts of a run. Every file is written to a
// temporary name first and renamed into place, and a week directory only
// appears once all of its team files are complete.
type Writer struct {
	OutputDir string
	Columns   []string
	Logger    *slog.Logger
}

// NewWriter creates a Writer for the given output directory.
func NewWriter(outputDir string, columns []string, logger *slog.Logger) *Writer {
	return &Writer{OutputDir: outputDir, Columns: columns, Logger: logging.OrDiscard(logger)}
}

// InputArtifactPaths returns the paths of the unsequenced and sequenced CSV
// dumps that sit next to the input file.
func InputArtifactPaths(inputPath string) (complete, sorted string) {
	stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return stem + "_complete.csv", stem + "_sorted_with_serial.csv"
}

// TeamFileName returns the per-week file name for a team.
func TeamFileName(t distribute.Team) string {
	lead := strings.NewReplacer(" ", "_", "/", "_", `\`, "_").Replace(t.LeadName)
	return fmt.Sprintf("team_%d_%s.csv", t.Number, lead)
}

// WeekDir returns the directory holding a week's team files.
func (w *Writer) WeekDir(week int) string {
	return filepath.Join(w.OutputDir, fmt.Sprintf("week_%d", week))
}

// WriteTasks writes a task table to path.
func (w *Writer) WriteTasks(path string, tasks []task.Task, withSerial bool) error {
	return writeFileAtomic(path, func(f io.Writer) error {
		return WriteTable(f, w.Columns, tasks, withSerial)
	})
}

// WriteWeek writes one CSV per team for the allocation and returns the week
// directory.
func (w *Writer) WriteWeek(alloc *distribute.Allocation) (string, error) {
	if err := os.MkdirAll(w.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", w.OutputDir, err)
	}

	staging, err := os.MkdirTemp(w.OutputDir, fmt.Sprintf(".week_%d-*", alloc.Week))
	if err != nil {
		return "", fmt.Errorf("staging week %d in %s: %w", alloc.Week, w.OutputDir, err)
	}
	defer os.RemoveAll(staging)

	for _, ta := range alloc.Teams {
		path := filepath.Join(staging, TeamFileName(ta.Team))
		f, err := os.Create(path)
		if err != nil {
			return "", fmt.Errorf("creating %s: %w", path, err)
		}
		err = WriteTable(f, w.Columns, ta.Tasks, true)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
	}

	if err := os.Chmod(staging, 0o755); err != nil {
		return "", err
	}
	final := w.WeekDir(alloc.Week)
	if err := os.RemoveAll(final); err != nil {
		return "", fmt.Errorf("replacing %s: %w", final, err)
	}
	if err := os.Rename(staging, final); err != nil {
		return "", fmt.Errorf("publishing %s: %w", final, err)
	}
	w.Logger.Debug("week written", "week", alloc.Week, "dir", final, "teams", len(alloc.Teams))
	return final, nil
}

// PruneWeeks removes week_K directories with K greater than weeks, left by an
// earlier run with more weeks, and returns the removed paths.
func (w *Writer) PruneWeeks(weeks int) ([]string, error) {
	entries, err := os.ReadDir(w.OutputDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", w.OutputDir, err)
	}

	var removed []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		n, ok := strings.CutPrefix(e.Name(), "week_")
		if !ok {
			continue
		}
		week, err := strconv.Atoi(n)
		if err != nil || week <= weeks {
			continue
		}
		dir := filepath.Join(w.OutputDir, e.Name())
		if err := os.RemoveAll(dir); err != nil {
			return removed, fmt.Errorf("removing stale %s: %w", dir, err)
		}
		removed = append(removed, dir)
	}
	return removed, nil
}

// ReportPaths lists the files produced by WriteReport.
type ReportPaths struct {
	Markdown string
	JSON     string
	HTML     string
}

// WriteReport writes the markdown and JSON reports, and the HTML rendering
// when withHTML is set.
func (w *Writer) WriteReport(r *report.Report, withHTML bool, projectName string) (ReportPaths, error) {
	if err := os.MkdirAll(w.OutputDir, 0o755); err != nil {
		return ReportPaths{}, fmt.Errorf("creating output directory %s: %w", w.OutputDir, err)
	}

	paths := ReportPaths{
		Markdown: filepath.Join(w.OutputDir, ReportMarkdown),
		JSON:     filepath.Join(w.OutputDir, ReportJSON),
	}
	if err := writeFileAtomic(paths.Markdown, r.WriteMarkdown); err != nil {
		return ReportPaths{}, fmt.Errorf("writing %s: %w", paths.Markdown, err)
	}
	if err := writeFileAtomic(paths.JSON, r.WriteJSON); err != nil {
		return ReportPaths{}, fmt.Errorf("writing %s: %w", paths.JSON, err)
	}

	if withHTML {
		paths.HTML = site.HTMLPath(paths.Markdown)
		var md bytes.Buffer
		if err := r.WriteMarkdown(&md); err != nil {
			return ReportPaths{}, fmt.Errorf("rendering markdown: %w", err)
		}
		page, err := site.NewPageGenerator(projectName).Render(md.Bytes())
		if err != nil {
			return ReportPaths{}, err
		}
		if err := writeFileAtomic(paths.HTML, func(f io.Writer) error {
			_, err := f.Write(page)
			return err
		}); err != nil {
			return ReportPaths{}, fmt.Errorf("writing %s: %w", paths.HTML, err)
		}
	}
	return paths, nil
}

// writeFileAtomic writes through a temp file in the destination directory
// and renames it over path, so readers never see a partial file.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
