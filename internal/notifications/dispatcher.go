package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/saad2128/jsonl-task-processor/internal/logging"
	"github.com/saad2128/jsonl-task-processor/internal/report"
)

// Dispatcher delivers notifications to webhook subscribers.
type Dispatcher struct {
	webhooks []Webhook
	client   *http.Client
	logger   *slog.Logger
}

// NewDispatcher creates a Dispatcher for the given webhooks.
func NewDispatcher(webhooks []Webhook, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		webhooks: webhooks,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logging.OrDiscard(logger),
	}
}

// RunInfo identifies the run a report belongs to.
type RunInfo struct {
	RunID     string
	InputPath string
	OutputDir string
}

// ForRun builds the notifications for a finished run: one completion notice,
// plus a warning when any team was assigned more than its weekly capacity.
func ForRun(r *report.Report, info RunInfo) []Notification {
	base := Notification{
		RunID:      info.RunID,
		InputPath:  info.InputPath,
		OutputDir:  info.OutputDir,
		TotalTasks: r.TotalTasks,
		TotalWeeks: r.TotalWeeks,
		CreatedAt:  r.GeneratedAt,
	}

	done := base
	done.Type = TypeRunCompleted
	done.Severity = SeverityInfo
	done.Title = "Task distribution complete"
	done.Message = fmt.Sprintf("%d tasks distributed to %d team(s) over %d week(s), %.1f%% of capacity used",
		r.TotalTasks, len(r.Teams), r.TotalWeeks, r.Overall.Ratio*100)
	out := []Notification{done}

	if len(r.Overallocations) == 0 {
		return out
	}

	seen := make(map[string]bool)
	var teams []string
	excess := 0
	for _, o := range r.Overallocations {
		excess += o.Excess
		if !seen[o.LeadName] {
			seen[o.LeadName] = true
			teams = append(teams, o.LeadName)
		}
	}
	sort.Strings(teams)

	warn := base
	warn.Type = TypeOverallocated
	warn.Severity = SeverityWarning
	warn.Title = "Teams over weekly capacity"
	warn.Message = fmt.Sprintf("%d team-week(s) exceed capacity by %d task(s) in total",
		len(r.Overallocations), excess)
	warn.Teams = teams
	return append(out, warn)
}

// Dispatch sends each notification to every webhook whose severity filter it
// meets. Delivery failures do not stop the remaining deliveries; they are
// joined into the returned error.
func (d *Dispatcher) Dispatch(ctx context.Context, notes ...Notification) error {
	var errs []error
	for _, n := range notes {
		payload, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("encoding notification: %w", err)
		}
		for _, hook := range d.webhooks {
			if hook.URL == "" || !severityMatches(n.Severity, hook.SeverityFilter) {
				continue
			}
			if err := d.SendWebhook(ctx, hook.URL, payload); err != nil {
				errs = append(errs, fmt.Errorf("%s to %s: %w", n.Type, hook.URL, err))
				continue
			}
			d.logger.Debug("webhook delivered", "url", hook.URL, "type", n.Type)
		}
	}
	return errors.Join(errs...)
}

// SendWebhook POSTs payload to the given URL.
func (d *Dispatcher) SendWebhook(ctx context.Context, url string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// severityMatches returns true if the notification severity meets or exceeds the filter threshold.
func severityMatches(actual, filter Severity) bool {
	levels := map[Severity]int{
		SeverityInfo:     0,
		SeverityWarning:  1,
		SeverityCritical: 2,
	}
	return levels[actual] >= levels[filter]
}

// ValidSeverity reports whether s is a known severity or empty.
func ValidSeverity(s Severity) bool {
	switch s {
	case "", SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}
