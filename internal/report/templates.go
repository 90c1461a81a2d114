package report

const markdownTemplate = `# Task Distribution Report

**Generated on:** {{ .GeneratedAt.Format "2006-01-02 15:04:05" }}

## Overall Summary

| Metric | Value |
|--------|-------|
| Total Tasks | {{ .TotalTasks }} |
| Total Weeks | {{ .TotalWeeks }} |
| Total Teams | {{ len .Teams }} |

## Team Information

| Team | Lead Name | Developers | Weekly Capacity | Formula |
|------|-----------|------------|-----------------|---------|
{{ range .Teams }}| {{ .Number }} | {{ cell .LeadName }} | {{ .Developers }} | {{ .WeeklyCapacity }} | {{ .Developers }} × {{ $.Workload.TasksPerDeveloperPerDay }} × {{ $.Workload.WorkingDaysPerWeek }} |
{{ end }}
**Total Weekly Capacity:** {{ .TotalWeeklyCapacity }} tasks
{{ if .Overallocations }}
## Over-allocation Warnings

The following teams were assigned more than their weekly capacity because a
repository could not fit any team without being split.

| Week | Team | Lead | Assigned | Capacity | Excess | Repositories |
|------|------|------|----------|----------|--------|--------------|
{{ range .Overallocations }}| {{ .Week }} | {{ .TeamNumber }} | {{ cell .LeadName }} | {{ .Assigned }} | {{ .Capacity }} | {{ .Excess }} | {{ cell (join .Repos) }} |
{{ end }}{{ end }}
## Weekly Distribution Details
{{ range .Weeks }}
### Week {{ .Week }}

**Total Tasks:** {{ .TotalTasks }} | **Serial Range:** {{ serial .SerialRange }}

| Team | Lead | Assigned Tasks | Capacity Usage | Tasks/Dev | Days Needed | Serial Range | Repositories |
|------|------|----------------|----------------|-----------|-------------|--------------|--------------|
{{ range .Teams }}| {{ .TeamNumber }} | {{ cell .LeadName }} | {{ .AssignedTasks }}/{{ .WeeklyCapacity }}{{ if .Overallocated }} ⚠{{ end }} | {{ pct .Usage }} | {{ printf "%.1f" .TasksPerDeveloper }} | {{ .DaysNeeded }}/{{ $.Workload.WorkingDaysPerWeek }} | {{ serial .SerialRange }} | {{ .Repositories }} |
{{ end }}
{{- range .Teams }}{{ if .RepoDistribution }}
#### Team {{ .TeamNumber }} - {{ inline .LeadName }} Repository Distribution

| Repository | Tasks |
|------------|-------|
{{ range .RepoDistribution }}| {{ cell .Repo }} | {{ .Tasks }} |
{{ end }}{{ end }}{{ end }}{{ end }}
## Capacity Analysis

| Week | Tasks Assigned | Total Capacity | Utilization |
|------|----------------|----------------|-------------|
{{ range .Weeks }}| {{ .Week }} | {{ .Utilization.Assigned }} | {{ .Utilization.Capacity }} | {{ pct .Utilization.Ratio }} |
{{ end }}| **Total** | **{{ .Overall.Assigned }}** | **{{ .Overall.Capacity }}** | **{{ pct .Overall.Ratio }}** |

## Team Totals

| Team | Lead | Assigned | Capacity | Utilization | Repositories | Over-allocated Weeks |
|------|------|----------|----------|-------------|--------------|----------------------|
{{ range .TeamTotals }}| {{ .TeamNumber }} | {{ cell .LeadName }} | {{ .Utilization.Assigned }} | {{ .Utilization.Capacity }} | {{ pct .Utilization.Ratio }} | {{ .Repositories }} | {{ .OverallocatedWeeks }} |
{{ end }}
## Project Statistics

### Key Metrics

- **Serial Number Sequence:** Maintained across all teams and weeks
- **Repository Integrity:** Each repository assigned to a single team within a week
- **Workload Balance:** Distributed based on team capacity
- **Average Utilization:** {{ pct .Overall.Ratio }}
- **Estimated Completion:** {{ .TotalWeeks }} weeks

### Distribution Strategy

1. **Capacity-Based:** Tasks distributed according to team size
2. **Repository Consolidation:** Same repository stays with the same team
3. **Sequential Assignment:** Serial numbers maintained in order
4. **Balanced Workload:** ~{{ .Workload.TasksPerDeveloperPerDay }} tasks per developer per day
5. **{{ .Workload.WorkingDaysPerWeek }}-Day Work Week:** Planning based on standard work schedule
`
