package postgres

import (
	"log/slog"
	"time"

	"gorm.io/gorm"

	tsDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/prasetyarht/timesheet-management/internal/report"
	"github.com/prasetyarht/timesheet-management/internal/timesheet"
	"github.com/prasetyarht/timesheet-management/pkg/logger"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB) *Repository {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Repository{db: db, logger: lg}
}

func (r *Repository) summaryBase(orgID int64, userCodes []string, start, end *time.Time) *gorm.DB {
	q := r.db.Model(&tsDatamodel.TimesheetEntry{}).
		Joins("JOIN projects ON projects.id = timesheet_entries.project_id").
		Joins("JOIN timesheets ON timesheets.id = timesheet_entries.timesheet_id").
		Joins("JOIN tasks ON tasks.id = timesheet_entries.task_id").
		Joins("JOIN users ON users.id = timesheets.user_id").
		Where("projects.org_id = ?", orgID)

	if len(userCodes) > 0 {
		q = q.Where("users.code IN ?", userCodes)
	}
	if start != nil {
		q = q.Where("timesheets.week_start >= ?", *start)
	}
	if end != nil {
		q = q.Where("timesheets.week_start <= ?", *end)
	}
	return q
}

func (r *Repository) ProjectSummaries(orgID int64, userCodes []string, start, end *time.Time) ([]report.ProjectSummary, error) {
	var summaries []report.ProjectSummary
	err := r.summaryBase(orgID, userCodes, start, end).
		Select("projects.name AS project_name, COUNT(DISTINCT tasks.id) AS num_tasks, COALESCE(SUM(timesheet_entries.hours), 0) AS total_hours").
		Group("projects.id, projects.name").
		Order("projects.name ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *Repository) TaskSummaries(orgID int64, userCodes []string, start, end *time.Time) ([]report.TaskSummary, error) {
	var summaries []report.TaskSummary
	err := r.summaryBase(orgID, userCodes, start, end).
		Select("projects.name AS project_name, tasks.name AS task_name, tasks.code AS task_code, COALESCE(SUM(timesheet_entries.hours), 0) AS total_hours").
		Group("projects.name, tasks.name, tasks.code").
		Order("projects.name ASC, tasks.name ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *Repository) EmployeeSummaries(orgID int64, userCodes []string, start, end *time.Time) ([]report.EmployeeSummary, error) {
	var summaries []report.EmployeeSummary
	err := r.summaryBase(orgID, userCodes, start, end).
		Select("users.full_name AS user_full_name, COALESCE(SUM(timesheet_entries.hours), 0) AS total_hours").
		Group("users.id, users.full_name").
		Order("users.full_name ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

type weeklyStatusRow struct {
	WeekStart  time.Time
	Status     int64
	Count      int64
	TotalHours float64
}

func (r *Repository) WeeklyStatusCounts(since time.Time) ([]report.WeeklySummary, error) {
	var rows []weeklyStatusRow
	err := r.db.Model(&tsDatamodel.Timesheet{}).
		Joins("LEFT JOIN timesheet_entries ON timesheet_entries.timesheet_id = timesheets.id").
		Where("timesheets.week_start >= ?", since).
		Select("timesheets.week_start AS week_start, timesheets.status AS status, COUNT(DISTINCT timesheets.id) AS count, COALESCE(SUM(timesheet_entries.hours), 0) AS total_hours").
		Group("timesheets.week_start, timesheets.status").
		Order("timesheets.week_start DESC, timesheets.status ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Error("weekly status counts query failed", "error", err)
		return nil, err
	}

	var summaries []report.WeeklySummary
	index := make(map[string]int)
	for _, row := range rows {
		key := row.WeekStart.Format(timesheet.DateLayout)
		i, ok := index[key]
		if !ok {
			summaries = append(summaries, report.WeeklySummary{
				WeekStart: key,
				Statuses:  make(map[string]report.StatusCount),
			})
			i = len(summaries) - 1
			index[key] = i
		}
		summaries[i].Statuses[timesheet.StatusName(row.Status)] = report.StatusCount{
			Count: row.Count,
			Hours: row.TotalHours,
		}
		summaries[i].TotalTimesheets += row.Count
	}
	return summaries, nil
}
