// Package report aggregates logged hours for dashboards: per project, per
// task, per employee, and weekly status breakdowns.
package report

import (
	"time"

	"github.com/prasetyarht/timesheet-management/internal"
	"github.com/prasetyarht/timesheet-management/internal/timesheet"
)

type ProjectSummary struct {
	ProjectName string  `json:"project_name"`
	NumTasks    int64   `json:"num_tasks"`
	TotalHours  float64 `json:"total_hours"`
}

type TaskSummary struct {
	ProjectName string  `json:"project_name"`
	TaskName    string  `json:"task_name"`
	TaskCode    string  `json:"task_code"`
	TotalHours  float64 `json:"total_hours"`
}

type EmployeeSummary struct {
	UserFullName string  `json:"user_full_name"`
	TotalHours   float64 `json:"total_hours"`
}

type Reports struct {
	ProjectSummary  []ProjectSummary  `json:"project_summary"`
	TaskSummary     []TaskSummary     `json:"task_summary"`
	EmployeeSummary []EmployeeSummary `json:"employee_summary"`
}

type StatusCount struct {
	Count int64   `json:"count"`
	Hours float64 `json:"hours"`
}

type WeeklySummary struct {
	WeekStart       string                 `json:"week_start"`
	Statuses        map[string]StatusCount `json:"statuses"`
	TotalTimesheets int64                  `json:"total_timesheets"`
}

// FilterDTO narrows project reports to a set of users and a date range.
// The range is snapped outward to whole weeks so partial weeks never skew
// the totals.
type FilterDTO struct {
	UserCodes []string `json:"user_codes,omitempty"`
	StartDate string   `json:"start_date,omitempty"`
	EndDate   string   `json:"end_date,omitempty"`
}

func (d *FilterDTO) Parse() (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if d.StartDate != "" {
		t, err := time.Parse(timesheet.DateLayout, d.StartDate)
		if err != nil {
			return nil, nil, internal.NewValidationFieldError("start_date", "start_date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
		}
		start = &t
	}
	if d.EndDate != "" {
		t, err := time.Parse(timesheet.DateLayout, d.EndDate)
		if err != nil {
			return nil, nil, internal.NewValidationFieldError("end_date", "end_date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
		}
		end = &t
	}
	start, end = timesheet.SnapToWeek(start, end)
	return start, end, nil
}
