package timesheet

import (
	"time"

	"github.com/prasetyarht/timesheet-management/internal"
)

type CreateEntryDTO struct {
	ProjectCode string `json:"project_code"`
	TaskCode    string `json:"task_code"`
	Comment     string `json:"comment,omitempty"`
}

func (dto CreateEntryDTO) Validate() error {
	if dto.ProjectCode == "" {
		return internal.NewValidationFieldError("project_code", "project_code is required", internal.ErrCodeValidationFailed)
	}
	if dto.TaskCode == "" {
		return internal.NewValidationFieldError("task_code", "task_code is required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type TimeRecordDTO struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
	Note  string  `json:"note"`
}

type UpdateEntryDTO struct {
	EntryCode   string          `json:"entry_code"`
	TimeRecords []TimeRecordDTO `json:"time_records"`
	Comment     *string         `json:"comment,omitempty"`
}

func (dto UpdateEntryDTO) Validate() error {
	if dto.EntryCode == "" {
		return internal.NewValidationFieldError("entry_code", "entry_code is required", internal.ErrCodeValidationFailed)
	}
	for _, record := range dto.TimeRecords {
		if record.Hours < 0 {
			return internal.NewValidationError("hours cannot be negative", internal.ErrCodeNegativeHours)
		}
		if _, err := time.Parse(DateLayout, record.Date); err != nil {
			return internal.NewValidationError("date must be formatted as YYYY-MM-DD", internal.ErrCodeInvalidDate)
		}
	}
	return nil
}

type UpdateEntriesDTO struct {
	Entries []UpdateEntryDTO `json:"entries"`
	Action  string           `json:"action,omitempty"`
}

func (dto UpdateEntriesDTO) Validate() error {
	if len(dto.Entries) == 0 {
		return internal.NewValidationFieldError("entries", "at least one entry is required", internal.ErrCodeValidationFailed)
	}
	for _, entry := range dto.Entries {
		if err := entry.Validate(); err != nil {
			return err
		}
	}
	if dto.Action != "" && dto.Action != string(ActionSubmit) {
		return internal.NewValidationError("only the submit action may be chained to an update", internal.ErrCodeInvalidAction)
	}
	return nil
}

type ReviewDTO struct {
	TimesheetCode string `json:"timesheet_code"`
	EntryCode     string `json:"entry_code,omitempty"`
	Action        string `json:"action"`
	Comment       string `json:"comment,omitempty"`
}

func (dto ReviewDTO) Validate() error {
	if dto.TimesheetCode == "" {
		return internal.NewValidationFieldError("timesheet_code", "timesheet_code is required", internal.ErrCodeValidationFailed)
	}
	if _, err := ParseAction(dto.Action); err != nil {
		return err
	}
	return nil
}

type TimesheetDetailDTO struct {
	TimesheetCode string `json:"timesheet_code,omitempty"`
}
