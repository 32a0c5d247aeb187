// Package holiday maintains per-organization holiday calendars and resolves
// which days of a week are holidays for timesheet views.
package holiday

import (
	"time"

	"github.com/prasetyarht/timesheet-management/internal"
)

var (
	ErrHolidayNotFound  = internal.NewNotFoundError("Holiday not found", internal.ErrCodeCodeNotFound)
	ErrDuplicateHoliday = internal.NewConflictError("A holiday already exists on this date", internal.ErrCodeDuplicateHoliday)
)

type HolidayView struct {
	Code        string `json:"code"`
	Date        string `json:"date"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateHolidayDTO struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (d *CreateHolidayDTO) Validate() error {
	if d.Name == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}
	if _, err := time.Parse("2006-01-02", d.Date); err != nil {
		return internal.NewValidationFieldError("date", "date must be in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}
	return nil
}
