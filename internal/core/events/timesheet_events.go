package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeTimesheetSubmitted = "timesheet.submitted"
	EventTypeTimesheetApproved  = "timesheet.approved"
	EventTypeTimesheetRejected  = "timesheet.rejected"
	EventTypeTimesheetCancelled = "timesheet.cancelled"
)

type TimesheetSubmittedEvent struct {
	BaseEvent
	TimesheetCode string `json:"timesheet_code"`
	OwnerCode     string `json:"owner_code"`
	EntryCount    int    `json:"entry_count"`
}

func NewTimesheetSubmittedEvent(timesheetCode, ownerCode string, entryCount int) *TimesheetSubmittedEvent {
	return &TimesheetSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTimesheetSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"timesheet_code": timesheetCode,
				"owner_code":     ownerCode,
				"entry_count":    entryCount,
			},
		},
		TimesheetCode: timesheetCode,
		OwnerCode:     ownerCode,
		EntryCount:    entryCount,
	}
}

type TimesheetReviewedEvent struct {
	BaseEvent
	TimesheetCode string `json:"timesheet_code"`
	EntryCode     string `json:"entry_code"`
	OwnerCode     string `json:"owner_code"`
	ReviewerCode  string `json:"reviewer_code"`
	Comment       string `json:"comment"`
}

func NewTimesheetApprovedEvent(timesheetCode, entryCode, ownerCode, reviewerCode, comment string) *TimesheetReviewedEvent {
	return newReviewedEvent(EventTypeTimesheetApproved, timesheetCode, entryCode, ownerCode, reviewerCode, comment)
}

func NewTimesheetRejectedEvent(timesheetCode, entryCode, ownerCode, reviewerCode, comment string) *TimesheetReviewedEvent {
	return newReviewedEvent(EventTypeTimesheetRejected, timesheetCode, entryCode, ownerCode, reviewerCode, comment)
}

func newReviewedEvent(eventType, timesheetCode, entryCode, ownerCode, reviewerCode, comment string) *TimesheetReviewedEvent {
	return &TimesheetReviewedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"timesheet_code": timesheetCode,
				"entry_code":     entryCode,
				"owner_code":     ownerCode,
				"reviewer_code":  reviewerCode,
				"comment":        comment,
			},
		},
		TimesheetCode: timesheetCode,
		EntryCode:     entryCode,
		OwnerCode:     ownerCode,
		ReviewerCode:  reviewerCode,
		Comment:       comment,
	}
}

type TimesheetCancelledEvent struct {
	BaseEvent
	TimesheetCode string `json:"timesheet_code"`
	OwnerCode     string `json:"owner_code"`
}

func NewTimesheetCancelledEvent(timesheetCode, ownerCode string) *TimesheetCancelledEvent {
	return &TimesheetCancelledEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeTimesheetCancelled,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"timesheet_code": timesheetCode,
				"owner_code":     ownerCode,
			},
		},
		TimesheetCode: timesheetCode,
		OwnerCode:     ownerCode,
	}
}
