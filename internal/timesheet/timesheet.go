package timesheet

import (
	"time"

	"github.com/prasetyarht/timesheet-management/internal"
	"github.com/prasetyarht/timesheet-management/internal/auth"
	tsDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/timesheet"
)

// Entry statuses are fixed lookup rows referenced by id from both
// timesheets and timesheet_entries. LOCKED and IN_PROGRESS are reserved
// and unreachable through current transitions; PARTIAL_APPROVE and
// PARTIAL_REJECT only ever appear at the timesheet level.
const (
	StatusDraft           int64 = 1
	StatusPendingApproval int64 = 2
	StatusApproved        int64 = 3
	StatusRejected        int64 = 4
	StatusCancel          int64 = 5
	StatusLocked          int64 = 6
	StatusInProgress      int64 = 7
	StatusPartialApprove  int64 = 8
	StatusPartialReject   int64 = 9
)

var statusNames = map[int64]string{
	StatusDraft:           "Draft",
	StatusPendingApproval: "Pending Approval",
	StatusApproved:        "Approved",
	StatusRejected:        "Rejected",
	StatusCancel:          "Cancel",
	StatusLocked:          "Locked",
	StatusInProgress:      "In Progress",
	StatusPartialApprove:  "Partial Approve",
	StatusPartialReject:   "Partial Reject",
}

func StatusName(id int64) string {
	if name, ok := statusNames[id]; ok {
		return name
	}
	return "Unknown"
}

// DateLayout is the wire format for time_records dates.
const DateLayout = "2006-01-02"

// DaysPerWeek is the fixed length of every time_records array.
const DaysPerWeek = 7

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionCancel  Action = "cancel"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionSubmit, ActionCancel, ActionApprove, ActionReject:
		return Action(s), nil
	}
	return "", ErrInvalidAction
}

// Domain errors. These are AppErrors so the transport layer can map them to
// HTTP statuses without re-classifying; services compare by identity.
var (
	ErrTimesheetNotFound = internal.NewNotFoundError("Timesheet not found", internal.ErrCodeTimesheetNotFound)
	ErrEntryNotFound     = internal.NewNotFoundError("Timesheet entry not found", internal.ErrCodeEntryNotFound)
	ErrCodeNotFound      = internal.NewNotFoundError("Record not found for the given code", internal.ErrCodeCodeNotFound)

	ErrInvalidTransition = internal.NewTransitionError("Action is not allowed from the current status", internal.ErrCodeInvalidTransition)
	ErrInvalidState      = internal.NewValidationError("Entry is not in a reviewable state", internal.ErrCodeInvalidState)
	ErrInvalidAction     = internal.NewValidationError("Invalid action", internal.ErrCodeInvalidAction)

	ErrNotOwner   = internal.NewForbiddenError("Not authorized to modify this timesheet", internal.ErrCodeNotOwner)
	ErrNotManager = internal.NewForbiddenError("Not authorized to review this timesheet", internal.ErrCodeNotManager)
	ErrNotMember  = internal.NewForbiddenError("Not assigned to this project", internal.ErrCodeNotMember)

	ErrEntryRequired = internal.NewValidationError("entry_code is required for approve and reject", internal.ErrCodeValidationFailed)
)

// WeekBounds returns the Monday and Sunday of the week containing t.
func WeekBounds(t time.Time) (time.Time, time.Time) {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	monday := t.AddDate(0, 0, -offset)
	sunday := monday.AddDate(0, 0, 6)
	return monday, sunday
}

// SnapToWeek widens an optional date range to full weeks: start moves back
// to its Monday, end forward to its Sunday.
func SnapToWeek(start, end *time.Time) (*time.Time, *time.Time) {
	if start != nil {
		monday, _ := WeekBounds(*start)
		start = &monday
	}
	if end != nil {
		_, sunday := WeekBounds(*end)
		end = &sunday
	}
	return start, end
}

// NewWeekRecords builds the zero-hour 7-day skeleton for a week.
func NewWeekRecords(weekStart time.Time) tsDatamodel.TimeRecords {
	records := make(tsDatamodel.TimeRecords, 0, DaysPerWeek)
	for i := 0; i < DaysPerWeek; i++ {
		day := weekStart.AddDate(0, 0, i)
		records = append(records, tsDatamodel.TimeRecord{
			Date:  day.Format(DateLayout),
			Hours: 0,
			Note:  "",
		})
	}
	return records
}

func SumHours(records tsDatamodel.TimeRecords) float64 {
	var total float64
	for _, r := range records {
		total += r.Hours
	}
	return total
}

// NextTimesheetStatus derives the timesheet aggregate status for an
// approve or reject of a single entry.
//
// The approve branch counts entries not yet APPROVED over the statuses as
// they stand BEFORE the mutation: when exactly one entry is outstanding,
// this approval is the last one and the timesheet becomes APPROVED;
// otherwise it becomes PARTIAL_APPROVE. The pre-mutation count can misfire
// when several entries are simultaneously pending; that behavior is kept
// on purpose and pinned down in tests. A reject always yields
// PARTIAL_REJECT regardless of the other entries.
func NextTimesheetStatus(entryStatuses []int64, action Action) int64 {
	if action == ActionReject {
		return StatusPartialReject
	}

	notApproved := 0
	for _, status := range entryStatuses {
		if status != StatusApproved {
			notApproved++
		}
	}

	if notApproved == 1 {
		return StatusApproved
	}
	return StatusPartialApprove
}

// CanReview is the single capability check for approve/reject: the acting
// user must hold a reviewing role and be the manager of record on the
// entry's project.
func CanReview(role auth.Role, isProjectManager bool) bool {
	if !isProjectManager {
		return false
	}
	switch role {
	case auth.RoleSuperAdmin, auth.RoleHR, auth.RoleManager:
		return true
	}
	return false
}

// IsEditable reports whether a day of an entry may be edited by the
// requesting user. This drives the client UI only; writes are still
// authorized by UpdateEntries itself.
func IsEditable(ownerID, actorID int64, entryStatus int64) bool {
	if ownerID != actorID {
		return false
	}
	return entryStatus == StatusDraft || entryStatus == StatusRejected
}

// HistoryDetail is the audit trail row shaped for API responses.
type HistoryDetail struct {
	EntryCode string    `json:"entry_code"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	Comment   string    `json:"comment,omitempty"`
	Time      time.Time `json:"time"`
}

// TimeRecordView is a persisted record plus its derived flags.
type TimeRecordView struct {
	Date       string  `json:"date"`
	Hours      float64 `json:"hours"`
	Note       string  `json:"note"`
	IsWeekend  bool    `json:"is_weekend"`
	IsHoliday  bool    `json:"is_holiday"`
	IsEditable bool    `json:"is_editable"`
}

type EntryView struct {
	EntryCode     string           `json:"entry_code"`
	TimesheetCode string           `json:"timesheet_code"`
	ProjectCode   string           `json:"project_code"`
	ProjectName   string           `json:"project_name"`
	TaskCode      string           `json:"task_code"`
	TaskName      string           `json:"task_name"`
	WeekStart     string           `json:"week_start"`
	WeekEnd       string           `json:"week_end"`
	Hours         float64          `json:"hours"`
	Status        string           `json:"status"`
	Comment       string           `json:"comment,omitempty"`
	ApproverName  string           `json:"approver_name,omitempty"`
	TimeRecords   []TimeRecordView `json:"time_records"`
}

type TimesheetDetail struct {
	TimesheetCode     string          `json:"timesheet_code"`
	WeekStart         string          `json:"week_start"`
	WeekEnd           string          `json:"week_end"`
	Status            string          `json:"status"`
	Entries           []EntryView     `json:"entries"`
	History           []HistoryDetail `json:"history"`
	PrevTimesheetCode string          `json:"prev_timesheet_code,omitempty"`
	NextTimesheetCode string          `json:"next_timesheet_code,omitempty"`
}

type TimesheetListItem struct {
	TimesheetCode string `json:"timesheet_code"`
	UserName      string `json:"user_name"`
	WeekStart     string `json:"week_start"`
	WeekEnd       string `json:"week_end"`
	Status        string `json:"status"`
}

type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// ReminderRecipient is a user whose current-week timesheet is still Draft.
type ReminderRecipient struct {
	Email    string
	FullName string
}

func buildTimeRecordViews(records tsDatamodel.TimeRecords, holidays map[string]struct{}, ownerID, actorID, entryStatus int64) []TimeRecordView {
	views := make([]TimeRecordView, 0, len(records))
	editable := IsEditable(ownerID, actorID, entryStatus)
	for _, r := range records {
		view := TimeRecordView{
			Date:       r.Date,
			Hours:      r.Hours,
			Note:       r.Note,
			IsEditable: editable,
		}
		if day, err := time.Parse(DateLayout, r.Date); err == nil {
			weekday := day.Weekday()
			view.IsWeekend = weekday == time.Saturday || weekday == time.Sunday
		}
		if _, ok := holidays[r.Date]; ok {
			view.IsHoliday = true
		}
		views = append(views, view)
	}
	return views
}
