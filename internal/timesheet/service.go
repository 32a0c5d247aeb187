package timesheet

import (
	"context"
	"log/slog"
	"time"

	"github.com/prasetyarht/timesheet-management/internal"
	"github.com/prasetyarht/timesheet-management/internal/auth"
	orgDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/organization"
	tsDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/prasetyarht/timesheet-management/internal/core/events"
)

// RepositoryAPI is the persistence surface the workflow engine mutates.
// Status and history writes happen exclusively through this service; the
// holiday resolver and reporting aggregator only ever read.
type RepositoryAPI interface {
	// InTransaction runs fn against a transactional copy of the
	// repository; a non-nil error rolls every write back.
	InTransaction(fn func(tx RepositoryAPI) error) error

	ProjectByCode(code string) (*orgDatamodel.Project, error)
	ProjectByID(id int64) (*orgDatamodel.Project, error)
	TaskByCode(code string) (*orgDatamodel.Task, error)
	TaskByID(id int64) (*orgDatamodel.Task, error)
	UserByID(id int64) (*orgDatamodel.User, error)
	IsProjectMember(userID, projectID int64) (bool, error)

	TimesheetByCode(code string) (*tsDatamodel.Timesheet, error)
	TimesheetByID(id int64) (*tsDatamodel.Timesheet, error)
	TimesheetForUserWeek(userID int64, weekStart time.Time) (*tsDatamodel.Timesheet, error)
	CreateTimesheet(ts *tsDatamodel.Timesheet) error
	UpdateTimesheetStatus(id int64, status int64) error
	AdjacentTimesheetCodes(userID int64, weekStart time.Time) (prev string, next string, err error)
	ListTimesheets(orgID, userID int64, ownOnly bool, limit, offset int) ([]TimesheetListItem, int64, error)

	EntryByCode(code string) (*tsDatamodel.TimesheetEntry, error)
	EntryForTimesheetProjectTask(timesheetID, projectID, taskID int64) (*tsDatamodel.TimesheetEntry, error)
	CreateEntry(entry *tsDatamodel.TimesheetEntry) error
	UpdateEntryRecords(id int64, records tsDatamodel.TimeRecords, hours float64, comment *string) error
	UpdateEntryStatus(ids []int64, status int64, approverID *int64) error
	DeleteEntry(id int64) error

	CreateHistory(h *tsDatamodel.TimesheetHistory) error
	HistoryForEntries(entryIDs []int64) ([]HistoryDetail, error)
	// PurgeHistoryForEntries is the one deliberate exception to the
	// append-only ledger: cancel performs a true rollback.
	PurgeHistoryForEntries(entryIDs []int64) error

	CreateWeeklyTimesheets(weekStart, weekEnd time.Time, status int64) (int, error)
	DraftTimesheetOwners(weekStart time.Time, roles []string) ([]ReminderRecipient, error)
}

// HolidayResolverAPI annotates week days; pure read.
type HolidayResolverAPI interface {
	Resolve(orgID int64, start, end time.Time) (map[string]struct{}, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service is the workflow engine: it owns every status transition a
// timesheet entry can take and the audit trail those transitions produce.
type Service struct {
	repo     RepositoryAPI
	holidays HolidayResolverAPI
	events   EventPublisher
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, holidays HolidayResolverAPI, eventBus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		holidays: holidays,
		events:   eventBus,
		logger:   logger,
	}
}

// CreateEntry starts logging time against a project/task for the acting
// user's current week. Idempotent: an existing entry for the same
// (timesheet, project, task) is returned as-is.
func (s *Service) CreateEntry(actor *auth.User, dto CreateEntryDTO) (*EntryView, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("create entry validation failed", "error", err, "user_code", actor.Code)
		return nil, err
	}

	project, err := s.repo.ProjectByCode(dto.ProjectCode)
	if err != nil {
		return nil, err
	}
	task, err := s.repo.TaskByCode(dto.TaskCode)
	if err != nil {
		return nil, err
	}
	if task.ProjectID != project.ID {
		return nil, internal.NewValidationFieldError("task_code", "task does not belong to the given project", internal.ErrCodeValidationFailed)
	}

	// Employees and managers log time only against projects they are
	// assigned to; the project's own manager and back office are exempt.
	if !actor.IsBackOffice() && !(project.ManagerID != nil && *project.ManagerID == actor.ID) {
		member, err := s.repo.IsProjectMember(actor.ID, project.ID)
		if err != nil {
			return nil, err
		}
		if !member {
			s.logger.Warn("entry denied: not a project member",
				"user_code", actor.Code,
				"project_code", project.Code)
			return nil, ErrNotMember
		}
	}

	ts, err := s.getOrCreateCurrentWeek(actor)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.EntryForTimesheetProjectTask(ts.ID, project.ID, task.ID)
	if err == nil {
		s.logger.Info("entry already exists, returning it",
			"entry_code", existing.Code,
			"timesheet_code", ts.Code)
		return s.buildEntryView(existing, ts, actor)
	}
	if err != ErrEntryNotFound {
		return nil, err
	}

	holidays, err := s.holidays.Resolve(actor.OrgID, ts.WeekStart, ts.WeekEnd)
	if err != nil {
		return nil, err
	}

	entry := &tsDatamodel.TimesheetEntry{
		TimesheetID: ts.ID,
		ProjectID:   project.ID,
		TaskID:      task.ID,
		Hours:       0,
		TimeRecords: NewWeekRecords(ts.WeekStart),
		Status:      StatusDraft,
		Comment:     dto.Comment,
	}
	if err := s.repo.CreateEntry(entry); err != nil {
		s.logger.Error("failed to create entry", "error", err, "timesheet_code", ts.Code)
		return nil, err
	}

	s.logger.Info("entry created",
		"entry_code", entry.Code,
		"timesheet_code", ts.Code,
		"project_code", project.Code,
		"task_code", task.Code)

	view := s.entryView(entry, ts, project, task, holidays, actor, "")
	return &view, nil
}

// UpdateEntries overwrites hours and notes on the supplied days, matching
// by date against the stored seven. Dates, weekend and holiday flags are
// never written. The batch is all-or-nothing: every entry is validated
// first and the writes share one transaction. When the submit action is
// chained, the owning timesheets are submitted after the hour updates
// commit.
func (s *Service) UpdateEntries(actor *auth.User, dto UpdateEntriesDTO) ([]EntryView, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("update entries validation failed", "error", err, "user_code", actor.Code)
		return nil, err
	}

	type pendingWrite struct {
		entryID int64
		records tsDatamodel.TimeRecords
		hours   float64
		comment *string
	}

	// Validate the whole batch before touching the database so a bad
	// entry never leaves earlier ones half-written.
	entryCodes := make([]string, 0, len(dto.Entries))
	timesheetCodes := make(map[int64]string)
	writes := make([]pendingWrite, 0, len(dto.Entries))

	for _, update := range dto.Entries {
		entry, err := s.repo.EntryByCode(update.EntryCode)
		if err != nil {
			return nil, err
		}

		ts, err := s.repo.TimesheetByID(entry.TimesheetID)
		if err != nil {
			return nil, err
		}

		if ts.UserID != actor.ID && !actor.IsBackOffice() {
			s.logger.Warn("update denied: not the owner",
				"entry_code", entry.Code,
				"user_code", actor.Code)
			return nil, ErrNotOwner
		}

		merged, err := mergeRecords(entry.TimeRecords, update.TimeRecords)
		if err != nil {
			return nil, err
		}

		writes = append(writes, pendingWrite{
			entryID: entry.ID,
			records: merged,
			hours:   SumHours(merged),
			comment: update.Comment,
		})
		entryCodes = append(entryCodes, entry.Code)
		timesheetCodes[ts.ID] = ts.Code
	}

	err := s.repo.InTransaction(func(tx RepositoryAPI) error {
		for _, w := range writes {
			if err := tx.UpdateEntryRecords(w.entryID, w.records, w.hours, w.comment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update entry records", "error", err, "user_code", actor.Code)
		return nil, err
	}

	if Action(dto.Action) == ActionSubmit {
		for _, tsCode := range timesheetCodes {
			if _, err := s.Review(actor, ReviewDTO{
				TimesheetCode: tsCode,
				Action:        string(ActionSubmit),
			}); err != nil {
				return nil, err
			}
		}
	}

	views := make([]EntryView, 0, len(entryCodes))
	for _, code := range entryCodes {
		entry, err := s.repo.EntryByCode(code)
		if err != nil {
			return nil, err
		}
		ts, err := s.repo.TimesheetByID(entry.TimesheetID)
		if err != nil {
			return nil, err
		}
		view, err := s.buildEntryView(entry, ts, actor)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}

	return views, nil
}

// Review is the state machine entry point: submit and cancel act on the
// whole timesheet, approve and reject on a single entry.
func (s *Service) Review(actor *auth.User, dto ReviewDTO) (string, error) {
	if err := dto.Validate(); err != nil {
		return "", err
	}
	action, _ := ParseAction(dto.Action)

	ts, err := s.repo.TimesheetByCode(dto.TimesheetCode)
	if err != nil {
		return "", err
	}

	switch action {
	case ActionSubmit:
		return s.submit(actor, ts, dto.Comment)
	case ActionCancel:
		return s.cancel(actor, ts)
	default:
		return s.reviewEntry(actor, ts, dto.EntryCode, action, dto.Comment)
	}
}

func (s *Service) submit(actor *auth.User, ts *tsDatamodel.Timesheet, comment string) (string, error) {
	if ts.UserID != actor.ID && !actor.IsBackOffice() {
		return "", ErrNotOwner
	}

	if ts.Status != StatusDraft || len(ts.Entries) == 0 {
		s.logger.Warn("cannot submit timesheet in current status",
			"timesheet_code", ts.Code,
			"current_status", StatusName(ts.Status),
			"entries", len(ts.Entries))
		return "", ErrInvalidTransition
	}

	for _, entry := range ts.Entries {
		if entry.Status != StatusDraft {
			return "", ErrInvalidTransition
		}
	}

	err := s.repo.InTransaction(func(tx RepositoryAPI) error {
		ids := entryIDs(ts.Entries)
		if err := tx.UpdateEntryStatus(ids, StatusPendingApproval, nil); err != nil {
			return err
		}
		for _, entry := range ts.Entries {
			history := &tsDatamodel.TimesheetHistory{
				TimesheetEntryID: entry.ID,
				OldStatus:        entry.Status,
				NewStatus:        StatusPendingApproval,
				ChangedBy:        actor.ID,
				Comment:          comment,
			}
			if err := tx.CreateHistory(history); err != nil {
				return err
			}
		}
		return tx.UpdateTimesheetStatus(ts.ID, StatusPendingApproval)
	})
	if err != nil {
		s.logger.Error("submit transaction failed", "error", err, "timesheet_code", ts.Code)
		return "", err
	}

	s.logger.Info("timesheet submitted",
		"timesheet_code", ts.Code,
		"entries", len(ts.Entries),
		"user_code", actor.Code)

	s.publish(events.NewTimesheetSubmittedEvent(ts.Code, s.ownerCode(ts.UserID), len(ts.Entries)))

	return "Timesheet submitted successfully", nil
}

func (s *Service) cancel(actor *auth.User, ts *tsDatamodel.Timesheet) (string, error) {
	if ts.UserID != actor.ID && !actor.IsBackOffice() {
		return "", ErrNotOwner
	}

	if ts.Status != StatusPendingApproval {
		s.logger.Warn("cannot cancel timesheet in current status",
			"timesheet_code", ts.Code,
			"current_status", StatusName(ts.Status))
		return "", ErrInvalidTransition
	}

	err := s.repo.InTransaction(func(tx RepositoryAPI) error {
		ids := entryIDs(ts.Entries)
		if err := tx.UpdateEntryStatus(ids, StatusDraft, nil); err != nil {
			return err
		}
		if err := tx.PurgeHistoryForEntries(ids); err != nil {
			return err
		}
		return tx.UpdateTimesheetStatus(ts.ID, StatusDraft)
	})
	if err != nil {
		s.logger.Error("cancel transaction failed", "error", err, "timesheet_code", ts.Code)
		return "", err
	}

	s.logger.Info("timesheet recalled to draft",
		"timesheet_code", ts.Code,
		"user_code", actor.Code)

	s.publish(events.NewTimesheetCancelledEvent(ts.Code, s.ownerCode(ts.UserID)))

	return "Timesheet cancelled successfully", nil
}

func (s *Service) reviewEntry(actor *auth.User, ts *tsDatamodel.Timesheet, entryCode string, action Action, comment string) (string, error) {
	if entryCode == "" {
		return "", ErrEntryRequired
	}

	var entry *tsDatamodel.TimesheetEntry
	for i := range ts.Entries {
		if ts.Entries[i].Code == entryCode {
			entry = &ts.Entries[i]
			break
		}
	}
	if entry == nil {
		return "", ErrEntryNotFound
	}

	project, err := s.repo.ProjectByID(entry.ProjectID)
	if err != nil {
		return "", err
	}

	isManager := project.ManagerID != nil && *project.ManagerID == actor.ID
	if !CanReview(actor.Role, isManager) {
		s.logger.Warn("review denied",
			"entry_code", entry.Code,
			"user_code", actor.Code,
			"role", string(actor.Role))
		return "", ErrNotManager
	}

	if entry.Status != StatusPendingApproval {
		s.logger.Warn("entry is not pending approval",
			"entry_code", entry.Code,
			"current_status", StatusName(entry.Status))
		return "", ErrInvalidState
	}

	// Aggregate status is derived from the statuses as they stand before
	// this mutation.
	nextTimesheetStatus := NextTimesheetStatus(entryStatuses(ts.Entries), action)

	newEntryStatus := StatusApproved
	var approverID *int64
	if action == ActionApprove {
		approverID = &actor.ID
	} else {
		newEntryStatus = StatusRejected
	}

	err = s.repo.InTransaction(func(tx RepositoryAPI) error {
		if err := tx.UpdateEntryStatus([]int64{entry.ID}, newEntryStatus, approverID); err != nil {
			return err
		}
		history := &tsDatamodel.TimesheetHistory{
			TimesheetEntryID: entry.ID,
			OldStatus:        entry.Status,
			NewStatus:        newEntryStatus,
			ChangedBy:        actor.ID,
			Comment:          comment,
		}
		if err := tx.CreateHistory(history); err != nil {
			return err
		}
		return tx.UpdateTimesheetStatus(ts.ID, nextTimesheetStatus)
	})
	if err != nil {
		s.logger.Error("review transaction failed", "error", err, "entry_code", entry.Code)
		return "", err
	}

	s.logger.Info("entry reviewed",
		"entry_code", entry.Code,
		"action", string(action),
		"timesheet_status", StatusName(nextTimesheetStatus),
		"reviewer_code", actor.Code)

	ownerCode := s.ownerCode(ts.UserID)
	if action == ActionApprove {
		s.publish(events.NewTimesheetApprovedEvent(ts.Code, entry.Code, ownerCode, actor.Code, comment))
		return "Timesheet approved successfully", nil
	}
	s.publish(events.NewTimesheetRejectedEvent(ts.Code, entry.Code, ownerCode, actor.Code, comment))
	return "Timesheet rejected successfully", nil
}

// DeleteEntry removes a draft entry owned by the acting user, along with
// any history rows referencing it.
func (s *Service) DeleteEntry(actor *auth.User, entryCode string) (string, error) {
	entry, err := s.repo.EntryByCode(entryCode)
	if err != nil {
		return "", err
	}

	ts, err := s.repo.TimesheetByID(entry.TimesheetID)
	if err != nil {
		return "", err
	}

	if ts.UserID != actor.ID {
		s.logger.Warn("delete denied: not the owner", "entry_code", entryCode, "user_code", actor.Code)
		return "", ErrNotOwner
	}

	if entry.Status != StatusDraft {
		s.logger.Warn("delete denied: entry is not draft",
			"entry_code", entryCode,
			"current_status", StatusName(entry.Status))
		return "", ErrInvalidState
	}

	err = s.repo.InTransaction(func(tx RepositoryAPI) error {
		if err := tx.PurgeHistoryForEntries([]int64{entry.ID}); err != nil {
			return err
		}
		return tx.DeleteEntry(entry.ID)
	})
	if err != nil {
		s.logger.Error("delete transaction failed", "error", err, "entry_code", entryCode)
		return "", err
	}

	s.logger.Info("entry deleted", "entry_code", entryCode, "user_code", actor.Code)
	return "Entry deleted successfully", nil
}

// GetTimesheetDetail returns the full review view of a timesheet: entries
// with annotated day records, the audit trail, and the owner's previous
// and next timesheet codes. An empty code means the actor's current week,
// created on demand.
func (s *Service) GetTimesheetDetail(actor *auth.User, timesheetCode string) (*TimesheetDetail, error) {
	var ts *tsDatamodel.Timesheet
	var err error

	if timesheetCode == "" {
		ts, err = s.getOrCreateCurrentWeek(actor)
	} else {
		ts, err = s.repo.TimesheetByCode(timesheetCode)
	}
	if err != nil {
		return nil, err
	}

	if ts.UserID != actor.ID && !actor.IsBackOffice() && actor.Role != auth.RoleManager {
		return nil, ErrNotOwner
	}

	detail := &TimesheetDetail{
		TimesheetCode: ts.Code,
		WeekStart:     ts.WeekStart.Format(DateLayout),
		WeekEnd:       ts.WeekEnd.Format(DateLayout),
		Status:        StatusName(ts.Status),
		Entries:       make([]EntryView, 0, len(ts.Entries)),
		History:       []HistoryDetail{},
	}

	for i := range ts.Entries {
		view, err := s.buildEntryView(&ts.Entries[i], ts, actor)
		if err != nil {
			return nil, err
		}
		detail.Entries = append(detail.Entries, *view)
	}

	if len(ts.Entries) > 0 {
		history, err := s.repo.HistoryForEntries(entryIDs(ts.Entries))
		if err != nil {
			return nil, err
		}
		detail.History = history
	}

	prev, next, err := s.repo.AdjacentTimesheetCodes(ts.UserID, ts.WeekStart)
	if err != nil {
		return nil, err
	}
	detail.PrevTimesheetCode = prev
	detail.NextTimesheetCode = next

	return detail, nil
}

// ListTimesheets returns a paginated listing scoped by role: back-office
// roles see the whole organization, everyone else their own sheets.
func (s *Service) ListTimesheets(actor *auth.User, page, perPage int) ([]TimesheetListItem, PageMeta, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	items, total, err := s.repo.ListTimesheets(actor.OrgID, actor.ID, !actor.IsBackOffice(), perPage, (page-1)*perPage)
	if err != nil {
		return nil, PageMeta{}, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	meta := PageMeta{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
	return items, meta, nil
}

// CreateWeeklyTimesheets is the weekly rollover, triggered by an external
// scheduler. Users who already have a sheet for the current week are
// skipped, so repeated invocations within one week are no-ops.
func (s *Service) CreateWeeklyTimesheets() (int, error) {
	weekStart, weekEnd := WeekBounds(time.Now())

	created, err := s.repo.CreateWeeklyTimesheets(weekStart, weekEnd, StatusDraft)
	if err != nil {
		s.logger.Error("weekly rollover failed", "error", err, "week_start", weekStart.Format(DateLayout))
		return 0, err
	}

	s.logger.Info("weekly rollover finished",
		"week_start", weekStart.Format(DateLayout),
		"created", created)
	return created, nil
}

// DraftTimesheetOwners lists reminder recipients: Manager and Employee
// users whose current-week timesheet is still Draft.
func (s *Service) DraftTimesheetOwners() ([]ReminderRecipient, error) {
	weekStart, _ := WeekBounds(time.Now())
	return s.repo.DraftTimesheetOwners(weekStart, []string{string(auth.RoleManager), string(auth.RoleEmployee)})
}

func (s *Service) getOrCreateCurrentWeek(actor *auth.User) (*tsDatamodel.Timesheet, error) {
	weekStart, weekEnd := WeekBounds(time.Now())

	ts, err := s.repo.TimesheetForUserWeek(actor.ID, weekStart)
	if err == nil {
		return ts, nil
	}
	if err != ErrTimesheetNotFound {
		return nil, err
	}

	ts = &tsDatamodel.Timesheet{
		UserID:    actor.ID,
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Status:    StatusDraft,
	}
	if err := s.repo.CreateTimesheet(ts); err != nil {
		return nil, err
	}

	s.logger.Info("timesheet created for current week",
		"timesheet_code", ts.Code,
		"user_code", actor.Code,
		"week_start", weekStart.Format(DateLayout))
	return ts, nil
}

func (s *Service) buildEntryView(entry *tsDatamodel.TimesheetEntry, ts *tsDatamodel.Timesheet, actor *auth.User) (*EntryView, error) {
	project, err := s.repo.ProjectByID(entry.ProjectID)
	if err != nil {
		return nil, err
	}
	task, err := s.repo.TaskByID(entry.TaskID)
	if err != nil {
		return nil, err
	}

	owner, err := s.repo.UserByID(ts.UserID)
	if err != nil {
		return nil, err
	}

	holidays, err := s.holidays.Resolve(owner.OrgID, ts.WeekStart, ts.WeekEnd)
	if err != nil {
		return nil, err
	}

	approverName := ""
	if entry.ApproverID != nil {
		if approver, err := s.repo.UserByID(*entry.ApproverID); err == nil {
			approverName = approver.FullName
		}
	}

	view := s.entryView(entry, ts, project, task, holidays, actor, approverName)
	return &view, nil
}

func (s *Service) entryView(entry *tsDatamodel.TimesheetEntry, ts *tsDatamodel.Timesheet, project *orgDatamodel.Project, task *orgDatamodel.Task, holidays map[string]struct{}, actor *auth.User, approverName string) EntryView {
	return EntryView{
		EntryCode:     entry.Code,
		TimesheetCode: ts.Code,
		ProjectCode:   project.Code,
		ProjectName:   project.Name,
		TaskCode:      task.Code,
		TaskName:      task.Name,
		WeekStart:     ts.WeekStart.Format(DateLayout),
		WeekEnd:       ts.WeekEnd.Format(DateLayout),
		Hours:         entry.Hours,
		Status:        StatusName(entry.Status),
		Comment:       entry.Comment,
		ApproverName:  approverName,
		TimeRecords:   buildTimeRecordViews(entry.TimeRecords, holidays, ts.UserID, actor.ID, entry.Status),
	}
}

func (s *Service) ownerCode(userID int64) string {
	owner, err := s.repo.UserByID(userID)
	if err != nil {
		return ""
	}
	return owner.Code
}

func (s *Service) publish(event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

func mergeRecords(existing tsDatamodel.TimeRecords, updates []TimeRecordDTO) (tsDatamodel.TimeRecords, error) {
	merged := make(tsDatamodel.TimeRecords, len(existing))
	copy(merged, existing)

	for _, update := range updates {
		found := false
		for i := range merged {
			if merged[i].Date == update.Date {
				merged[i].Hours = update.Hours
				merged[i].Note = update.Note
				found = true
				break
			}
		}
		if !found {
			return nil, internal.NewValidationError("date "+update.Date+" is not part of the timesheet week", internal.ErrCodeInvalidRecords)
		}
	}
	return merged, nil
}

func entryIDs(entries []tsDatamodel.TimesheetEntry) []int64 {
	ids := make([]int64, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	return ids
}

func entryStatuses(entries []tsDatamodel.TimesheetEntry) []int64 {
	statuses := make([]int64, 0, len(entries))
	for _, entry := range entries {
		statuses = append(statuses, entry.Status)
	}
	return statuses
}
