package timesheet_test

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/prasetyarht/timesheet-management/internal/auth"
	orgDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/organization"
	tsDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/prasetyarht/timesheet-management/internal/core/events"
	"github.com/prasetyarht/timesheet-management/internal/timesheet"
)

// In-memory repository for testing the workflow engine without a database.
type mockRepository struct {
	users      map[int64]*orgDatamodel.User
	projects   map[int64]*orgDatamodel.Project
	tasks      map[int64]*orgDatamodel.Task
	timesheets map[int64]*tsDatamodel.Timesheet
	entries    map[int64]*tsDatamodel.TimesheetEntry
	history    []*tsDatamodel.TimesheetHistory
	members    map[[2]int64]bool
	nextID     int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:      make(map[int64]*orgDatamodel.User),
		projects:   make(map[int64]*orgDatamodel.Project),
		tasks:      make(map[int64]*orgDatamodel.Task),
		timesheets: make(map[int64]*tsDatamodel.Timesheet),
		entries:    make(map[int64]*tsDatamodel.TimesheetEntry),
		members:    make(map[[2]int64]bool),
		nextID:     1,
	}
}

func (m *mockRepository) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *mockRepository) addUser(orgID int64, fullName string) *orgDatamodel.User {
	u := &orgDatamodel.User{
		ID:       m.id(),
		OrgID:    orgID,
		FullName: fullName,
		IsActive: true,
	}
	u.Code = fmt.Sprintf("user-%d", u.ID)
	m.users[u.ID] = u
	return u
}

func (m *mockRepository) addProject(orgID int64, name string, managerID *int64) *orgDatamodel.Project {
	p := &orgDatamodel.Project{
		ID:        m.id(),
		OrgID:     orgID,
		Name:      name,
		ManagerID: managerID,
	}
	p.Code = fmt.Sprintf("project-%d", p.ID)
	m.projects[p.ID] = p
	return p
}

func (m *mockRepository) addTask(projectID int64, name string) *orgDatamodel.Task {
	t := &orgDatamodel.Task{
		ID:        m.id(),
		ProjectID: projectID,
		Name:      name,
	}
	t.Code = fmt.Sprintf("task-%d", t.ID)
	m.tasks[t.ID] = t
	return t
}

func (m *mockRepository) assignToProject(userID, projectID int64) {
	m.members[[2]int64{userID, projectID}] = true
}

func (m *mockRepository) IsProjectMember(userID, projectID int64) (bool, error) {
	return m.members[[2]int64{userID, projectID}], nil
}

func (m *mockRepository) entriesFor(timesheetID int64) []tsDatamodel.TimesheetEntry {
	var list []tsDatamodel.TimesheetEntry
	for _, e := range m.entries {
		if e.TimesheetID == timesheetID {
			list = append(list, *e)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (m *mockRepository) withEntries(ts *tsDatamodel.Timesheet) *tsDatamodel.Timesheet {
	copied := *ts
	copied.Entries = m.entriesFor(ts.ID)
	return &copied
}

func (m *mockRepository) InTransaction(fn func(tx timesheet.RepositoryAPI) error) error {
	return fn(m)
}

func (m *mockRepository) ProjectByCode(code string) (*orgDatamodel.Project, error) {
	for _, p := range m.projects {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, timesheet.ErrCodeNotFound
}

func (m *mockRepository) ProjectByID(id int64) (*orgDatamodel.Project, error) {
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, timesheet.ErrCodeNotFound
}

func (m *mockRepository) TaskByCode(code string) (*orgDatamodel.Task, error) {
	for _, t := range m.tasks {
		if t.Code == code {
			return t, nil
		}
	}
	return nil, timesheet.ErrCodeNotFound
}

func (m *mockRepository) TaskByID(id int64) (*orgDatamodel.Task, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, timesheet.ErrCodeNotFound
}

func (m *mockRepository) UserByID(id int64) (*orgDatamodel.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, timesheet.ErrCodeNotFound
}

func (m *mockRepository) TimesheetByCode(code string) (*tsDatamodel.Timesheet, error) {
	for _, ts := range m.timesheets {
		if ts.Code == code {
			return m.withEntries(ts), nil
		}
	}
	return nil, timesheet.ErrTimesheetNotFound
}

func (m *mockRepository) TimesheetByID(id int64) (*tsDatamodel.Timesheet, error) {
	if ts, ok := m.timesheets[id]; ok {
		return m.withEntries(ts), nil
	}
	return nil, timesheet.ErrTimesheetNotFound
}

func (m *mockRepository) TimesheetForUserWeek(userID int64, weekStart time.Time) (*tsDatamodel.Timesheet, error) {
	for _, ts := range m.timesheets {
		if ts.UserID == userID && ts.WeekStart.Equal(weekStart) {
			return m.withEntries(ts), nil
		}
	}
	return nil, timesheet.ErrTimesheetNotFound
}

func (m *mockRepository) CreateTimesheet(ts *tsDatamodel.Timesheet) error {
	ts.ID = m.id()
	if ts.Code == "" {
		ts.Code = fmt.Sprintf("timesheet-%d", ts.ID)
	}
	stored := *ts
	m.timesheets[ts.ID] = &stored
	return nil
}

func (m *mockRepository) UpdateTimesheetStatus(id int64, status int64) error {
	if ts, ok := m.timesheets[id]; ok {
		ts.Status = status
	}
	return nil
}

func (m *mockRepository) AdjacentTimesheetCodes(userID int64, weekStart time.Time) (string, string, error) {
	prev, next := "", ""
	var prevWeek, nextWeek time.Time
	for _, ts := range m.timesheets {
		if ts.UserID != userID {
			continue
		}
		if ts.WeekStart.Before(weekStart) && (prev == "" || ts.WeekStart.After(prevWeek)) {
			prev, prevWeek = ts.Code, ts.WeekStart
		}
		if ts.WeekStart.After(weekStart) && (next == "" || ts.WeekStart.Before(nextWeek)) {
			next, nextWeek = ts.Code, ts.WeekStart
		}
	}
	return prev, next, nil
}

func (m *mockRepository) ListTimesheets(orgID, userID int64, ownOnly bool, limit, offset int) ([]timesheet.TimesheetListItem, int64, error) {
	var items []timesheet.TimesheetListItem
	for _, ts := range m.timesheets {
		owner, ok := m.users[ts.UserID]
		if !ok || owner.OrgID != orgID {
			continue
		}
		if ownOnly && ts.UserID != userID {
			continue
		}
		items = append(items, timesheet.TimesheetListItem{
			TimesheetCode: ts.Code,
			UserName:      owner.FullName,
			WeekStart:     ts.WeekStart.Format(timesheet.DateLayout),
			WeekEnd:       ts.WeekEnd.Format(timesheet.DateLayout),
			Status:        timesheet.StatusName(ts.Status),
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].TimesheetCode < items[j].TimesheetCode })

	total := int64(len(items))
	if offset >= len(items) {
		return []timesheet.TimesheetListItem{}, total, nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], total, nil
}

func (m *mockRepository) EntryByCode(code string) (*tsDatamodel.TimesheetEntry, error) {
	for _, e := range m.entries {
		if e.Code == code {
			copied := *e
			return &copied, nil
		}
	}
	return nil, timesheet.ErrEntryNotFound
}

func (m *mockRepository) EntryForTimesheetProjectTask(timesheetID, projectID, taskID int64) (*tsDatamodel.TimesheetEntry, error) {
	for _, e := range m.entries {
		if e.TimesheetID == timesheetID && e.ProjectID == projectID && e.TaskID == taskID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, timesheet.ErrEntryNotFound
}

func (m *mockRepository) CreateEntry(entry *tsDatamodel.TimesheetEntry) error {
	entry.ID = m.id()
	if entry.Code == "" {
		entry.Code = fmt.Sprintf("entry-%d", entry.ID)
	}
	stored := *entry
	m.entries[entry.ID] = &stored
	return nil
}

func (m *mockRepository) UpdateEntryRecords(id int64, records tsDatamodel.TimeRecords, hours float64, comment *string) error {
	e, ok := m.entries[id]
	if !ok {
		return timesheet.ErrEntryNotFound
	}
	e.TimeRecords = records
	e.Hours = hours
	if comment != nil {
		e.Comment = *comment
	}
	return nil
}

func (m *mockRepository) UpdateEntryStatus(ids []int64, status int64, approverID *int64) error {
	for _, id := range ids {
		if e, ok := m.entries[id]; ok {
			e.Status = status
			if approverID != nil {
				e.ApproverID = approverID
			}
		}
	}
	return nil
}

func (m *mockRepository) DeleteEntry(id int64) error {
	delete(m.entries, id)
	return nil
}

func (m *mockRepository) CreateHistory(h *tsDatamodel.TimesheetHistory) error {
	h.ID = m.id()
	h.CreatedAt = time.Now()
	stored := *h
	m.history = append(m.history, &stored)
	return nil
}

func (m *mockRepository) HistoryForEntries(entryIDs []int64) ([]timesheet.HistoryDetail, error) {
	wanted := make(map[int64]bool, len(entryIDs))
	for _, id := range entryIDs {
		wanted[id] = true
	}
	var details []timesheet.HistoryDetail
	for _, h := range m.history {
		if !wanted[h.TimesheetEntryID] {
			continue
		}
		entryCode := ""
		if e, ok := m.entries[h.TimesheetEntryID]; ok {
			entryCode = e.Code
		}
		changedBy := ""
		if u, ok := m.users[h.ChangedBy]; ok {
			changedBy = u.FullName
		}
		details = append(details, timesheet.HistoryDetail{
			EntryCode: entryCode,
			OldStatus: timesheet.StatusName(h.OldStatus),
			NewStatus: timesheet.StatusName(h.NewStatus),
			ChangedBy: changedBy,
			Comment:   h.Comment,
			Time:      h.CreatedAt,
		})
	}
	return details, nil
}

func (m *mockRepository) PurgeHistoryForEntries(entryIDs []int64) error {
	wanted := make(map[int64]bool, len(entryIDs))
	for _, id := range entryIDs {
		wanted[id] = true
	}
	kept := m.history[:0]
	for _, h := range m.history {
		if !wanted[h.TimesheetEntryID] {
			kept = append(kept, h)
		}
	}
	m.history = kept
	return nil
}

func (m *mockRepository) CreateWeeklyTimesheets(weekStart, weekEnd time.Time, status int64) (int, error) {
	created := 0
	for _, u := range m.users {
		if !u.IsActive {
			continue
		}
		if _, err := m.TimesheetForUserWeek(u.ID, weekStart); err == nil {
			continue
		}
		_ = m.CreateTimesheet(&tsDatamodel.Timesheet{
			UserID:    u.ID,
			WeekStart: weekStart,
			WeekEnd:   weekEnd,
			Status:    status,
		})
		created++
	}
	return created, nil
}

func (m *mockRepository) DraftTimesheetOwners(weekStart time.Time, roles []string) ([]timesheet.ReminderRecipient, error) {
	var recipients []timesheet.ReminderRecipient
	for _, ts := range m.timesheets {
		if !ts.WeekStart.Equal(weekStart) || ts.Status != timesheet.StatusDraft {
			continue
		}
		if u, ok := m.users[ts.UserID]; ok {
			recipients = append(recipients, timesheet.ReminderRecipient{Email: u.Email, FullName: u.FullName})
		}
	}
	return recipients, nil
}

// Fixed-set holiday resolver for tests.
type mockHolidayResolver struct {
	dates map[string]struct{}
}

func (m *mockHolidayResolver) Resolve(_ int64, _, _ time.Time) (map[string]struct{}, error) {
	if m.dates == nil {
		return map[string]struct{}{}, nil
	}
	return m.dates, nil
}

// Event recorder standing in for the bus.
type mockPublisher struct {
	published []events.Event
}

func (m *mockPublisher) Publish(_ context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

func (m *mockPublisher) types() []string {
	var out []string
	for _, e := range m.published {
		out = append(out, e.EventType())
	}
	return out
}

var _ = Describe("TimesheetService", func() {
	var (
		service   *timesheet.Service
		repo      *mockRepository
		resolver  *mockHolidayResolver
		publisher *mockPublisher

		weekStart time.Time
		weekEnd   time.Time

		owner    *auth.User
		hr       *auth.User
		manager  *auth.User
		coworker *auth.User

		ownerRow   *orgDatamodel.User
		managerRow *orgDatamodel.User
		project    *orgDatamodel.Project
		task       *orgDatamodel.Task
	)

	asActor := func(row *orgDatamodel.User, role auth.Role) *auth.User {
		return &auth.User{
			ID:       row.ID,
			Code:     row.Code,
			OrgID:    row.OrgID,
			FullName: row.FullName,
			Role:     role,
			IsActive: true,
		}
	}

	// Creates a draft entry for owner's current week via the service.
	createEntry := func() *timesheet.EntryView {
		view, err := service.CreateEntry(owner, timesheet.CreateEntryDTO{
			ProjectCode: project.Code,
			TaskCode:    task.Code,
		})
		Expect(err).ToNot(HaveOccurred())
		return view
	}

	submitTimesheet := func(timesheetCode string) {
		_, err := service.Review(owner, timesheet.ReviewDTO{
			TimesheetCode: timesheetCode,
			Action:        "submit",
		})
		Expect(err).ToNot(HaveOccurred())
	}

	BeforeEach(func() {
		repo = newMockRepository()
		resolver = &mockHolidayResolver{}
		publisher = &mockPublisher{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = timesheet.NewService(repo, resolver, publisher, logger)

		weekStart, weekEnd = timesheet.WeekBounds(time.Now())

		ownerRow = repo.addUser(1, "Sari Dewi")
		managerRow = repo.addUser(1, "Budi Santoso")
		coworkerRow := repo.addUser(1, "Joko Widagdo")
		hrRow := repo.addUser(1, "Rina Hartati")

		owner = asActor(ownerRow, auth.RoleEmployee)
		manager = asActor(managerRow, auth.RoleManager)
		coworker = asActor(coworkerRow, auth.RoleEmployee)
		hr = asActor(hrRow, auth.RoleHR)

		project = repo.addProject(1, "Internal Platform", &managerRow.ID)
		task = repo.addTask(project.ID, "Development")
		repo.assignToProject(ownerRow.ID, project.ID)
	})

	Describe("CreateEntry", func() {
		It("should create the current-week timesheet on demand with a 7-day skeleton", func() {
			view := createEntry()

			Expect(view.WeekStart).To(Equal(weekStart.Format(timesheet.DateLayout)))
			Expect(view.WeekEnd).To(Equal(weekEnd.Format(timesheet.DateLayout)))
			Expect(view.Status).To(Equal("Draft"))
			Expect(view.Hours).To(BeZero())
			Expect(view.TimeRecords).To(HaveLen(7))
			Expect(view.TimeRecords[0].Date).To(Equal(weekStart.Format(timesheet.DateLayout)))

			ts, err := repo.TimesheetForUserWeek(owner.ID, weekStart)
			Expect(err).ToNot(HaveOccurred())
			Expect(ts.Status).To(Equal(timesheet.StatusDraft))
		})

		It("should be idempotent for the same project and task", func() {
			first := createEntry()
			second := createEntry()

			Expect(second.EntryCode).To(Equal(first.EntryCode))
			Expect(repo.entries).To(HaveLen(1))
		})

		It("should reject a task that belongs to another project", func() {
			otherProject := repo.addProject(1, "Client Portal", &managerRow.ID)
			otherTask := repo.addTask(otherProject.ID, "QA")

			_, err := service.CreateEntry(owner, timesheet.CreateEntryDTO{
				ProjectCode: project.Code,
				TaskCode:    otherTask.Code,
			})
			Expect(err).To(HaveOccurred())
		})

		It("should refuse a user who is not assigned to the project", func() {
			_, err := service.CreateEntry(coworker, timesheet.CreateEntryDTO{
				ProjectCode: project.Code,
				TaskCode:    task.Code,
			})
			Expect(err).To(MatchError(timesheet.ErrNotMember))
		})

		It("should let the manager of record log time without an assignment", func() {
			view, err := service.CreateEntry(manager, timesheet.CreateEntryDTO{
				ProjectCode: project.Code,
				TaskCode:    task.Code,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(view.Status).To(Equal("Draft"))
		})

		It("should let back office log time without an assignment", func() {
			view, err := service.CreateEntry(hr, timesheet.CreateEntryDTO{
				ProjectCode: project.Code,
				TaskCode:    task.Code,
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(view.Status).To(Equal("Draft"))
		})

		It("should return not found for an unknown project code", func() {
			_, err := service.CreateEntry(owner, timesheet.CreateEntryDTO{
				ProjectCode: "nope",
				TaskCode:    task.Code,
			})
			Expect(err).To(MatchError(timesheet.ErrCodeNotFound))
		})

		It("should flag weekends and holidays on the day records", func() {
			resolver.dates = map[string]struct{}{
				weekStart.Format(timesheet.DateLayout): {},
			}

			view := createEntry()

			Expect(view.TimeRecords[0].IsHoliday).To(BeTrue())
			Expect(view.TimeRecords[5].IsWeekend).To(BeTrue())
			Expect(view.TimeRecords[6].IsWeekend).To(BeTrue())
			Expect(view.TimeRecords[2].IsWeekend).To(BeFalse())
		})
	})

	Describe("UpdateEntries", func() {
		var entry *timesheet.EntryView

		BeforeEach(func() {
			entry = createEntry()
		})

		It("should overwrite hours by date and recompute the weekly total", func() {
			monday := weekStart.Format(timesheet.DateLayout)
			tuesday := weekStart.AddDate(0, 0, 1).Format(timesheet.DateLayout)

			views, err := service.UpdateEntries(owner, timesheet.UpdateEntriesDTO{
				Entries: []timesheet.UpdateEntryDTO{{
					EntryCode: entry.EntryCode,
					TimeRecords: []timesheet.TimeRecordDTO{
						{Date: monday, Hours: 8, Note: "standup, coding"},
						{Date: tuesday, Hours: 6.5},
					},
				}},
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(views).To(HaveLen(1))
			Expect(views[0].Hours).To(BeNumerically("~", 14.5))
			Expect(views[0].TimeRecords[0].Hours).To(BeNumerically("~", 8))
			Expect(views[0].TimeRecords[0].Note).To(Equal("standup, coding"))
			// untouched days keep their zero hours
			Expect(views[0].TimeRecords[3].Hours).To(BeZero())
		})

		It("should reject a date outside the timesheet week", func() {
			outside := weekStart.AddDate(0, 0, 9).Format(timesheet.DateLayout)

			_, err := service.UpdateEntries(owner, timesheet.UpdateEntriesDTO{
				Entries: []timesheet.UpdateEntryDTO{{
					EntryCode:   entry.EntryCode,
					TimeRecords: []timesheet.TimeRecordDTO{{Date: outside, Hours: 4}},
				}},
			})
			Expect(err).To(HaveOccurred())
		})

		It("should leave every entry untouched when one of the batch fails", func() {
			qa := repo.addTask(project.ID, "QA")
			second, err := service.CreateEntry(owner, timesheet.CreateEntryDTO{
				ProjectCode: project.Code,
				TaskCode:    qa.Code,
			})
			Expect(err).ToNot(HaveOccurred())

			monday := weekStart.Format(timesheet.DateLayout)
			outside := weekStart.AddDate(0, 0, 9).Format(timesheet.DateLayout)

			_, err = service.UpdateEntries(owner, timesheet.UpdateEntriesDTO{
				Entries: []timesheet.UpdateEntryDTO{
					{
						EntryCode:   entry.EntryCode,
						TimeRecords: []timesheet.TimeRecordDTO{{Date: monday, Hours: 8}},
					},
					{
						EntryCode:   second.EntryCode,
						TimeRecords: []timesheet.TimeRecordDTO{{Date: outside, Hours: 4}},
					},
				},
			})
			Expect(err).To(HaveOccurred())

			// the valid first update must not have been written
			stored, err := repo.EntryByCode(entry.EntryCode)
			Expect(err).ToNot(HaveOccurred())
			Expect(stored.Hours).To(BeZero())
			for _, rec := range stored.TimeRecords {
				Expect(rec.Hours).To(BeZero())
			}
		})

		It("should refuse a coworker who does not own the entry", func() {
			monday := weekStart.Format(timesheet.DateLayout)

			_, err := service.UpdateEntries(coworker, timesheet.UpdateEntriesDTO{
				Entries: []timesheet.UpdateEntryDTO{{
					EntryCode:   entry.EntryCode,
					TimeRecords: []timesheet.TimeRecordDTO{{Date: monday, Hours: 4}},
				}},
			})
			Expect(err).To(MatchError(timesheet.ErrNotOwner))
		})

		It("should allow HR to edit on behalf of the owner", func() {
			monday := weekStart.Format(timesheet.DateLayout)

			views, err := service.UpdateEntries(hr, timesheet.UpdateEntriesDTO{
				Entries: []timesheet.UpdateEntryDTO{{
					EntryCode:   entry.EntryCode,
					TimeRecords: []timesheet.TimeRecordDTO{{Date: monday, Hours: 3}},
				}},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(views[0].Hours).To(BeNumerically("~", 3))
		})

		It("should chain a submit when requested", func() {
			monday := weekStart.Format(timesheet.DateLayout)

			views, err := service.UpdateEntries(owner, timesheet.UpdateEntriesDTO{
				Entries: []timesheet.UpdateEntryDTO{{
					EntryCode:   entry.EntryCode,
					TimeRecords: []timesheet.TimeRecordDTO{{Date: monday, Hours: 8}},
				}},
				Action: "submit",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(views[0].Status).To(Equal("Pending Approval"))
			Expect(publisher.types()).To(ContainElement(events.EventTypeTimesheetSubmitted))
		})
	})

	Describe("Review: submit", func() {
		var entry *timesheet.EntryView

		BeforeEach(func() {
			entry = createEntry()
		})

		It("should move every entry and the timesheet to Pending Approval and write history", func() {
			message, err := service.Review(owner, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				Action:        "submit",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(message).To(Equal("Timesheet submitted successfully"))

			ts, err := repo.TimesheetByCode(entry.TimesheetCode)
			Expect(err).ToNot(HaveOccurred())
			Expect(ts.Status).To(Equal(timesheet.StatusPendingApproval))
			Expect(ts.Entries[0].Status).To(Equal(timesheet.StatusPendingApproval))

			Expect(repo.history).To(HaveLen(1))
			Expect(repo.history[0].OldStatus).To(Equal(timesheet.StatusDraft))
			Expect(repo.history[0].NewStatus).To(Equal(timesheet.StatusPendingApproval))
			Expect(repo.history[0].ChangedBy).To(Equal(owner.ID))

			Expect(publisher.types()).To(ConsistOf(events.EventTypeTimesheetSubmitted))
		})

		It("should refuse to submit twice", func() {
			submitTimesheet(entry.TimesheetCode)

			_, err := service.Review(owner, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				Action:        "submit",
			})
			Expect(err).To(MatchError(timesheet.ErrInvalidTransition))
		})

		It("should refuse to submit an empty timesheet", func() {
			detail, err := service.GetTimesheetDetail(coworker, "")
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Review(coworker, timesheet.ReviewDTO{
				TimesheetCode: detail.TimesheetCode,
				Action:        "submit",
			})
			Expect(err).To(MatchError(timesheet.ErrInvalidTransition))
		})

		It("should refuse a non-owner", func() {
			_, err := service.Review(coworker, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				Action:        "submit",
			})
			Expect(err).To(MatchError(timesheet.ErrNotOwner))
		})
	})

	Describe("Review: cancel", func() {
		var entry *timesheet.EntryView

		BeforeEach(func() {
			entry = createEntry()
			submitTimesheet(entry.TimesheetCode)
		})

		It("should roll everything back to Draft and purge history", func() {
			Expect(repo.history).ToNot(BeEmpty())

			message, err := service.Review(owner, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				Action:        "cancel",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(message).To(Equal("Timesheet cancelled successfully"))

			ts, err := repo.TimesheetByCode(entry.TimesheetCode)
			Expect(err).ToNot(HaveOccurred())
			Expect(ts.Status).To(Equal(timesheet.StatusDraft))
			Expect(ts.Entries[0].Status).To(Equal(timesheet.StatusDraft))
			Expect(repo.history).To(BeEmpty())

			Expect(publisher.types()).To(ContainElement(events.EventTypeTimesheetCancelled))
		})

		It("should only cancel from Pending Approval", func() {
			_, err := service.Review(owner, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				Action:        "cancel",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Review(owner, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				Action:        "cancel",
			})
			Expect(err).To(MatchError(timesheet.ErrInvalidTransition))
		})
	})

	Describe("Review: approve and reject", func() {
		var entry *timesheet.EntryView

		BeforeEach(func() {
			entry = createEntry()
			submitTimesheet(entry.TimesheetCode)
		})

		It("should approve the only entry and mark the timesheet Approved", func() {
			message, err := service.Review(manager, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				EntryCode:     entry.EntryCode,
				Action:        "approve",
				Comment:       "looks good",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(message).To(Equal("Timesheet approved successfully"))

			ts, err := repo.TimesheetByCode(entry.TimesheetCode)
			Expect(err).ToNot(HaveOccurred())
			Expect(ts.Status).To(Equal(timesheet.StatusApproved))
			Expect(ts.Entries[0].Status).To(Equal(timesheet.StatusApproved))
			Expect(ts.Entries[0].ApproverID).ToNot(BeNil())
			Expect(*ts.Entries[0].ApproverID).To(Equal(manager.ID))

			Expect(publisher.types()).To(ContainElement(events.EventTypeTimesheetApproved))
		})

		It("should leave the timesheet partially approved while siblings are outstanding", func() {
			// recall, add a second entry, submit both
			_, err := service.Review(owner, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				Action:        "cancel",
			})
			Expect(err).ToNot(HaveOccurred())

			otherTask := repo.addTask(project.ID, "Code Review")
			second, err := service.CreateEntry(owner, timesheet.CreateEntryDTO{
				ProjectCode: project.Code,
				TaskCode:    otherTask.Code,
			})
			Expect(err).ToNot(HaveOccurred())
			submitTimesheet(entry.TimesheetCode)

			_, err = service.Review(manager, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				EntryCode:     entry.EntryCode,
				Action:        "approve",
			})
			Expect(err).ToNot(HaveOccurred())

			ts, err := repo.TimesheetByCode(entry.TimesheetCode)
			Expect(err).ToNot(HaveOccurred())
			Expect(ts.Status).To(Equal(timesheet.StatusPartialApprove))

			// approving the last outstanding entry finishes the sheet
			_, err = service.Review(manager, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				EntryCode:     second.EntryCode,
				Action:        "approve",
			})
			Expect(err).ToNot(HaveOccurred())

			ts, err = repo.TimesheetByCode(entry.TimesheetCode)
			Expect(err).ToNot(HaveOccurred())
			Expect(ts.Status).To(Equal(timesheet.StatusApproved))
		})

		It("should mark the timesheet Partial Reject on any rejection", func() {
			message, err := service.Review(manager, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				EntryCode:     entry.EntryCode,
				Action:        "reject",
				Comment:       "wrong project",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(message).To(Equal("Timesheet rejected successfully"))

			ts, err := repo.TimesheetByCode(entry.TimesheetCode)
			Expect(err).ToNot(HaveOccurred())
			Expect(ts.Status).To(Equal(timesheet.StatusPartialReject))
			Expect(ts.Entries[0].Status).To(Equal(timesheet.StatusRejected))
			Expect(ts.Entries[0].ApproverID).To(BeNil())

			Expect(publisher.types()).To(ContainElement(events.EventTypeTimesheetRejected))
		})

		It("should require an entry code", func() {
			_, err := service.Review(manager, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				Action:        "approve",
			})
			Expect(err).To(MatchError(timesheet.ErrEntryRequired))
		})

		It("should refuse a reviewer who is not the manager of record", func() {
			outsider := repo.addUser(1, "Lina Manager")
			_, err := service.Review(asActor(outsider, auth.RoleManager), timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				EntryCode:     entry.EntryCode,
				Action:        "approve",
			})
			Expect(err).To(MatchError(timesheet.ErrNotManager))
		})

		It("should refuse the manager of record without a reviewing role", func() {
			_, err := service.Review(asActor(managerRow, auth.RoleEmployee), timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				EntryCode:     entry.EntryCode,
				Action:        "approve",
			})
			Expect(err).To(MatchError(timesheet.ErrNotManager))
		})

		It("should refuse to re-review a decided entry", func() {
			_, err := service.Review(manager, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				EntryCode:     entry.EntryCode,
				Action:        "approve",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.Review(manager, timesheet.ReviewDTO{
				TimesheetCode: entry.TimesheetCode,
				EntryCode:     entry.EntryCode,
				Action:        "reject",
			})
			Expect(err).To(MatchError(timesheet.ErrInvalidState))
		})
	})

	Describe("DeleteEntry", func() {
		var entry *timesheet.EntryView

		BeforeEach(func() {
			entry = createEntry()
		})

		It("should delete a draft entry owned by the actor", func() {
			message, err := service.DeleteEntry(owner, entry.EntryCode)
			Expect(err).ToNot(HaveOccurred())
			Expect(message).To(Equal("Entry deleted successfully"))
			Expect(repo.entries).To(BeEmpty())
		})

		It("should refuse a non-owner", func() {
			_, err := service.DeleteEntry(coworker, entry.EntryCode)
			Expect(err).To(MatchError(timesheet.ErrNotOwner))
		})

		It("should refuse once the entry left Draft", func() {
			submitTimesheet(entry.TimesheetCode)

			_, err := service.DeleteEntry(owner, entry.EntryCode)
			Expect(err).To(MatchError(timesheet.ErrInvalidState))
		})
	})

	Describe("GetTimesheetDetail", func() {
		It("should create the current week on demand when no code is given", func() {
			detail, err := service.GetTimesheetDetail(owner, "")
			Expect(err).ToNot(HaveOccurred())
			Expect(detail.WeekStart).To(Equal(weekStart.Format(timesheet.DateLayout)))
			Expect(detail.Status).To(Equal("Draft"))
			Expect(detail.Entries).To(BeEmpty())
			Expect(repo.timesheets).To(HaveLen(1))
		})

		It("should include entries, history and neighbor codes", func() {
			entry := createEntry()
			submitTimesheet(entry.TimesheetCode)

			prevWeek := weekStart.AddDate(0, 0, -7)
			prevSheet := &tsDatamodel.Timesheet{
				UserID:    owner.ID,
				WeekStart: prevWeek,
				WeekEnd:   prevWeek.AddDate(0, 0, 6),
				Status:    timesheet.StatusApproved,
			}
			Expect(repo.CreateTimesheet(prevSheet)).To(Succeed())

			detail, err := service.GetTimesheetDetail(owner, entry.TimesheetCode)
			Expect(err).ToNot(HaveOccurred())
			Expect(detail.Entries).To(HaveLen(1))
			Expect(detail.Entries[0].ProjectName).To(Equal("Internal Platform"))
			Expect(detail.History).To(HaveLen(1))
			Expect(detail.History[0].NewStatus).To(Equal("Pending Approval"))
			Expect(detail.History[0].ChangedBy).To(Equal("Sari Dewi"))
			Expect(detail.PrevTimesheetCode).To(Equal(prevSheet.Code))
			Expect(detail.NextTimesheetCode).To(BeEmpty())
		})

		It("should refuse an employee looking at a coworker's sheet", func() {
			entry := createEntry()

			_, err := service.GetTimesheetDetail(coworker, entry.TimesheetCode)
			Expect(err).To(MatchError(timesheet.ErrNotOwner))
		})

		It("should let HR view anyone's sheet", func() {
			entry := createEntry()

			detail, err := service.GetTimesheetDetail(hr, entry.TimesheetCode)
			Expect(err).ToNot(HaveOccurred())
			Expect(detail.TimesheetCode).To(Equal(entry.TimesheetCode))
		})

		It("should mark pending entries read-only for the owner", func() {
			entry := createEntry()
			submitTimesheet(entry.TimesheetCode)

			detail, err := service.GetTimesheetDetail(owner, entry.TimesheetCode)
			Expect(err).ToNot(HaveOccurred())
			for _, record := range detail.Entries[0].TimeRecords {
				Expect(record.IsEditable).To(BeFalse())
			}
		})
	})

	Describe("ListTimesheets", func() {
		BeforeEach(func() {
			createEntry()
			_, err := service.GetTimesheetDetail(coworker, "")
			Expect(err).ToNot(HaveOccurred())
		})

		It("should scope employees to their own sheets", func() {
			items, meta, err := service.ListTimesheets(owner, 1, 10)
			Expect(err).ToNot(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0].UserName).To(Equal("Sari Dewi"))
			Expect(meta.Total).To(Equal(int64(1)))
		})

		It("should show HR the whole organization", func() {
			items, meta, err := service.ListTimesheets(hr, 1, 10)
			Expect(err).ToNot(HaveOccurred())
			Expect(items).To(HaveLen(2))
			Expect(meta.TotalPages).To(Equal(1))
		})

		It("should paginate with sane defaults", func() {
			items, meta, err := service.ListTimesheets(hr, 0, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(meta.Page).To(Equal(1))
			Expect(meta.PerPage).To(Equal(1))
			Expect(meta.TotalPages).To(Equal(2))
		})
	})
})
