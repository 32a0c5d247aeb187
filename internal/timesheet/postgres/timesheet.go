package postgres

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	orgDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/organization"
	tsDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/prasetyarht/timesheet-management/internal/timesheet"
	"github.com/prasetyarht/timesheet-management/pkg/logger"
)

// Repository persists timesheets, entries and their history through gorm.
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

func (r *Repository) InTransaction(fn func(tx timesheet.RepositoryAPI) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx, logger: r.logger})
	})
}

func (r *Repository) ProjectByCode(code string) (*orgDatamodel.Project, error) {
	var project orgDatamodel.Project
	if err := r.db.Where("code = ?", code).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheet.ErrCodeNotFound
		}
		r.logger.Error("failed to get project by code", "error", err, "code", code)
		return nil, err
	}
	return &project, nil
}

func (r *Repository) ProjectByID(id int64) (*orgDatamodel.Project, error) {
	var project orgDatamodel.Project
	if err := r.db.First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheet.ErrCodeNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (r *Repository) TaskByCode(code string) (*orgDatamodel.Task, error) {
	var task orgDatamodel.Task
	if err := r.db.Where("code = ?", code).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheet.ErrCodeNotFound
		}
		r.logger.Error("failed to get task by code", "error", err, "code", code)
		return nil, err
	}
	return &task, nil
}

func (r *Repository) TaskByID(id int64) (*orgDatamodel.Task, error) {
	var task orgDatamodel.Task
	if err := r.db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheet.ErrCodeNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *Repository) IsProjectMember(userID, projectID int64) (bool, error) {
	var count int64
	err := r.db.Model(&orgDatamodel.UserProject{}).
		Where("user_id = ? AND project_id = ? AND is_active = ?", userID, projectID, true).
		Count(&count).Error
	if err != nil {
		r.logger.Error("failed to check project membership", "error", err, "user_id", userID, "project_id", projectID)
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) UserByID(id int64) (*orgDatamodel.User, error) {
	var user orgDatamodel.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheet.ErrCodeNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) TimesheetByCode(code string) (*tsDatamodel.Timesheet, error) {
	var ts tsDatamodel.Timesheet
	err := r.db.Preload("Entries").Where("code = ?", code).First(&ts).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheet.ErrTimesheetNotFound
		}
		r.logger.Error("failed to get timesheet by code", "error", err, "code", code)
		return nil, err
	}
	return &ts, nil
}

func (r *Repository) TimesheetByID(id int64) (*tsDatamodel.Timesheet, error) {
	var ts tsDatamodel.Timesheet
	if err := r.db.Preload("Entries").First(&ts, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheet.ErrTimesheetNotFound
		}
		return nil, err
	}
	return &ts, nil
}

func (r *Repository) TimesheetForUserWeek(userID int64, weekStart time.Time) (*tsDatamodel.Timesheet, error) {
	var ts tsDatamodel.Timesheet
	err := r.db.Preload("Entries").
		Where("user_id = ? AND week_start = ?", userID, weekStart).
		First(&ts).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheet.ErrTimesheetNotFound
		}
		return nil, err
	}
	return &ts, nil
}

func (r *Repository) CreateTimesheet(ts *tsDatamodel.Timesheet) error {
	if err := r.db.Create(ts).Error; err != nil {
		r.logger.Error("failed to create timesheet", "error", err, "user_id", ts.UserID)
		return err
	}
	return nil
}

func (r *Repository) UpdateTimesheetStatus(id int64, status int64) error {
	return r.db.Model(&tsDatamodel.Timesheet{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *Repository) AdjacentTimesheetCodes(userID int64, weekStart time.Time) (string, string, error) {
	var prev, next tsDatamodel.Timesheet

	err := r.db.Select("code").
		Where("user_id = ? AND week_start < ?", userID, weekStart).
		Order("week_start DESC").
		First(&prev).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", err
	}

	err = r.db.Select("code").
		Where("user_id = ? AND week_start > ?", userID, weekStart).
		Order("week_start ASC").
		First(&next).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", "", err
	}

	return prev.Code, next.Code, nil
}

type timesheetListRow struct {
	Code      string
	FullName  string
	WeekStart time.Time
	WeekEnd   time.Time
	Status    int64
}

func (r *Repository) ListTimesheets(orgID, userID int64, ownOnly bool, limit, offset int) ([]timesheet.TimesheetListItem, int64, error) {
	base := r.db.Model(&tsDatamodel.Timesheet{}).
		Joins("JOIN users ON users.id = timesheets.user_id").
		Where("users.org_id = ?", orgID)
	if ownOnly {
		base = base.Where("timesheets.user_id = ?", userID)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []timesheetListRow
	err := base.
		Select("timesheets.code, users.full_name, timesheets.week_start, timesheets.week_end, timesheets.status").
		Order("timesheets.week_start DESC, users.full_name ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		r.logger.Error("failed to list timesheets", "error", err, "org_id", orgID)
		return nil, 0, err
	}

	items := make([]timesheet.TimesheetListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, timesheet.TimesheetListItem{
			TimesheetCode: row.Code,
			UserName:      row.FullName,
			WeekStart:     row.WeekStart.Format(timesheet.DateLayout),
			WeekEnd:       row.WeekEnd.Format(timesheet.DateLayout),
			Status:        timesheet.StatusName(row.Status),
		})
	}
	return items, total, nil
}

func (r *Repository) EntryByCode(code string) (*tsDatamodel.TimesheetEntry, error) {
	var entry tsDatamodel.TimesheetEntry
	if err := r.db.Where("code = ?", code).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheet.ErrEntryNotFound
		}
		r.logger.Error("failed to get entry by code", "error", err, "code", code)
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) EntryForTimesheetProjectTask(timesheetID, projectID, taskID int64) (*tsDatamodel.TimesheetEntry, error) {
	var entry tsDatamodel.TimesheetEntry
	err := r.db.
		Where("timesheet_id = ? AND project_id = ? AND task_id = ?", timesheetID, projectID, taskID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timesheet.ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) CreateEntry(entry *tsDatamodel.TimesheetEntry) error {
	if err := r.db.Create(entry).Error; err != nil {
		r.logger.Error("failed to create entry", "error", err, "timesheet_id", entry.TimesheetID)
		return err
	}
	return nil
}

func (r *Repository) UpdateEntryRecords(id int64, records tsDatamodel.TimeRecords, hours float64, comment *string) error {
	updates := map[string]interface{}{
		"time_records": records,
		"hours":        hours,
	}
	if comment != nil {
		updates["comment"] = *comment
	}
	return r.db.Model(&tsDatamodel.TimesheetEntry{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *Repository) UpdateEntryStatus(ids []int64, status int64, approverID *int64) error {
	if len(ids) == 0 {
		return nil
	}
	updates := map[string]interface{}{"status": status}
	if approverID != nil {
		updates["approver_id"] = *approverID
	}
	return r.db.Model(&tsDatamodel.TimesheetEntry{}).
		Where("id IN ?", ids).
		Updates(updates).Error
}

func (r *Repository) DeleteEntry(id int64) error {
	return r.db.Delete(&tsDatamodel.TimesheetEntry{}, id).Error
}

func (r *Repository) CreateHistory(h *tsDatamodel.TimesheetHistory) error {
	return r.db.Create(h).Error
}

type historyRow struct {
	EntryCode string
	OldStatus int64
	NewStatus int64
	ChangedBy string
	Comment   string
	CreatedAt time.Time
}

func (r *Repository) HistoryForEntries(entryIDs []int64) ([]timesheet.HistoryDetail, error) {
	if len(entryIDs) == 0 {
		return []timesheet.HistoryDetail{}, nil
	}

	var rows []historyRow
	err := r.db.Model(&tsDatamodel.TimesheetHistory{}).
		Joins("JOIN timesheet_entries ON timesheet_entries.id = timesheet_history.timesheet_entry_id").
		Joins("JOIN users ON users.id = timesheet_history.changed_by").
		Where("timesheet_history.timesheet_entry_id IN ?", entryIDs).
		Select("timesheet_entries.code AS entry_code, timesheet_history.old_status, timesheet_history.new_status, users.full_name AS changed_by, timesheet_history.comment, timesheet_history.created_at").
		Order("timesheet_history.created_at ASC, timesheet_history.id ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Error("failed to load history", "error", err)
		return nil, err
	}

	details := make([]timesheet.HistoryDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, timesheet.HistoryDetail{
			EntryCode: row.EntryCode,
			OldStatus: timesheet.StatusName(row.OldStatus),
			NewStatus: timesheet.StatusName(row.NewStatus),
			ChangedBy: row.ChangedBy,
			Comment:   row.Comment,
			Time:      row.CreatedAt,
		})
	}
	return details, nil
}

func (r *Repository) PurgeHistoryForEntries(entryIDs []int64) error {
	if len(entryIDs) == 0 {
		return nil
	}
	return r.db.
		Where("timesheet_entry_id IN ?", entryIDs).
		Delete(&tsDatamodel.TimesheetHistory{}).Error
}

// CreateWeeklyTimesheets inserts a draft timesheet for every active user
// who does not yet have one for the given week. Safe to call repeatedly.
func (r *Repository) CreateWeeklyTimesheets(weekStart, weekEnd time.Time, status int64) (int, error) {
	existing := r.db.Model(&tsDatamodel.Timesheet{}).
		Select("user_id").
		Where("week_start = ?", weekStart)

	var users []orgDatamodel.User
	err := r.db.
		Where("is_active = ?", true).
		Where("id NOT IN (?)", existing).
		Find(&users).Error
	if err != nil {
		return 0, err
	}

	created := 0
	for _, user := range users {
		ts := tsDatamodel.Timesheet{
			UserID:    user.ID,
			WeekStart: weekStart,
			WeekEnd:   weekEnd,
			Status:    status,
		}
		if err := r.db.Create(&ts).Error; err != nil {
			r.logger.Error("failed to create weekly timesheet", "error", err, "user_id", user.ID)
			return created, err
		}
		created++
	}
	return created, nil
}

func (r *Repository) DraftTimesheetOwners(weekStart time.Time, roles []string) ([]timesheet.ReminderRecipient, error) {
	var recipients []timesheet.ReminderRecipient
	err := r.db.Model(&tsDatamodel.Timesheet{}).
		Joins("JOIN users ON users.id = timesheets.user_id").
		Joins("JOIN user_roles ON user_roles.id = users.role_id").
		Where("timesheets.week_start = ?", weekStart).
		Where("timesheets.status = ?", timesheet.StatusDraft).
		Where("users.is_active = ?", true).
		Where("user_roles.name IN ?", roles).
		Select("users.email, users.full_name").
		Scan(&recipients).Error
	if err != nil {
		r.logger.Error("failed to list draft timesheet owners", "error", err)
		return nil, err
	}
	return recipients, nil
}
