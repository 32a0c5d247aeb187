package timesheet

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeRecord is the persisted shape of a single day inside the
// time_records JSON column. Derived flags (weekend, holiday, editable)
// are view concerns and never stored.
type TimeRecord struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
	Note  string  `json:"note"`
}

// TimeRecords serializes to a JSON array column.
type TimeRecords []TimeRecord

func (r TimeRecords) Value() (driver.Value, error) {
	if r == nil {
		r = TimeRecords{}
	}
	return json.Marshal(r)
}

func (r *TimeRecords) Scan(value interface{}) error {
	if value == nil {
		*r = TimeRecords{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	default:
		return fmt.Errorf("unsupported type for time_records: %T", value)
	}
}

type TimesheetStatus struct {
	ID          int64  `gorm:"primaryKey"`
	Code        string `gorm:"column:code;size:36;uniqueIndex;not null"`
	Name        string `gorm:"column:name;uniqueIndex;not null"`
	Description string `gorm:"column:description"`
}

func (TimesheetStatus) TableName() string {
	return "timesheet_status"
}

func (s *TimesheetStatus) BeforeCreate(tx *gorm.DB) error {
	if s.Code == "" {
		s.Code = uuid.NewString()
	}
	return nil
}

type Timesheet struct {
	ID        int64     `gorm:"primaryKey"`
	Code      string    `gorm:"column:code;size:36;uniqueIndex;not null"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_week"`
	WeekStart time.Time `gorm:"column:week_start;type:date;not null;uniqueIndex:idx_user_week"`
	WeekEnd   time.Time `gorm:"column:week_end;type:date;not null"`
	Status    int64     `gorm:"column:status;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Entries []TimesheetEntry `gorm:"foreignKey:TimesheetID;constraint:OnDelete:CASCADE"`
}

func (Timesheet) TableName() string {
	return "timesheets"
}

func (t *Timesheet) BeforeCreate(tx *gorm.DB) error {
	if t.Code == "" {
		t.Code = uuid.NewString()
	}
	return nil
}

type TimesheetEntry struct {
	ID          int64       `gorm:"primaryKey"`
	Code        string      `gorm:"column:code;size:36;uniqueIndex;not null"`
	TimesheetID int64       `gorm:"column:timesheet_id;not null;uniqueIndex:idx_entry_project_task"`
	ProjectID   int64       `gorm:"column:project_id;not null;uniqueIndex:idx_entry_project_task"`
	TaskID      int64       `gorm:"column:task_id;not null;uniqueIndex:idx_entry_project_task"`
	ApproverID  *int64      `gorm:"column:approver_id"`
	Hours       float64     `gorm:"column:hours;not null"`
	TimeRecords TimeRecords `gorm:"column:time_records;type:json;not null"`
	Status      int64       `gorm:"column:status;not null"`
	Comment     string      `gorm:"column:comment"`
	CreatedAt   time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}

func (TimesheetEntry) TableName() string {
	return "timesheet_entries"
}

func (e *TimesheetEntry) BeforeCreate(tx *gorm.DB) error {
	if e.Code == "" {
		e.Code = uuid.NewString()
	}
	return nil
}

// TimesheetHistory is the audit ledger for entry status transitions.
// Rows are append-only except under the cancel path, where they are
// purged together with the status rollback.
type TimesheetHistory struct {
	ID               int64     `gorm:"primaryKey"`
	TimesheetEntryID int64     `gorm:"column:timesheet_entry_id;not null;index"`
	OldStatus        int64     `gorm:"column:old_status"`
	NewStatus        int64     `gorm:"column:new_status"`
	ChangedBy        int64     `gorm:"column:changed_by"`
	Comment          string    `gorm:"column:comment"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (TimesheetHistory) TableName() string {
	return "timesheet_history"
}

type Holiday struct {
	ID          int64     `gorm:"primaryKey"`
	Code        string    `gorm:"column:code;size:36;uniqueIndex;not null"`
	OrgID       int64     `gorm:"column:org_id;not null;uniqueIndex:idx_org_date"`
	Date        time.Time `gorm:"column:date;type:date;not null;uniqueIndex:idx_org_date"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	CreatedBy   int64     `gorm:"column:created_by"`
	UpdatedBy   *int64    `gorm:"column:updated_by"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Holiday) TableName() string {
	return "holidays"
}

func (h *Holiday) BeforeCreate(tx *gorm.DB) error {
	if h.Code == "" {
		h.Code = uuid.NewString()
	}
	return nil
}
