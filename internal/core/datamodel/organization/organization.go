package organization

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	ID        int64     `gorm:"primaryKey"`
	Code      string    `gorm:"column:code;size:36;uniqueIndex;not null"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Organization) TableName() string {
	return "organizations"
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.Code == "" {
		o.Code = uuid.NewString()
	}
	return nil
}

type UserRole struct {
	ID          int64  `gorm:"primaryKey"`
	Code        string `gorm:"column:code;size:36;uniqueIndex;not null"`
	Name        string `gorm:"column:name;uniqueIndex;not null"`
	Description string `gorm:"column:description"`
}

func (UserRole) TableName() string {
	return "user_roles"
}

func (r *UserRole) BeforeCreate(tx *gorm.DB) error {
	if r.Code == "" {
		r.Code = uuid.NewString()
	}
	return nil
}

type User struct {
	ID           int64     `gorm:"primaryKey"`
	Code         string    `gorm:"column:code;size:36;uniqueIndex;not null"`
	OrgID        int64     `gorm:"column:org_id;not null"`
	RoleID       int64     `gorm:"column:role_id;not null"`
	ReportsTo    *int64    `gorm:"column:reports_to"`
	Username     string    `gorm:"column:username;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	FullName     string    `gorm:"column:full_name;not null"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Organization *Organization `gorm:"foreignKey:OrgID"`
	Role         *UserRole     `gorm:"foreignKey:RoleID"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Code == "" {
		u.Code = uuid.NewString()
	}
	return nil
}

type Project struct {
	ID          int64      `gorm:"primaryKey"`
	Code        string     `gorm:"column:code;size:36;uniqueIndex;not null"`
	OrgID       int64      `gorm:"column:org_id;not null"`
	ManagerID   *int64     `gorm:"column:manager_id"`
	Name        string     `gorm:"column:name;not null"`
	Description string     `gorm:"column:description"`
	StartDate   *time.Time `gorm:"column:start_date;type:date"`
	EndDate     *time.Time `gorm:"column:end_date;type:date"`
	IsActive    bool       `gorm:"column:is_active;default:true"`
	CreatedBy   int64      `gorm:"column:created_by"`
	UpdatedBy   *int64     `gorm:"column:updated_by"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`

	Manager *User `gorm:"foreignKey:ManagerID"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.Code == "" {
		p.Code = uuid.NewString()
	}
	return nil
}

type Task struct {
	ID          int64     `gorm:"primaryKey"`
	Code        string    `gorm:"column:code;size:36;uniqueIndex;not null"`
	ProjectID   int64     `gorm:"column:project_id;not null"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description"`
	IsActive    bool      `gorm:"column:is_active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.Code == "" {
		t.Code = uuid.NewString()
	}
	return nil
}

// UserProject maps users onto the projects they may log time against.
type UserProject struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_user_project"`
	ProjectID int64     `gorm:"column:project_id;not null;uniqueIndex:idx_user_project"`
	IsActive  bool      `gorm:"column:is_active;default:true"`
	CreatedBy int64     `gorm:"column:created_by"`
	UpdatedBy *int64    `gorm:"column:updated_by"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserProject) TableName() string {
	return "user_projects"
}
