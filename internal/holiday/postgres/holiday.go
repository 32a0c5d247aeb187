package postgres

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	tsDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/prasetyarht/timesheet-management/internal/holiday"
	"github.com/prasetyarht/timesheet-management/pkg/logger"
)

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

func (r *Repository) HolidaysInRange(orgID int64, start, end time.Time) ([]tsDatamodel.Holiday, error) {
	var holidays []tsDatamodel.Holiday
	err := r.db.
		Where("org_id = ? AND date >= ? AND date <= ?", orgID, start, end).
		Order("date ASC").
		Find(&holidays).Error
	if err != nil {
		r.logger.Error("failed to query holidays", "error", err, "org_id", orgID)
		return nil, err
	}
	return holidays, nil
}

func (r *Repository) HolidayForDate(orgID int64, date time.Time) (*tsDatamodel.Holiday, error) {
	var h tsDatamodel.Holiday
	err := r.db.Where("org_id = ? AND date = ?", orgID, date).First(&h).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, holiday.ErrHolidayNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *Repository) CreateHoliday(h *tsDatamodel.Holiday) error {
	if err := r.db.Create(h).Error; err != nil {
		r.logger.Error("failed to create holiday", "error", err, "org_id", h.OrgID)
		return err
	}
	return nil
}
