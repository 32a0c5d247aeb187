package holiday

import (
	"log/slog"
	"time"

	"github.com/prasetyarht/timesheet-management/internal/auth"
	tsDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/prasetyarht/timesheet-management/internal/timesheet"
)

type RepositoryAPI interface {
	HolidaysInRange(orgID int64, start, end time.Time) ([]tsDatamodel.Holiday, error)
	HolidayForDate(orgID int64, date time.Time) (*tsDatamodel.Holiday, error)
	CreateHoliday(h *tsDatamodel.Holiday) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Resolve returns the holiday dates within [start, end] as a lookup set
// keyed by YYYY-MM-DD.
func (s *Service) Resolve(orgID int64, start, end time.Time) (map[string]struct{}, error) {
	holidays, err := s.repo.HolidaysInRange(orgID, start, end)
	if err != nil {
		s.logger.Error("failed to resolve holidays", "error", err, "org_id", orgID)
		return nil, err
	}

	set := make(map[string]struct{}, len(holidays))
	for _, h := range holidays {
		set[h.Date.Format(timesheet.DateLayout)] = struct{}{}
	}
	return set, nil
}

// ListHolidays returns the acting user's organization calendar for a year.
func (s *Service) ListHolidays(actor *auth.User, year int) ([]HolidayView, error) {
	if year == 0 {
		year = time.Now().Year()
	}
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	holidays, err := s.repo.HolidaysInRange(actor.OrgID, start, end)
	if err != nil {
		return nil, err
	}

	views := make([]HolidayView, 0, len(holidays))
	for _, h := range holidays {
		views = append(views, HolidayView{
			Code:        h.Code,
			Date:        h.Date.Format(timesheet.DateLayout),
			Name:        h.Name,
			Description: h.Description,
		})
	}
	return views, nil
}

// CreateHoliday adds a calendar day for the actor's organization. One
// holiday per date; a second insert on the same date is a conflict.
func (s *Service) CreateHoliday(actor *auth.User, dto CreateHolidayDTO) (*HolidayView, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	date, _ := time.Parse(timesheet.DateLayout, dto.Date)

	if _, err := s.repo.HolidayForDate(actor.OrgID, date); err == nil {
		return nil, ErrDuplicateHoliday
	} else if err != ErrHolidayNotFound {
		return nil, err
	}

	h := &tsDatamodel.Holiday{
		OrgID:       actor.OrgID,
		Date:        date,
		Name:        dto.Name,
		Description: dto.Description,
		CreatedBy:   actor.ID,
	}
	if err := s.repo.CreateHoliday(h); err != nil {
		s.logger.Error("failed to create holiday", "error", err, "org_id", actor.OrgID, "date", dto.Date)
		return nil, err
	}

	s.logger.Info("holiday created", "code", h.Code, "date", dto.Date, "name", dto.Name)
	return &HolidayView{
		Code:        h.Code,
		Date:        h.Date.Format(timesheet.DateLayout),
		Name:        h.Name,
		Description: h.Description,
	}, nil
}
