package holiday_test

import (
	"errors"
	"io"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/prasetyarht/timesheet-management/internal"
	"github.com/prasetyarht/timesheet-management/internal/auth"
	tsDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/prasetyarht/timesheet-management/internal/holiday"
)

type mockRepository struct {
	holidays []tsDatamodel.Holiday
	nextID   int64
	failWith error
}

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1}
}

func (m *mockRepository) HolidaysInRange(orgID int64, start, end time.Time) ([]tsDatamodel.Holiday, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []tsDatamodel.Holiday
	for _, h := range m.holidays {
		if h.OrgID == orgID && !h.Date.Before(start) && !h.Date.After(end) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m *mockRepository) HolidayForDate(orgID int64, date time.Time) (*tsDatamodel.Holiday, error) {
	for i := range m.holidays {
		if m.holidays[i].OrgID == orgID && m.holidays[i].Date.Equal(date) {
			return &m.holidays[i], nil
		}
	}
	return nil, holiday.ErrHolidayNotFound
}

func (m *mockRepository) CreateHoliday(h *tsDatamodel.Holiday) error {
	if m.failWith != nil {
		return m.failWith
	}
	h.ID = m.nextID
	m.nextID++
	if h.Code == "" {
		h.Code = "holiday-code"
	}
	m.holidays = append(m.holidays, *h)
	return nil
}

var _ = Describe("HolidayService", func() {
	var (
		repo    *mockRepository
		service *holiday.Service
		actor   *auth.User
	)

	addHoliday := func(orgID int64, date, name string) {
		d, err := time.Parse("2006-01-02", date)
		Expect(err).ToNot(HaveOccurred())
		Expect(repo.CreateHoliday(&tsDatamodel.Holiday{
			OrgID: orgID,
			Date:  d,
			Name:  name,
		})).To(Succeed())
	}

	BeforeEach(func() {
		repo = newMockRepository()
		service = holiday.NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
		actor = &auth.User{ID: 10, OrgID: 1, Role: auth.RoleHR, FullName: "Rina Hartati"}
	})

	Describe("Resolve", func() {
		It("should return the dates inside the range as a lookup set", func() {
			addHoliday(1, "2025-08-17", "Independence Day")
			addHoliday(1, "2025-12-25", "Christmas Day")
			addHoliday(2, "2025-08-17", "Other Org Holiday")

			start, _ := time.Parse("2006-01-02", "2025-08-11")
			end, _ := time.Parse("2006-01-02", "2025-08-17")

			set, err := service.Resolve(1, start, end)
			Expect(err).ToNot(HaveOccurred())
			Expect(set).To(HaveLen(1))
			Expect(set).To(HaveKey("2025-08-17"))
		})

		It("should propagate repository failures", func() {
			repo.failWith = errors.New("connection reset")

			_, err := service.Resolve(1, time.Now(), time.Now())
			Expect(err).To(MatchError("connection reset"))
		})
	})

	Describe("ListHolidays", func() {
		It("should return the actor's organization calendar for the year", func() {
			addHoliday(1, "2025-01-01", "New Year's Day")
			addHoliday(1, "2025-08-17", "Independence Day")
			addHoliday(1, "2024-12-25", "Christmas Day")
			addHoliday(2, "2025-01-01", "Other Org New Year")

			views, err := service.ListHolidays(actor, 2025)
			Expect(err).ToNot(HaveOccurred())
			Expect(views).To(HaveLen(2))
			Expect(views[0].Date).To(Equal("2025-01-01"))
			Expect(views[0].Name).To(Equal("New Year's Day"))
			Expect(views[1].Date).To(Equal("2025-08-17"))
		})
	})

	Describe("CreateHoliday", func() {
		It("should create a holiday for the actor's organization", func() {
			view, err := service.CreateHoliday(actor, holiday.CreateHolidayDTO{
				Date: "2025-06-01",
				Name: "Pancasila Day",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(view.Date).To(Equal("2025-06-01"))
			Expect(view.Name).To(Equal("Pancasila Day"))
			Expect(view.Code).ToNot(BeEmpty())

			Expect(repo.holidays).To(HaveLen(1))
			Expect(repo.holidays[0].OrgID).To(Equal(actor.OrgID))
			Expect(repo.holidays[0].CreatedBy).To(Equal(actor.ID))
		})

		It("should reject a second holiday on the same date", func() {
			addHoliday(1, "2025-06-01", "Pancasila Day")

			_, err := service.CreateHoliday(actor, holiday.CreateHolidayDTO{
				Date: "2025-06-01",
				Name: "Duplicate Day",
			})
			Expect(err).To(MatchError(holiday.ErrDuplicateHoliday))
		})

		It("should reject a missing name", func() {
			_, err := service.CreateHoliday(actor, holiday.CreateHolidayDTO{Date: "2025-06-01"})

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeValidationFailed))
		})

		It("should reject a malformed date", func() {
			_, err := service.CreateHoliday(actor, holiday.CreateHolidayDTO{
				Date: "06/01/2025",
				Name: "Pancasila Day",
			})

			var appErr *internal.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeInvalidDate))
		})
	})
})
