package timesheet_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/prasetyarht/timesheet-management/internal/auth"
	orgDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/organization"
	tsDatamodel "github.com/prasetyarht/timesheet-management/internal/core/datamodel/timesheet"
	"github.com/prasetyarht/timesheet-management/internal/timesheet"
	timesheetPostgres "github.com/prasetyarht/timesheet-management/internal/timesheet/postgres"
)

var _ = Describe("Timesheet Handler Integration", func() {
	var (
		db      *gorm.DB
		service *timesheet.Service
		handler *timesheet.Handler
		actor   *auth.User

		project orgDatamodel.Project
		task    orgDatamodel.Task
	)

	withActor := func(req *http.Request) *http.Request {
		return req.WithContext(auth.ContextWithUser(req.Context(), actor))
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.AutoMigrate(
			&orgDatamodel.Organization{},
			&orgDatamodel.UserRole{},
			&orgDatamodel.User{},
			&orgDatamodel.Project{},
			&orgDatamodel.Task{},
			&orgDatamodel.UserProject{},
			&tsDatamodel.Timesheet{},
			&tsDatamodel.TimesheetEntry{},
			&tsDatamodel.TimesheetHistory{},
			&tsDatamodel.Holiday{},
		)).To(Succeed())

		org := orgDatamodel.Organization{Name: "Acme Consulting"}
		Expect(db.Create(&org).Error).To(Succeed())

		role := orgDatamodel.UserRole{Name: "Employee"}
		Expect(db.Create(&role).Error).To(Succeed())

		user := orgDatamodel.User{
			OrgID: org.ID, RoleID: role.ID,
			Username: "sari", Email: "sari@acme.test",
			FullName: "Sari Dewi", PasswordHash: "x", IsActive: true,
		}
		Expect(db.Create(&user).Error).To(Succeed())

		project = orgDatamodel.Project{OrgID: org.ID, Name: "Internal Platform"}
		Expect(db.Create(&project).Error).To(Succeed())

		task = orgDatamodel.Task{ProjectID: project.ID, Name: "Development"}
		Expect(db.Create(&task).Error).To(Succeed())

		Expect(db.Create(&orgDatamodel.UserProject{
			UserID: user.ID, ProjectID: project.ID, IsActive: true,
		}).Error).To(Succeed())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo := timesheetPostgres.NewRepository(db)
		service = timesheet.NewService(repo, &mockHolidayResolver{}, nil, slogger)
		handler = timesheet.NewHandler(service)

		actor = &auth.User{
			ID: user.ID, Code: user.Code, OrgID: org.ID,
			Email: user.Email, FullName: user.FullName,
			Role: auth.RoleEmployee, IsActive: true,
		}
	})

	It("should create an entry and return the week skeleton", func() {
		body, _ := json.Marshal(timesheet.CreateEntryDTO{
			ProjectCode: project.Code,
			TaskCode:    task.Code,
		})
		req := withActor(httptest.NewRequest(http.MethodPost, "/timesheets/entries", bytes.NewReader(body)))
		w := httptest.NewRecorder()

		handler.CreateEntry(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var view timesheet.EntryView
		Expect(json.NewDecoder(w.Body).Decode(&view)).To(Succeed())
		Expect(view.EntryCode).NotTo(BeEmpty())
		Expect(view.ProjectName).To(Equal("Internal Platform"))
		Expect(view.TaskName).To(Equal("Development"))
		Expect(view.Status).To(Equal("Draft"))
		Expect(view.TimeRecords).To(HaveLen(7))

		weekStart, _ := timesheet.WeekBounds(time.Now())
		Expect(view.WeekStart).To(Equal(weekStart.Format(timesheet.DateLayout)))
	})

	It("should reject an unauthenticated request", func() {
		req := httptest.NewRequest(http.MethodGet, "/timesheets/detail", nil)
		w := httptest.NewRecorder()

		handler.GetTimesheetDetail(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("should map domain errors onto their HTTP status", func() {
		body, _ := json.Marshal(timesheet.CreateEntryDTO{
			ProjectCode: "no-such-project",
			TaskCode:    task.Code,
		})
		req := withActor(httptest.NewRequest(http.MethodPost, "/timesheets/entries", bytes.NewReader(body)))
		w := httptest.NewRecorder()

		handler.CreateEntry(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("should persist nothing when one entry of an update batch fails", func() {
		first, err := service.CreateEntry(actor, timesheet.CreateEntryDTO{
			ProjectCode: project.Code,
			TaskCode:    task.Code,
		})
		Expect(err).NotTo(HaveOccurred())

		qa := orgDatamodel.Task{ProjectID: project.ID, Name: "QA"}
		Expect(db.Create(&qa).Error).To(Succeed())
		second, err := service.CreateEntry(actor, timesheet.CreateEntryDTO{
			ProjectCode: project.Code,
			TaskCode:    qa.Code,
		})
		Expect(err).NotTo(HaveOccurred())

		weekStart, _ := timesheet.WeekBounds(time.Now())
		monday := weekStart.Format(timesheet.DateLayout)
		outside := weekStart.AddDate(0, 0, 9).Format(timesheet.DateLayout)

		body, _ := json.Marshal(timesheet.UpdateEntriesDTO{
			Entries: []timesheet.UpdateEntryDTO{
				{
					EntryCode:   first.EntryCode,
					TimeRecords: []timesheet.TimeRecordDTO{{Date: monday, Hours: 8}},
				},
				{
					EntryCode:   second.EntryCode,
					TimeRecords: []timesheet.TimeRecordDTO{{Date: outside, Hours: 4}},
				},
			},
		})
		req := withActor(httptest.NewRequest(http.MethodPatch, "/timesheets/entries", bytes.NewReader(body)))
		w := httptest.NewRecorder()

		handler.UpdateEntries(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var stored tsDatamodel.TimesheetEntry
		Expect(db.Where("code = ?", first.EntryCode).First(&stored).Error).To(Succeed())
		Expect(stored.Hours).To(BeZero())
		for _, rec := range stored.TimeRecords {
			Expect(rec.Hours).To(BeZero())
		}
	})

	It("should serve the current week on demand and list it", func() {
		req := withActor(httptest.NewRequest(http.MethodGet, "/timesheets/detail", nil))
		w := httptest.NewRecorder()

		handler.GetTimesheetDetail(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var detail timesheet.TimesheetDetail
		Expect(json.NewDecoder(w.Body).Decode(&detail)).To(Succeed())
		Expect(detail.TimesheetCode).NotTo(BeEmpty())
		Expect(detail.Status).To(Equal("Draft"))
		Expect(detail.Entries).To(BeEmpty())

		req = withActor(httptest.NewRequest(http.MethodGet, "/timesheets?page=1&per_page=10", nil))
		w = httptest.NewRecorder()

		handler.ListTimesheets(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var listing struct {
			Timesheets []timesheet.TimesheetListItem `json:"timesheets"`
			Meta       timesheet.PageMeta            `json:"meta"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&listing)).To(Succeed())
		Expect(listing.Timesheets).To(HaveLen(1))
		Expect(listing.Timesheets[0].TimesheetCode).To(Equal(detail.TimesheetCode))
		Expect(listing.Meta.Total).To(Equal(int64(1)))
	})
})
