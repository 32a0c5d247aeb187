package report

import (
	"log/slog"
	"time"

	"github.com/prasetyarht/timesheet-management/internal/auth"
)

type RepositoryAPI interface {
	ProjectSummaries(orgID int64, userCodes []string, start, end *time.Time) ([]ProjectSummary, error)
	TaskSummaries(orgID int64, userCodes []string, start, end *time.Time) ([]TaskSummary, error)
	EmployeeSummaries(orgID int64, userCodes []string, start, end *time.Time) ([]EmployeeSummary, error)
	WeeklyStatusCounts(since time.Time) ([]WeeklySummary, error)
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ProjectReports builds the dashboard rollups for the actor's
// organization. An empty user filter covers every user in the org.
func (s *Service) ProjectReports(actor *auth.User, dto FilterDTO) (*Reports, error) {
	start, end, err := dto.Parse()
	if err != nil {
		return nil, err
	}

	projects, err := s.repo.ProjectSummaries(actor.OrgID, dto.UserCodes, start, end)
	if err != nil {
		s.logger.Error("project summary query failed", "error", err, "org_id", actor.OrgID)
		return nil, err
	}
	tasks, err := s.repo.TaskSummaries(actor.OrgID, dto.UserCodes, start, end)
	if err != nil {
		s.logger.Error("task summary query failed", "error", err, "org_id", actor.OrgID)
		return nil, err
	}
	employees, err := s.repo.EmployeeSummaries(actor.OrgID, dto.UserCodes, start, end)
	if err != nil {
		s.logger.Error("employee summary query failed", "error", err, "org_id", actor.OrgID)
		return nil, err
	}

	return &Reports{
		ProjectSummary:  projects,
		TaskSummary:     tasks,
		EmployeeSummary: employees,
	}, nil
}

// WeeklyStatusReport summarizes timesheet counts and hours per status for
// the last weeksAgo weeks.
func (s *Service) WeeklyStatusReport(weeksAgo int) ([]WeeklySummary, error) {
	if weeksAgo < 1 {
		weeksAgo = 4
	}
	since := time.Now().AddDate(0, 0, -7*weeksAgo)

	summaries, err := s.repo.WeeklyStatusCounts(since)
	if err != nil {
		s.logger.Error("weekly status query failed", "error", err)
		return nil, err
	}
	return summaries, nil
}
