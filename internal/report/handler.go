package report

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/prasetyarht/timesheet-management/internal/auth"
	"github.com/prasetyarht/timesheet-management/internal/transport"
	"github.com/prasetyarht/timesheet-management/pkg/logger"
)

type ServiceAPI interface {
	ProjectReports(actor *auth.User, dto FilterDTO) (*Reports, error)
	WeeklyStatusReport(weeksAgo int) ([]WeeklySummary, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetProjectReports(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	dto := FilterDTO{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
	if codes := r.URL.Query().Get("user_codes"); codes != "" {
		dto.UserCodes = strings.Split(codes, ",")
	}

	reports, err := h.Service.ProjectReports(user, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, reports)
}

func (h *Handler) GetWeeklyStatusReport(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	weeksAgo, _ := strconv.Atoi(r.URL.Query().Get("weeks"))

	summaries, err := h.Service.WeeklyStatusReport(weeksAgo)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"weekly_summary": summaries,
	})
}
