package holiday

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prasetyarht/timesheet-management/internal/auth"
	"github.com/prasetyarht/timesheet-management/internal/transport"
	"github.com/prasetyarht/timesheet-management/pkg/logger"
	"time"
)

type ServiceAPI interface {
	Resolve(orgID int64, start, end time.Time) (map[string]struct{}, error)
	ListHolidays(actor *auth.User, year int) ([]HolidayView, error)
	CreateHoliday(actor *auth.User, dto CreateHolidayDTO) (*HolidayView, error)
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

func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	holidays, err := h.Service.ListHolidays(user, year)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"holidays": holidays,
	})
}

func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateHolidayDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateHoliday: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	holiday, err := h.Service.CreateHoliday(user, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, holiday)
}
