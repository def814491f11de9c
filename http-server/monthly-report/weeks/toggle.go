package weeks

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"mes-console/internal/lib/response"
	"mes-console/internal/report"
)

type StateStore interface {
	Load(r *http.Request) report.State
	SaveCollapse(w http.ResponseWriter, r *http.Request, c report.CollapseState) error
}

type toggleRequest struct {
	Index int `validate:"min=0,max=4"`
}

type Response struct {
	Index     int   `json:"index"`
	Collapsed bool  `json:"collapsed"`
	Weeks     []int `json:"collapsed_weeks"`
}

// ToggleWeek flips /weeks/{index} between collapsed and expanded and persists the result.
func ToggleWeek(log *slog.Logger, states StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.monthly-report.weeks.ToggleWeek"

		idx, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			response.Error(w, r, http.StatusBadRequest, "Invalid week index")
			return
		}
		if err := response.Validate.Struct(toggleRequest{Index: idx}); err != nil {
			response.ValidationError(w, r, err)
			return
		}

		collapse := states.Load(r).Collapse.Toggle(idx)

		if err := states.SaveCollapse(w, r, collapse); err != nil {
			log.Error("Ошибка сохранения свернутых недель", slog.String("op", op), slog.String("error", err.Error()))
			response.Error(w, r, http.StatusInternalServerError, "Внутренняя ошибка сервера")
			return
		}

		render.JSON(w, r, Response{
			Index:     idx,
			Collapsed: collapse.IsCollapsed(idx),
			Weeks:     collapse.Indices(),
		})
	}
}
