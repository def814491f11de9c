package scroll

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"mes-console/internal/lib/response"
	"mes-console/internal/report"
)

type StateStore interface {
	Load(r *http.Request) report.State
}

// Request carries the client's scroll position. Without offsets they are derived from the
// session layout (period + collapsed weeks) and the column widths.
type Request struct {
	Offsets   []int                `json:"offsets" validate:"omitempty,dive,min=0"`
	Period    string               `json:"period" validate:"omitempty,datetime=2006-01"`
	Widths    *report.ColumnWidths `json:"widths"`
	Current   int                  `json:"current" validate:"min=0"`
	Direction int                  `json:"direction" validate:"oneof=-1 1"`
}

type Response struct {
	Offset int  `json:"offset"`
	Moved  bool `json:"moved"`
}

func ScrollByWeek(log *slog.Logger, states StateStore, widths report.ColumnWidths) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.monthly-report.scroll.ScrollByWeek"

		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			response.Error(w, r, http.StatusBadRequest, "Bad request: invalid JSON")
			return
		}
		if err := response.Validate.Struct(req); err != nil {
			response.ValidationError(w, r, err)
			return
		}

		offsets := report.NormalizeOffsets(req.Offsets)
		if len(req.Offsets) == 0 {
			state := states.Load(r)
			if req.Period != "" {
				p, err := report.ParsePeriod(req.Period)
				if err != nil {
					response.Error(w, r, http.StatusBadRequest, "Неверный период")
					return
				}
				state.Period = p
			}

			reqWidths := widths
			if req.Widths != nil {
				reqWidths = *req.Widths
			}

			columns := report.PlanColumns(report.NewCalendar(state.Period), state.Collapse)
			offsets = report.ScrollOffsets(columns, reqWidths)
		}

		next, moved := report.ScrollByWeek(offsets, req.Current, req.Direction)

		render.JSON(w, r, Response{Offset: next, Moved: moved})
	}
}
