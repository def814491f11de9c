package layout

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"mes-console/internal/lib/response"
	"mes-console/internal/report"
)

type StateStore interface {
	Load(r *http.Request) report.State
	SavePeriod(w http.ResponseWriter, r *http.Request, p report.Period) error
}

// GetLayout builds the report snapshot for ?period=YYYY-MM, or the session period when absent.
// An explicit period counts as a selection and is persisted.
func GetLayout(log *slog.Logger, states StateStore, fetcher report.Fetcher, settings report.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.monthly-report.layout.GetLayout"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		state := states.Load(r)

		if raw := r.URL.Query().Get("period"); raw != "" {
			p, err := report.ParsePeriod(raw)
			if err != nil {
				log.Warn("Invalid period", slog.String("period", raw))
				response.Error(w, r, http.StatusBadRequest, "Параметр period должен быть в формате YYYY-MM")
				return
			}
			state.Period = p

			if err := states.SavePeriod(w, r, p); err != nil {
				log.Error("Ошибка сохранения периода в сессии", slog.String("error", err.Error()))
			}
		}

		widths, ok := WidthsFromQuery(r, settings.Widths)
		if !ok {
			response.Error(w, r, http.StatusBadRequest, "Ширина колонки должна быть неотрицательным числом")
			return
		}
		settings.Widths = widths

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		ctrl := settings.NewController(fetcher)
		ctrl.Init(state)
		ctrl.SelectPeriod(ctx, state.Period)

		render.JSON(w, r, ctrl.Snapshot())
	}
}

// WidthsFromQuery applies optional day_width / week_width overrides.
func WidthsFromQuery(r *http.Request, def report.ColumnWidths) (report.ColumnWidths, bool) {
	widths := def

	for key, dst := range map[string]*int{"day_width": &widths.Day, "week_width": &widths.WeekTotal} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return def, false
		}
		*dst = v
	}

	return widths, true
}
