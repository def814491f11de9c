package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"mes-console/internal/lib/response"
	"mes-console/internal/report"
)

type MonthlyRows interface {
	MonthlyRows(ctx context.Context, yearMonth string) ([]map[string]any, error)
}

// GetMonthlyRows serves the raw report rows for ?ym=YYYYMM.
func GetMonthlyRows(log *slog.Logger, source MonthlyRows) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.monthly-report.get.GetMonthlyRows"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		ym := r.URL.Query().Get("ym")
		if _, err := report.ParseCompactPeriod(ym); err != nil {
			log.Warn("Invalid ym", slog.String("ym", ym), slog.String("error", err.Error()))
			response.Error(w, r, http.StatusBadRequest, "Параметр ym должен быть в формате YYYYMM")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rows, err := source.MonthlyRows(ctx, ym)
		if err != nil {
			log.Error("Ошибка при получении строк месячного отчета", slog.String("error", err.Error()))
			response.Error(w, r, http.StatusInternalServerError, "Внутренняя ошибка сервера")
			return
		}
		if rows == nil {
			rows = []map[string]any{}
		}

		render.JSON(w, r, rows)
	}
}
