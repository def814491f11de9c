package export

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"mes-console/internal/lib/response"
	"mes-console/internal/report"
)

type StateStore interface {
	Load(r *http.Request) report.State
}

type ExcelGenerator interface {
	MonthlyExcel(snap report.Snapshot) ([]byte, error)
}

// ExportMonthlyExcel выгружает план-факт за ?period=YYYY-MM (по умолчанию период из сессии)
// с учетом свернутых недель.
func ExportMonthlyExcel(log *slog.Logger, states StateStore, fetcher report.Fetcher, settings report.Settings, gen ExcelGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.monthly-report.export.ExportMonthlyExcel"

		state := states.Load(r)
		if raw := r.URL.Query().Get("period"); raw != "" {
			p, err := report.ParsePeriod(raw)
			if err != nil {
				response.Error(w, r, http.StatusBadRequest, "Параметр period должен быть в формате YYYY-MM")
				return
			}
			state.Period = p
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		ctrl := settings.NewController(fetcher)
		ctrl.Init(state)
		ctrl.SelectPeriod(ctx, state.Period)

		excelBytes, err := gen.MonthlyExcel(ctrl.Snapshot())
		if err != nil {
			log.Error("failed to generate excel", slog.String("op", op), slog.String("error", err.Error()))
			response.Error(w, r, http.StatusInternalServerError, "Internal error")
			return
		}

		fileName := fmt.Sprintf("Plan_Fact_%s_%s.xlsx", state.Period.Compact(), uuid.NewString()[:8])

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		if _, err := w.Write(excelBytes); err != nil {
			log.Error("failed to write excel", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
