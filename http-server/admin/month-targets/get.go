package month_targets

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"mes-console/internal/lib/response"
	"mes-console/internal/report"
	"mes-console/internal/storage"
)

type TargetsProvider interface {
	GetMonthTargets(ctx context.Context, yearMonth string) ([]storage.MonthTarget, error)
}

// GetMonthTargets отдает введенные цели участков за ?ym=YYYYMM.
func GetMonthTargets(log *slog.Logger, provider TargetsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.month-targets.GetMonthTargets"

		ym := r.URL.Query().Get("ym")
		if _, err := report.ParseCompactPeriod(ym); err != nil {
			response.Error(w, r, http.StatusBadRequest, "Параметр ym должен быть в формате YYYYMM")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		targets, err := provider.GetMonthTargets(ctx, ym)
		if err != nil {
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("ошибка получения месячных целей")
			response.Error(w, r, http.StatusInternalServerError, "Internal error")
			return
		}
		if targets == nil {
			targets = []storage.MonthTarget{}
		}

		render.JSON(w, r, targets)
	}
}
