package month_targets

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"mes-console/internal/lib/response"
	"mes-console/internal/storage"
)

type TargetsSaver interface {
	UpsertMonthTargets(ctx context.Context, targets []storage.MonthTarget) error
}

type Request struct {
	Targets []storage.MonthTarget `validate:"required,min=1,dive"`
}

func SaveMonthTargets(log *slog.Logger, saver TargetsSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.month-targets.SaveMonthTargets"

		var targets []storage.MonthTarget
		if err := json.NewDecoder(r.Body).Decode(&targets); err != nil {
			response.Error(w, r, http.StatusBadRequest, "Неверный JSON")
			return
		}

		if err := response.Validate.Struct(Request{Targets: targets}); err != nil {
			response.ValidationError(w, r, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := saver.UpsertMonthTargets(ctx, targets); err != nil {
			log.Error("Ошибка сохранения месячных целей", slog.String("op", op), slog.String("error", err.Error()))
			response.Error(w, r, http.StatusInternalServerError, "Ошибка сервера")
			return
		}

		render.JSON(w, r, response.Response{Status: response.StatusOK})
	}
}
