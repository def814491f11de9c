package period

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
	SavePeriod(w http.ResponseWriter, r *http.Request, p report.Period) error
}

type Request struct {
	Period string `json:"period" validate:"required,datetime=2006-01"`
}

type Response struct {
	Period string `json:"period"`
}

func GetPeriod(log *slog.Logger, states StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, Response{Period: states.Load(r).Period.String()})
	}
}

func SavePeriod(log *slog.Logger, states StateStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.monthly-report.period.SavePeriod"

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

		p, err := report.ParsePeriod(req.Period)
		if err != nil {
			response.Error(w, r, http.StatusBadRequest, "Неверный период")
			return
		}

		if err := states.SavePeriod(w, r, p); err != nil {
			log.Error("Ошибка сохранения периода", slog.String("op", op), slog.String("error", err.Error()))
			response.Error(w, r, http.StatusInternalServerError, "Внутренняя ошибка сервера")
			return
		}

		render.JSON(w, r, Response{Period: p.String()})
	}
}
