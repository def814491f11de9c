package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	monthtargets "mes-console/http-server/admin/month-targets"
	"mes-console/http-server/monthly-report/export"
	"mes-console/http-server/monthly-report/get"
	"mes-console/http-server/monthly-report/layout"
	"mes-console/http-server/monthly-report/period"
	"mes-console/http-server/monthly-report/scroll"
	"mes-console/http-server/monthly-report/weeks"
	"mes-console/internal/config"
	"mes-console/internal/middleware/auth"
	"mes-console/internal/report"
	"mes-console/internal/session"
)

type app struct {
	cfg      config.Config
	log      *slog.Logger
	rows     get.MonthlyRows
	fetcher  report.Fetcher
	states   *session.ReportStore
	settings report.Settings
	excel    export.ExcelGenerator
	targets  interface {
		monthtargets.TargetsSaver
		monthtargets.TargetsProvider
	}
}

func routes(a app) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   a.cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	//ip пользователя
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Route("/api/report/monthly", func(r chi.Router) {
		// сырые строки план-факта за YYYYMM
		r.Get("/", get.GetMonthlyRows(a.log, a.rows))

		r.Get("/layout", layout.GetLayout(a.log, a.states, a.fetcher, a.settings))

		// выбранный период хранится в сессии
		r.Get("/period", period.GetPeriod(a.log, a.states))
		r.Put("/period", period.SavePeriod(a.log, a.states))

		r.Post("/weeks/{index}/toggle", weeks.ToggleWeek(a.log, a.states))
		r.Post("/scroll", scroll.ScrollByWeek(a.log, a.states, a.settings.Widths))

		r.Get("/excel", export.ExportMonthlyExcel(a.log, a.states, a.fetcher, a.settings, a.excel))
	})

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(a.cfg.AdminLogin, a.cfg.AdminPass))
	adminRouter.Get("/month-targets", monthtargets.GetMonthTargets(a.log, a.targets))
	adminRouter.Put("/month-targets", monthtargets.SaveMonthTargets(a.log, a.targets))

	router.Mount("/api/admin", adminRouter)

	frontendDir := a.cfg.FrontendDir
	if info, err := os.Stat(frontendDir); err != nil || !info.IsDir() {
		a.log.Warn("Папка фронтенда не найдена, статика не раздается", slog.String("path", frontendDir))
		return router
	}

	fileServer := http.FileServer(http.Dir(frontendDir))
	router.Handle("/assets/*", fileServer)

	//SPA fallback: любой другой путь → index.html
	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
	})

	return router
}
