package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mes-console/internal/config"
	"mes-console/internal/lib/logger"
	"mes-console/internal/report"
	"mes-console/internal/service/export"
	"mes-console/internal/service/monthly"
	"mes-console/internal/session"
	"mes-console/internal/storage/mysql"
)

func main() {
	cfg := config.MustConfig()

	log, closeLog := logger.Setup(cfg.Env, cfg.ErrorLog)
	defer closeLog()

	storage, err := mysql.New(cfg.DB)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	states, err := session.NewReportStore(cfg.Session, cfg.Report.Identity, log)
	if err != nil {
		log.Error("failed to init session store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	monthlyService := monthly.NewService(storage)

	handler := routes(app{
		cfg:     *cfg,
		log:     log,
		rows:    monthlyService,
		fetcher: monthly.NewFetcher(monthlyService, log),
		states:  states,
		settings: report.Settings{
			Formatter: report.NewFormatter(cfg.Report.Locale),
			Widths:    report.ColumnWidths{Day: cfg.Report.DayWidth, WeekTotal: cfg.Report.WeekWidth},
		},
		excel:   export.NewExcelService(),
		targets: storage,
	})

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed start server", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}
