package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// dualHandler пишет все записи в основной вывод, а ошибки дублирует в отдельный файл.
type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var coreErr, fileErr error

	if h.coreHandler.Enabled(ctx, r.Level) {
		coreErr = h.coreHandler.Handle(ctx, r)
	}

	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		fileErr = h.errorHandler.Handle(ctx, r.Clone())
	}

	return errors.Join(coreErr, fileErr)
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

// New собирает логгер: dev пишет JSON, остальные окружения текст; prod без debug.
func New(env string, out io.Writer, errOut io.Writer) *slog.Logger {
	level := slog.LevelDebug
	if env == EnvProd {
		level = slog.LevelInfo
	}

	var coreHandler slog.Handler
	switch env {
	case EnvDev:
		coreHandler = slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	default:
		coreHandler = slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	}

	if errOut == nil {
		return slog.New(coreHandler)
	}

	return slog.New(&dualHandler{
		coreHandler:  coreHandler,
		errorHandler: slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelError}),
	})
}

// Setup пишет в stdout и дублирует ошибки в errorLogPath. Если файл не открылся, работаем без него.
func Setup(env, errorLogPath string) (*slog.Logger, func()) {
	if errorLogPath == "" {
		return New(env, os.Stdout, nil), func() {}
	}

	errorFile, err := os.OpenFile(errorLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log := New(env, os.Stdout, nil)
		log.Warn("Cannot open error log file", slog.String("path", errorLogPath), slog.String("error", err.Error()))
		return log, func() {}
	}

	return New(env, os.Stdout, errorFile), func() { _ = errorFile.Close() }
}
