package monthly

import (
	"context"
	"log/slog"
	"time"

	"mes-console/internal/report"
)

type RowSource interface {
	MonthlyRows(ctx context.Context, yearMonth string) ([]map[string]any, error)
}

// Fetcher adapts a RowSource to the report controller. Failures are logged and turn into an empty row list.
type Fetcher struct {
	source  RowSource
	log     *slog.Logger
	timeout time.Duration
}

func NewFetcher(source RowSource, log *slog.Logger) *Fetcher {
	return &Fetcher{source: source, log: log, timeout: 5 * time.Second}
}

func (f *Fetcher) FetchRows(ctx context.Context, p report.Period) []map[string]any {
	const op = "service.monthly.Fetcher.FetchRows"

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	rows, err := f.source.MonthlyRows(ctx, p.Compact())
	if err != nil {
		f.log.Error("Ошибка получения строк месячного отчета",
			slog.String("op", op),
			slog.String("period", p.String()),
			slog.String("error", err.Error()),
		)
		return []map[string]any{}
	}
	if rows == nil {
		return []map[string]any{}
	}

	return rows
}
