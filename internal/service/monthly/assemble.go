package monthly

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"mes-console/internal/report"
	"mes-console/internal/storage"
)

type ReportStorage interface {
	GetWorkplaces(ctx context.Context) ([]storage.Workplace, error)
	GetMonthTargets(ctx context.Context, yearMonth string) ([]storage.MonthTarget, error)
	GetDailyPlan(ctx context.Context, from, to time.Time) ([]storage.DailyQuantity, error)
	GetDailyResults(ctx context.Context, from, to time.Time) ([]storage.DailyQuantity, error)
}

type Service struct {
	storage ReportStorage
}

func NewService(storage ReportStorage) *Service {
	return &Service{storage: storage}
}

var rowTypeNames = map[report.RowType]string{
	report.RowTypePlan:   "План",
	report.RowTypeActual: "Факт",
	report.RowTypeRate:   "Выполнение, %",
}

// MonthlyRows builds the raw report payload for yearMonth ("YYYYMM"): three rows per workplace
// (plan, actual, rate), grouped by workplace. Missing figures are left as nil.
func (s *Service) MonthlyRows(ctx context.Context, yearMonth string) ([]map[string]any, error) {
	const op = "service.monthly.MonthlyRows"

	period, err := report.ParseCompactPeriod(yearMonth)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	from := period.FirstDay()
	to := from.AddDate(0, 1, 0)

	var (
		workplaces []storage.Workplace
		targets    []storage.MonthTarget
		plans      []storage.DailyQuantity
		results    []storage.DailyQuantity
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		workplaces, err = s.storage.GetWorkplaces(gCtx)
		if err != nil {
			return fmt.Errorf("workplaces: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		targets, err = s.storage.GetMonthTargets(gCtx, period.Compact())
		if err != nil {
			return fmt.Errorf("targets: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		plans, err = s.storage.GetDailyPlan(gCtx, from, to)
		if err != nil {
			return fmt.Errorf("plans: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		results, err = s.storage.GetDailyResults(gCtx, from, to)
		if err != nil {
			return fmt.Errorf("results: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cal := report.NewCalendar(period)
	planDays := spreadByDay(plans, cal.DaysInMonth)
	actualDays := spreadByDay(results, cal.DaysInMonth)

	targetByCode := make(map[string]storage.MonthTarget, len(targets))
	for _, t := range targets {
		targetByCode[t.WorkplaceCode] = t
	}

	rows := make([]map[string]any, 0, 3*len(workplaces))
	for _, wp := range withUnlisted(workplaces, planDays, actualDays) {
		plan := planDays[wp.Code]
		if plan == nil {
			plan = make([]float64, cal.DaysInMonth)
		}
		actual := actualDays[wp.Code]
		if actual == nil {
			actual = make([]float64, cal.DaysInMonth)
		}

		rows = append(rows,
			quantityRow(wp, report.RowTypePlan, plan, cal, targetByCode[wp.Code], true),
			quantityRow(wp, report.RowTypeActual, actual, cal, storage.MonthTarget{}, false),
			rateRow(wp, plan, actual, cal),
		)
	}

	return rows, nil
}

func spreadByDay(qs []storage.DailyQuantity, days int) map[string][]float64 {
	out := make(map[string][]float64)
	for _, q := range qs {
		d := q.Date.Day()
		if d < 1 || d > days {
			continue
		}
		if out[q.WorkplaceCode] == nil {
			out[q.WorkplaceCode] = make([]float64, days)
		}
		out[q.WorkplaceCode][d-1] += q.Quantity
	}
	return out
}

// withUnlisted appends workplaces that have data but are missing from the directory, by code.
func withUnlisted(workplaces []storage.Workplace, sets ...map[string][]float64) []storage.Workplace {
	known := make(map[string]bool, len(workplaces))
	for _, wp := range workplaces {
		known[wp.Code] = true
	}

	var extra []string
	for _, set := range sets {
		for code := range set {
			if !known[code] {
				known[code] = true
				extra = append(extra, code)
			}
		}
	}
	sort.Strings(extra)

	out := append([]storage.Workplace(nil), workplaces...)
	for _, code := range extra {
		out = append(out, storage.Workplace{Code: code, Name: code})
	}
	return out
}

func weekSums(days []float64, cal report.Calendar) []float64 {
	sums := make([]float64, cal.WeekCount())
	for d := 1; d <= cal.DaysInMonth && d <= len(days); d++ {
		sums[cal.WeekOf(d)] += days[d-1]
	}
	return sums
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func quantityRow(wp storage.Workplace, t report.RowType, days []float64, cal report.Calendar, target storage.MonthTarget, withTargets bool) map[string]any {
	dayValues := make([]any, len(days))
	for i, v := range days {
		dayValues[i] = v
	}
	weeks := weekSums(days, cal)
	weekValues := make([]any, len(weeks))
	for i, v := range weeks {
		weekValues[i] = v
	}

	row := baseRow(wp, t)
	row[report.KeyDays] = dayValues
	row[report.KeyWeekTotals] = weekValues
	row[report.KeyTotal] = sum(days)

	if withTargets {
		row[report.KeyMonthTarget] = optional(target.MonthTarget)
		row[report.KeyMonthPlan] = optional(target.MonthPlan)
		row[report.KeyOrderBacklog] = optional(target.OrderBacklog)
		row[report.KeyNextMonthCarry] = optional(target.NextMonthCarry)
	}

	return row
}

func rateRow(wp storage.Workplace, plan, actual []float64, cal report.Calendar) map[string]any {
	dayValues := make([]any, len(plan))
	for i := range plan {
		dayValues[i] = rate(actual[i], plan[i])
	}

	planWeeks, actualWeeks := weekSums(plan, cal), weekSums(actual, cal)
	weekValues := make([]any, len(planWeeks))
	for i := range planWeeks {
		weekValues[i] = rate(actualWeeks[i], planWeeks[i])
	}

	row := baseRow(wp, report.RowTypeRate)
	row[report.KeyDays] = dayValues
	row[report.KeyWeekTotals] = weekValues
	row[report.KeyTotal] = rate(sum(actual), sum(plan))

	return row
}

func baseRow(wp storage.Workplace, t report.RowType) map[string]any {
	return map[string]any{
		report.KeyWorkplaceCode:  wp.Code,
		report.KeyWorkplaceName:  wp.Name,
		report.KeyRowType:        string(t),
		report.KeyRowTypeName:    rowTypeNames[t],
		report.KeyMonthTarget:    nil,
		report.KeyMonthPlan:      nil,
		report.KeyOrderBacklog:   nil,
		report.KeyNextMonthCarry: nil,
	}
}

// rate is actual/plan in percent with one decimal; no plan means no rate.
func rate(actual, plan float64) any {
	if plan == 0 {
		return nil
	}

	pct := decimal.NewFromFloat(actual).
		Div(decimal.NewFromFloat(plan)).
		Mul(decimal.NewFromInt(100)).
		Round(1)

	f, _ := pct.Float64()
	return f
}

func optional(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
