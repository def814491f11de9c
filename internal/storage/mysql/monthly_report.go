package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"mes-console/internal/storage"
)

func (s *Storage) GetWorkplaces(ctx context.Context) ([]storage.Workplace, error) {
	const op = "storage.mysql.GetWorkplaces"

	stmt := `
		SELECT code, name, sort_order
		FROM prod_workplaces
		WHERE is_active = TRUE
		ORDER BY sort_order, code`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения рабочих участков: %w", op, err)
	}
	defer rows.Close()

	var workplaces []storage.Workplace
	for rows.Next() {
		var wp storage.Workplace
		if err := rows.Scan(&wp.Code, &wp.Name, &wp.SortOrder); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
		}
		workplaces = append(workplaces, wp)
	}

	return workplaces, rows.Err()
}

func (s *Storage) GetMonthTargets(ctx context.Context, yearMonth string) ([]storage.MonthTarget, error) {
	const op = "storage.mysql.GetMonthTargets"

	stmt := `
		SELECT workplace_code, ym, month_target, month_plan, order_backlog, next_month_carry
		FROM prod_month_targets
		WHERE ym = ?`

	rows, err := s.db.QueryContext(ctx, stmt, yearMonth)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка получения месячных целей за %s: %w", op, yearMonth, err)
	}
	defer rows.Close()

	var targets []storage.MonthTarget
	for rows.Next() {
		var (
			t                            storage.MonthTarget
			target, plan, backlog, carry sql.NullFloat64
		)

		if err := rows.Scan(&t.WorkplaceCode, &t.YearMonth, &target, &plan, &backlog, &carry); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
		}

		t.MonthTarget = nullFloat(target)
		t.MonthPlan = nullFloat(plan)
		t.OrderBacklog = nullFloat(backlog)
		t.NextMonthCarry = nullFloat(carry)

		targets = append(targets, t)
	}

	return targets, rows.Err()
}

func (s *Storage) GetDailyPlan(ctx context.Context, from, to time.Time) ([]storage.DailyQuantity, error) {
	const op = "storage.mysql.GetDailyPlan"

	stmt := `
		SELECT workplace_code, plan_date, COALESCE(SUM(quantity), 0)
		FROM prod_plans
		WHERE plan_date >= ? AND plan_date < ?
		GROUP BY workplace_code, plan_date
		ORDER BY workplace_code, plan_date`

	return s.dailyQuantities(ctx, op, stmt, from, to)
}

func (s *Storage) GetDailyResults(ctx context.Context, from, to time.Time) ([]storage.DailyQuantity, error) {
	const op = "storage.mysql.GetDailyResults"

	stmt := `
		SELECT workplace_code, result_date, COALESCE(SUM(good_quantity), 0)
		FROM prod_results
		WHERE result_date >= ? AND result_date < ?
		GROUP BY workplace_code, result_date
		ORDER BY workplace_code, result_date`

	return s.dailyQuantities(ctx, op, stmt, from, to)
}

func (s *Storage) dailyQuantities(ctx context.Context, op, stmt string, from, to time.Time) ([]storage.DailyQuantity, error) {
	rows, err := s.db.QueryContext(ctx, stmt, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: ошибка выполнения запроса: %w", op, err)
	}
	defer rows.Close()

	var out []storage.DailyQuantity
	for rows.Next() {
		var q storage.DailyQuantity
		if err := rows.Scan(&q.WorkplaceCode, &q.Date, &q.Quantity); err != nil {
			return nil, fmt.Errorf("%s: ошибка сканирования строк: %w", op, err)
		}
		out = append(out, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: ошибка чтения строк: %w", op, err)
	}

	return out, nil
}

func (s *Storage) UpsertMonthTargets(ctx context.Context, targets []storage.MonthTarget) error {
	const op = "storage.mysql.UpsertMonthTargets"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO prod_month_targets
		(workplace_code, ym, month_target, month_plan, order_backlog, next_month_carry)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			month_target = VALUES(month_target),
			month_plan = VALUES(month_plan),
			order_backlog = VALUES(order_backlog),
			next_month_carry = VALUES(next_month_carry),
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("%s: ошибка подготовки запроса: %w", op, err)
	}
	defer stmt.Close()

	for _, t := range targets {
		_, err := stmt.ExecContext(ctx,
			t.WorkplaceCode,
			t.YearMonth,
			t.MonthTarget,
			t.MonthPlan,
			t.OrderBacklog,
			t.NextMonthCarry,
		)
		if err != nil {
			return fmt.Errorf("%s: ошибка сохранения цели участка %s за %s: %w", op, t.WorkplaceCode, t.YearMonth, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
