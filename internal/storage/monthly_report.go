package storage

import "time"

type Workplace struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// MonthTarget holds the per-workplace monthly figures. Nil means no value was entered.
type MonthTarget struct {
	WorkplaceCode  string   `json:"workplace_code" validate:"required,max=32"`
	YearMonth      string   `json:"year_month" validate:"required,len=6,numeric"`
	MonthTarget    *float64 `json:"month_target" validate:"omitempty,gte=0"`
	MonthPlan      *float64 `json:"month_plan" validate:"omitempty,gte=0"`
	OrderBacklog   *float64 `json:"order_backlog" validate:"omitempty,gte=0"`
	NextMonthCarry *float64 `json:"next_month_carry" validate:"omitempty,gte=0"`
}

// DailyQuantity is a day-level sum of planned or produced quantity.
type DailyQuantity struct {
	WorkplaceCode string    `json:"workplace_code"`
	Date          time.Time `json:"date"`
	Quantity      float64   `json:"quantity"`
}
