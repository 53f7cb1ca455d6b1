package models

import "time"

// ReportPeriod is an annual reporting cycle such as "2023/2024".
type ReportPeriod struct {
	ID             int64     `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	AnnualWorkload float64   `db:"annual_workload" json:"annual_workload"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
