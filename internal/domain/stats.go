package domain

import "context"

// KPIs are the aggregate indicators shown on the trainer dashboard.
type KPIs struct {
	AvgScore       int   `json:"avg_score"`
	CostCents      int64 `json:"cost_cents"`
	Resolved       int   `json:"resolved"`
	Total          int   `json:"total"`
	ResolutionRate int   `json:"resolution_rate"`
}

// AdminSummary bundles KPIs with the most recent sessions.
type AdminSummary struct {
	KPIs     KPIs      `json:"kpis"`
	Sessions []Session `json:"sessions"`
}

// StatsRepository defines the interface for aggregate reporting queries
type StatsRepository interface {
	KPIs(ctx context.Context) (*KPIs, error)
}
