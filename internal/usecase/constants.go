package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// DefaultDashboardCacheTTL is how long dashboard statistics are cached
	DefaultDashboardCacheTTL = 30 * time.Second

	// RecentAuditLogLimit is the number of audit rows shown on the dashboard
	RecentAuditLogLimit = 50
)
