package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboard returns today's overview and pending request counts, fetched concurrently
	GetDashboard(ctx context.Context) (*DashboardResponse, error)
}
