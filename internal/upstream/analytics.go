package upstream

import (
	"context"
	"net/http"

	"github.com/stwms/workforce-portal/internal/core/domain"
)

// DashboardStats fetches the backend's global task aggregate. These numbers
// are authoritative; the portal never recomputes them from a task list.
func (c *Client) DashboardStats(ctx context.Context, token string) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/api/analytics/dashboard", token, nil, &stats); err != nil {
		return domain.DashboardStats{}, err
	}
	return stats, nil
}
