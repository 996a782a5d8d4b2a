package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stwms/workforce-portal/internal/api/middleware"
	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

// AnalyticsHandler serves the dashboard landing view and the analytics view.
type AnalyticsHandler struct {
	analytics ports.AnalyticsService
}

func NewAnalyticsHandler(analytics ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

type dashboardResponse struct {
	Stats    domain.DashboardStats `json:"stats"`
	Username string                `json:"username"`
	Roles    domain.RoleSet        `json:"roles"`
}

// Dashboard returns the landing view: the global aggregate plus who is
// looking at it.
//
// @Summary      Dashboard
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /dashboard [get]
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	stats, err := h.analytics.Dashboard(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dashboardResponse{
		Stats:    stats,
		Username: sess.Identity.Username,
		Roles:    sess.Identity.Roles,
	})
}

type analyticsResponse struct {
	Stats        domain.DashboardStats   `json:"stats"`
	InProgress   int                     `json:"inProgress"`
	HighPriority int                     `json:"highPriority"`
	Priorities   ports.PriorityBreakdown `json:"priorities"`
}

// Analytics returns the aggregate plus the client-derived priority numbers.
//
// @Summary      Analytics
// @Tags         analytics
// @Produce      json
// @Success      200  {object}  analyticsResponse
// @Router       /analytics [get]
func (h *AnalyticsHandler) Analytics(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	view, err := h.analytics.Analytics(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, analyticsResponse{
		Stats:        view.Stats,
		InProgress:   view.InProgress,
		HighPriority: view.HighPriority,
		Priorities:   view.Priorities,
	})
}
