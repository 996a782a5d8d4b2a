package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stwms/workforce-portal/internal/api/middleware"
	"github.com/stwms/workforce-portal/internal/core/service"
)

// MeHandler serves the caller's identity plus the navigation derived from
// their role set. The front end renders its sidebar from this alone.
type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

type meResponse struct {
	Identity   identityResponse     `json:"identity"`
	Navigation []service.NavSection `json:"navigation"`
}

// Me returns identity and navigation for the current session.
//
// @Summary      Current identity and navigation
// @Tags         session
// @Produce      json
// @Success      200  {object}  meResponse
// @Router       /me [get]
func (h *MeHandler) Me(c echo.Context) error {
	sess := middleware.CurrentSession(c)
	return c.JSON(http.StatusOK, meResponse{
		Identity:   toIdentityResponse(sess.Identity),
		Navigation: service.Navigation(sess.Identity.Roles),
	})
}
