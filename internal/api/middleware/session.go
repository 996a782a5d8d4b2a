package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/stwms/workforce-portal/internal/core/domain"
	"github.com/stwms/workforce-portal/internal/core/ports"
)

// CookieName is the browser-side reference to the server-held session.
const CookieName = "stwms_session"

// LoginPath is where unauthenticated navigation is redirected.
const LoginPath = "/login"

const sessionContextKey = "session"

// NewSessionCookie builds the signed cookie pointing at a stored session.
// The cookie carries only the session ID inside an HS256 JWT; identity and
// credential stay server-side.
func NewSessionCookie(secret string, sess *domain.Session) (*http.Cookie, error) {
	claims := jwt.MapClaims{
		"sid": sess.ID,
		"exp": sess.ExpiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("sign session cookie: %w", err)
	}

	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// ExpiredSessionCookie returns the cookie that clears the session reference.
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// DecodeSessionID verifies the cookie signature and extracts the session ID.
// Any malformed or tampered cookie maps to domain.ErrNoSession.
func DecodeSessionID(secret, value string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !tkn.Valid {
		return "", domain.ErrNoSession
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", domain.ErrNoSession
	}
	return sid, nil
}

// Session is the route guard. It restores the persisted session before any
// handler runs; once it settles the request is either authorized (session in
// context) or denied (redirect to the login entry point). A store failure is
// treated as no session rather than a hard error, so a flaky store degrades
// to a login round-trip instead of a 500.
func Session(svc ports.SessionService, secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				return redirectToLogin(c)
			}

			sid, err := DecodeSessionID(secret, cookie.Value)
			if err != nil {
				return redirectToLogin(c)
			}

			sess, err := svc.Restore(c.Request().Context(), sid)
			if err != nil {
				if !errors.Is(err, domain.ErrNoSession) {
					c.Logger().Error(err)
				}
				return redirectToLogin(c)
			}

			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// RequireRoles gates a route group on role membership. An authenticated
// caller whose role set does not intersect the requirement is sent to the
// default landing route, not shown an error. This check shapes navigation
// only; the backend re-checks every forwarded call.
func RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if sess == nil {
				return redirectToLogin(c)
			}
			if !sess.Identity.Roles.HasAny(roles...) {
				return c.Redirect(http.StatusFound, "/dashboard")
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session placed in context by the Session
// middleware, or nil when the request is unauthenticated.
func CurrentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionContextKey).(*domain.Session)
	return sess
}

func redirectToLogin(c echo.Context) error {
	c.SetCookie(ExpiredSessionCookie())
	return c.Redirect(http.StatusFound, LoginPath)
}
