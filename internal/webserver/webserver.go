// Package webserver boots the echo server and owns the auth middleware for
// the storefront and admin route groups.
package webserver

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/config"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/auth"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
)

const (
	CtxCustomer = "ctx_customer"
	CtxAdminKey = "ctx_admin_key"
)

type WebServer struct {
	cfg  *config.AppConfig
	auth *auth.Service
	root *echo.Echo
}

func NewWebServer(cfg *config.AppConfig, authService *auth.Service) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(zapLoggerMiddleware())

	return &WebServer{cfg: cfg, auth: authService, root: e}
}

func zapLoggerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			zap.L().Debug("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return err
		}
	}
}

// Echo exposes the underlying server (tests)
func (ws *WebServer) Echo() *echo.Echo {
	return ws.root
}

// PublicGroup returns the storefront route group, no auth required
func (ws *WebServer) PublicGroup() *echo.Group {
	return ws.root.Group("/api/v1")
}

// CustomerGroup returns a group requiring a verified customer session
func (ws *WebServer) CustomerGroup() *echo.Group {
	g := ws.root.Group("/api/v1")
	g.Use(ws.CustomerAuthMiddleware())
	return g
}

// AdminGroup returns the back-office group, guarded by JWT admin claims or
// the configured admin API key header.
func (ws *WebServer) AdminGroup() *echo.Group {
	g := ws.root.Group("/api/v1/admin")
	g.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(ws.cfg.Web.Secret),
		Skipper:    ws.adminKeySkipper,
	}))
	g.Use(ws.adminGuardMiddleware())
	return g
}

// adminKeySkipper lets a matching X-API-Key bypass JWT validation
func (ws *WebServer) adminKeySkipper(c echo.Context) bool {
	key := c.Request().Header.Get("X-API-Key")
	if key != "" && ws.cfg.Web.AdminKey != "" && key == ws.cfg.Web.AdminKey {
		c.Set(CtxAdminKey, true)
		return true
	}
	return false
}

// adminGuardMiddleware enforces the application-level admin check on top of
// a valid token: admin level claim or the allow-listed admin email.
func (ws *WebServer) adminGuardMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ok, _ := c.Get(CtxAdminKey).(bool); ok {
				return next(c)
			}
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid claims")
			}
			level, _ := claims["level"].(string)
			email, _ := claims["sub"].(string)
			isAdmin := level == "admin" || level == "super"
			if !isAdmin && ws.cfg.Web.AdminEmail != "" {
				isAdmin = strings.EqualFold(email, ws.cfg.Web.AdminEmail)
			}
			if !isAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin access required")
			}
			return next(c)
		}
	}
}

// CustomerAuthMiddleware verifies the bearer token against both JWT
// validity and the session row, attaching the customer to the context.
func (ws *WebServer) CustomerAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			customer, err := ws.auth.Verify(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired or revoked")
			}
			c.Set(CtxCustomer, customer)
			return next(c)
		}
	}
}

// BearerToken extracts the Authorization bearer token, empty if absent
func BearerToken(c echo.Context) string {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// CurrentCustomer returns the verified customer attached by the middleware
func CurrentCustomer(c echo.Context) *domain.Customer {
	customer, _ := c.Get(CtxCustomer).(*domain.Customer)
	return customer
}

// Start serves until the listener fails
func (ws *WebServer) Start() error {
	addr := fmt.Sprintf("%s:%d", ws.cfg.Web.Host, ws.cfg.Web.Port)
	zap.L().Info("web server listening", zap.String("addr", addr))
	return ws.root.Start(addr)
}
