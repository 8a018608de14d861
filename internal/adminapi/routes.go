// Package adminapi serves the back-office REST surface: orders, customers,
// discount codes, analytics views and exports.
package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/app"
)

// Register attaches the application context and all admin routes to g.
// The group itself is expected to carry the JWT/admin-key middleware.
func Register(g *echo.Group, actx *app.Application) {
	g.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ctxApp, actx)
			return next(c)
		}
	})

	registerOrderRoutes(g)
	registerCustomerRoutes(g)
	registerDiscountRoutes(g)
	registerAnalyticsRoutes(g)
	registerExportRoutes(g)
}
