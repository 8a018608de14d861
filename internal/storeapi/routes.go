// Package storeapi serves the public storefront REST surface: catalog,
// checkout, customer auth, addresses, wishlist, reviews, payment intents
// and analytics event ingest.
package storeapi

import (
	"github.com/labstack/echo/v4"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/app"
)

func appContextMiddleware(actx *app.Application) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ctxApp, actx)
			return next(c)
		}
	}
}

// Register attaches public routes to pub and session-guarded routes to priv.
func Register(pub *echo.Group, priv *echo.Group, actx *app.Application) {
	pub.Use(appContextMiddleware(actx))
	priv.Use(appContextMiddleware(actx))

	registerAuthRoutes(pub, priv)
	registerProductRoutes(pub, priv)
	registerOrderRoutes(pub)
	registerAddressRoutes(priv)
	registerWishlistRoutes(priv)
	registerPaymentRoutes(pub)
	registerEventRoutes(pub)
}
