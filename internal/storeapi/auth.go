package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/auth"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/webserver"
)

func registerAuthRoutes(pub *echo.Group, priv *echo.Group) {
	pub.POST("/auth/register", register)
	pub.POST("/auth/login", login)
	pub.POST("/auth/logout", logout)
	priv.GET("/auth/verify", verify)
}

func register(c echo.Context) error {
	var payload auth.RegisterRequest
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", nil)
	}

	customer, err := GetApp(c).AuthService().Register(&payload)
	switch {
	case err == nil:
		return ok(c, customer)
	case errors.Is(err, auth.ErrDuplicateEmail):
		return fail(c, http.StatusConflict, "DUPLICATE_EMAIL", err.Error(), nil)
	case errors.Is(err, auth.ErrDuplicatePhone):
		return fail(c, http.StatusConflict, "DUPLICATE_PHONE", err.Error(), nil)
	case errors.Is(err, auth.ErrBadEmail),
		errors.Is(err, auth.ErrBadPhone),
		errors.Is(err, auth.ErrWeakPassword):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Registration failed", nil)
	}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func login(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", nil)
	}

	result, err := GetApp(c).AuthService().Login(
		payload.Email, payload.Password,
		c.Request().UserAgent(), c.RealIP())
	if err != nil {
		if errors.Is(err, auth.ErrBadCredentials) {
			return fail(c, http.StatusUnauthorized, "BAD_CREDENTIALS", "Invalid email or password", nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Login failed", nil)
	}
	return ok(c, result)
}

// logout is deliberately fail-open: whatever happens during session
// deletion, the caller sees success.
func logout(c echo.Context) error {
	if token := webserver.BearerToken(c); token != "" {
		GetApp(c).AuthService().Logout(token)
	}
	return ok(c, map[string]interface{}{"success": true})
}

func verify(c echo.Context) error {
	return ok(c, webserver.CurrentCustomer(c))
}
