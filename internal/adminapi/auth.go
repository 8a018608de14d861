package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/app"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/auth"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/pkg/common"
)

// RegisterAuth attaches the admin login endpoint to an unauthenticated
// group; every other admin route lives behind the guarded group.
func RegisterAuth(g *echo.Group, actx *app.Application) {
	g.POST("/admin/login", func(c echo.Context) error {
		return adminLogin(c, actx)
	})
}

type adminLoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func adminLogin(c echo.Context, actx *app.Application) error {
	var payload adminLoginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", nil)
	}

	var cust domain.Customer
	err := actx.DB().Where("LOWER(email) = ? AND status = ?",
		strings.ToLower(strings.TrimSpace(payload.Email)), common.ENABLED).First(&cust).Error
	if err != nil || cust.Password == "" || !auth.VerifyPassword(cust.Password, payload.Password) {
		return fail(c, http.StatusUnauthorized, "BAD_CREDENTIALS", "Invalid email or password", nil)
	}

	allowListed := actx.Config().Web.AdminEmail != "" &&
		strings.EqualFold(cust.Email, actx.Config().Web.AdminEmail)
	if !cust.IsAdmin() && !allowListed {
		return fail(c, http.StatusForbidden, "NOT_ADMIN", "Admin access required", nil)
	}

	token, err := auth.MintToken(&cust, actx.Config().Web.Secret, time.Now())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token", nil)
	}

	actx.DB().Model(&domain.Customer{}).Where("id = ?", cust.ID).
		Update("last_login", time.Now())
	actx.DB().Create(&domain.SysOpLog{
		ID:        common.UUIDint64(),
		Operator:  cust.Email,
		OprIp:     c.RealIP(),
		OptAction: "admin_login",
		OptDesc:   "admin console login",
		OptTime:   time.Now(),
	})

	return ok(c, map[string]interface{}{
		"token":    token,
		"level":    cust.Level,
		"customer": cust,
	})
}
