package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/app"
)

const ctxApp = "ctx_admin_app"

// GetApp returns the application context attached by Register
func GetApp(c echo.Context) *app.Application {
	return c.Get(ctxApp).(*app.Application)
}

// GetDB returns the request-scoped database handle
func GetDB(c echo.Context) *gorm.DB {
	return GetApp(c).DB()
}

type errorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
}

// fail writes a uniform error body. Detail is for client-safe context only;
// raw store/processor errors go to the log, not the response.
func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	if status >= http.StatusInternalServerError {
		detail = nil
	}
	return c.JSON(status, map[string]interface{}{
		"error": errorBody{Code: code, Message: message, Detail: detail},
	})
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func paged(c echo.Context, rows interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":      rows,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

func parsePagination(c echo.Context) (int, int) {
	page := 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := 20
	if ps, err := strconv.Atoi(c.QueryParam("pageSize")); err == nil && ps > 0 && ps <= 500 {
		pageSize = ps
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
