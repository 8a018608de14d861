package adminapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/analytics"
)

func registerAnalyticsRoutes(g *echo.Group) {
	g.GET("/analytics/summary", analyticsSummary)
	g.GET("/analytics/funnel", analyticsFunnel)
	g.GET("/analytics/timeline", analyticsTimeline)
}

func analyticsRange(c echo.Context) (time.Time, time.Time, error) {
	return analytics.ParseRange(c.QueryParam("from"), c.QueryParam("to"), time.Now())
}

func analyticsSummary(c echo.Context) error {
	from, to, err := analyticsRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", err.Error(), nil)
	}
	summary, err := GetApp(c).AnalyticsService().SummaryView(from, to)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to aggregate events", nil)
	}
	return ok(c, summary)
}

func analyticsFunnel(c echo.Context) error {
	from, to, err := analyticsRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", err.Error(), nil)
	}
	funnel, err := GetApp(c).AnalyticsService().FunnelView(from, to)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to aggregate events", nil)
	}
	return ok(c, map[string]interface{}{"steps": funnel, "from": from, "to": to})
}

func analyticsTimeline(c echo.Context) error {
	from, to, err := analyticsRange(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_RANGE", err.Error(), nil)
	}
	timeline, err := GetApp(c).AnalyticsService().TimelineView(from, to)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to aggregate events", nil)
	}
	return ok(c, map[string]interface{}{"buckets": timeline, "from": from, "to": to})
}
