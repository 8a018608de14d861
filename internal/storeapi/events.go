package storeapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/analytics"
	"github.com/Likith-Robotics-AI/plant-protein-store-sub001/internal/domain"
)

func registerEventRoutes(pub *echo.Group) {
	pub.POST("/events", recordEvent)
}

func recordEvent(c echo.Context) error {
	var ev domain.AnalyticsEvent
	if err := c.Bind(&ev); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse event", nil)
	}

	if err := GetApp(c).AnalyticsService().Record(&ev); err != nil {
		if errors.Is(err, analytics.ErrUnknownEventType) {
			return fail(c, http.StatusBadRequest, "UNKNOWN_EVENT_TYPE", err.Error(), nil)
		}
		return fail(c, http.StatusInternalServerError, "EVENT_ERROR", "Failed to record event", nil)
	}
	return ok(c, map[string]interface{}{"accepted": true})
}
