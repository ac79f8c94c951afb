package http

import (
	"net/http"
	"strconv"

	"kchol-assistant/internal/assistant/service"
	"kchol-assistant/pkg/common"
	"kchol-assistant/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CalendarHandler handles the financial calendar endpoints.
type CalendarHandler struct {
	calendarService service.CalendarService
	logger          *logger.Logger
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService service.CalendarService, logger *logger.Logger) *CalendarHandler {
	return &CalendarHandler{calendarService: calendarService, logger: logger}
}

// RegisterRoutes registers the calendar routes to the Echo group.
func (h *CalendarHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/calendar", h.Upcoming)
	g.POST("/calendar/refresh", h.Refresh)
}

// Upcoming godoc
// @Summary List upcoming calendar events
// @Tags calendar
// @Produce  json
// @Param   symbol  query    string  false   "Company symbol, defaults to KCHOL"
// @Param   days    query    int     false   "Lookahead window in days, defaults to 30"
// @Success 200 {array} entity.CalendarEvent
// @Failure 500 {object} dto.ErrorResponse
// @Router /calendar [get]
func (h *CalendarHandler) Upcoming(c echo.Context) error {
	symbol := c.QueryParam("symbol")
	if symbol == "" {
		symbol = common.DefaultCalendarSymbol
	}

	days := 30
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "days pozitif bir sayı olmalı"})
		}
		days = parsed
	}

	events, err := h.calendarService.Upcoming(c.Request().Context(), symbol, days)
	if err != nil {
		h.logger.Error("failed to load calendar", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, events)
}

// Refresh godoc
// @Summary Re-scrape the financial calendar now
// @Tags calendar
// @Produce  json
// @Success 200 {object} map[string]bool
// @Router /calendar/refresh [post]
func (h *CalendarHandler) Refresh(c echo.Context) error {
	if err := h.calendarService.Refresh(c.Request().Context()); err != nil {
		h.logger.Error("calendar refresh failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
