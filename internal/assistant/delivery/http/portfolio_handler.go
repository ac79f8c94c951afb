package http

import (
	"net/http"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/service"
	"kchol-assistant/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PortfolioHandler handles the portfolio tracking endpoints.
type PortfolioHandler struct {
	portfolioService service.PortfolioService
	logger           *logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService service.PortfolioService, logger *logger.Logger) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService, logger: logger}
}

// RegisterRoutes registers the portfolio routes to the Echo group.
func (h *PortfolioHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/portfolio", h.List)
	g.POST("/portfolio/add", h.Add)
	g.POST("/portfolio/remove", h.Remove)
	g.GET("/portfolio/calculate", h.Calculate)
}

// List godoc
// @Summary List a user's holdings
// @Tags portfolio
// @Produce  json
// @Param   user_id  query    string  true    "User ID"
// @Success 200 {array} entity.PortfolioItem
// @Failure 400 {object} dto.ErrorResponse
// @Router /portfolio [get]
func (h *PortfolioHandler) List(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id gerekli"})
	}

	items, err := h.portfolioService.List(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to list portfolio", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, items)
}

// Add godoc
// @Summary Add a holding
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   item  body    dto.AddPortfolioItemRequest   true    "Holding to add"
// @Success 201 {object} map[string]bool
// @Failure 400 {object} dto.ErrorResponse
// @Router /portfolio/add [post]
func (h *PortfolioHandler) Add(c echo.Context) error {
	var req dto.AddPortfolioItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.UserID == "" || req.Ticker == "" || req.Quantity <= 0 || req.BuyPrice <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id, ticker, quantity ve buy_price gerekli"})
	}

	if err := h.portfolioService.Add(c.Request().Context(), &req); err != nil {
		h.logger.Error("failed to add holding", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

// Remove godoc
// @Summary Remove a holding
// @Tags portfolio
// @Accept  json
// @Produce  json
// @Param   item  body    dto.RemovePortfolioItemRequest   true    "Holding to remove"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} dto.ErrorResponse
// @Router /portfolio/remove [post]
func (h *PortfolioHandler) Remove(c echo.Context) error {
	var req dto.RemovePortfolioItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	if err := h.portfolioService.Remove(c.Request().Context(), &req); err != nil {
		h.logger.Error("failed to remove holding", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Calculate godoc
// @Summary Value a user's portfolio at current prices
// @Tags portfolio
// @Produce  json
// @Param   user_id  query    string  true    "User ID"
// @Success 200 {object} dto.PortfolioValuation
// @Failure 400 {object} dto.ErrorResponse
// @Router /portfolio/calculate [get]
func (h *PortfolioHandler) Calculate(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id gerekli"})
	}

	valuation, err := h.portfolioService.Calculate(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("failed to value portfolio", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, valuation)
}
