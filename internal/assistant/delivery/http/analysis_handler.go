package http

import (
	"net/http"
	"strconv"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/service"
	"kchol-assistant/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisHandler handles the news and technical analysis endpoints.
type AnalysisHandler struct {
	newsService      service.NewsService
	technicalService service.TechnicalAnalysisService
	logger           *logger.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(
	newsService service.NewsService,
	technicalService service.TechnicalAnalysisService,
	logger *logger.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		newsService:      newsService,
		technicalService: technicalService,
		logger:           logger,
	}
}

// RegisterRoutes registers the analysis routes to the Echo group.
func (h *AnalysisHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/news_analysis", h.NewsAnalysis)
	g.POST("/technical_analysis", h.TechnicalAnalysis)
}

// NewsAnalysis godoc
// @Summary Aggregate news sentiment
// @Description Collects recent articles and returns the aggregate sentiment record
// @Tags analysis
// @Produce  json
// @Param   query  query  string  false  "Search term override"
// @Param   days   query  int     false  "Trailing window in days"
// @Success 200 {object} dto.SentimentRecord
// @Failure 500 {object} dto.ErrorResponse
// @Router /news_analysis [get]
func (h *AnalysisHandler) NewsAnalysis(c echo.Context) error {
	days, _ := strconv.Atoi(c.QueryParam("days"))
	record, err := h.newsService.AnalyzeQuery(c.Request().Context(), c.QueryParam("query"), days)
	if err != nil {
		h.logger.Error("news analysis failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Haber analizi yapılamadı"})
	}
	return c.JSON(http.StatusOK, record)
}

// TechnicalAnalysis godoc
// @Summary Run technical analysis
// @Description Computes indicator charts, a snapshot and a Turkish commentary
// @Tags analysis
// @Accept  json
// @Produce  json
// @Param   request  body    dto.TechnicalAnalysisRequest   true    "Analysis request"
// @Success 200 {object} dto.TechnicalAnalysisResult
// @Failure 500 {object} dto.ErrorResponse
// @Router /technical_analysis [post]
func (h *AnalysisHandler) TechnicalAnalysis(c echo.Context) error {
	var req dto.TechnicalAnalysisRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	result, err := h.technicalService.Analyze(c.Request().Context(), req.Request)
	if err != nil {
		h.logger.Error("technical analysis failed", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Teknik analiz yapılamadı"})
	}
	return c.JSON(http.StatusOK, result)
}
