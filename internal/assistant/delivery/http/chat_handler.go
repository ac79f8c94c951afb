package http

import (
	"errors"
	"fmt"
	"net/http"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/assistant/service"
	"kchol-assistant/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ChatHandler handles the conversational endpoints.
type ChatHandler struct {
	chatService service.ChatService
	logger      *logger.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService service.ChatService, logger *logger.Logger) *ChatHandler {
	return &ChatHandler{chatService: chatService, logger: logger}
}

// RegisterRoutes registers the chat routes to the Echo group.
func (h *ChatHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/chat", h.Chat)
	g.POST("/new_chat", h.NewChat)
	g.GET("/chat_history", h.ChatHistory)
	g.GET("/sessions", h.Sessions)
}

// Chat godoc
// @Summary Handle one chat turn
// @Description Routes a free-text Turkish message to the matching handler
// @Tags chat
// @Accept  json
// @Produce  json
// @Param   message  body    dto.ChatRequest   true    "User message"
// @Success 200 {object} dto.ChatResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := c.Bind(&req); err != nil || req.Message == "" {
		// Failures stay behind HTTP 200 so the web client always renders
		// the error text as a bot message.
		return c.JSON(http.StatusOK, &dto.ChatResponse{
			Response: "Bir hata oluştu: mesaj okunamadı",
			Type:     dto.TypeError,
		})
	}

	return c.JSON(http.StatusOK, h.chatService.Chat(c.Request().Context(), &req))
}

// NewChat godoc
// @Summary Start a new chat session
// @Tags chat
// @Produce  json
// @Success 200 {object} dto.NewChatResponse
// @Router /new_chat [post]
func (h *ChatHandler) NewChat(c echo.Context) error {
	sess, err := h.chatService.NewSession(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to create session", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Oturum oluşturulamadı"})
	}

	return c.JSON(http.StatusOK, &dto.NewChatResponse{
		Success:   true,
		SessionID: sess.ID,
		Message:   "Yeni sohbet başlatıldı",
	})
}

// ChatHistory godoc
// @Summary Download a session's conversation log
// @Tags chat
// @Produce  plain
// @Param   session_id  query    string  true    "Session ID"
// @Param   format      query    string  false   "Export format: txt, json or html"
// @Success 200 {string} string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /chat_history [get]
func (h *ChatHandler) ChatHistory(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "session_id gerekli"})
	}

	sess, err := h.chatService.History(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, errs.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Oturum bulunamadı"})
		}
		h.logger.Error("failed to load session", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}

	format := c.QueryParam("format")
	if format == "" {
		format = "txt"
	}

	body, contentType, err := ExportSession(sess, format)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Geçersiz format, txt, json veya html kullanın"})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=chat_%s.%s", sess.ID, format))
	return c.Blob(http.StatusOK, contentType, body)
}

// Sessions godoc
// @Summary List chat sessions
// @Tags chat
// @Produce  json
// @Success 200 {array} entity.SessionSummary
// @Router /sessions [get]
func (h *ChatHandler) Sessions(c echo.Context) error {
	summaries, err := h.chatService.Sessions(c.Request().Context())
	if err != nil {
		h.logger.Error("failed to list sessions", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, summaries)
}
