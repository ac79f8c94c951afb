package http

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/service"
	"kchol-assistant/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Upload limit for knowledge-base documents.
const maxDocumentSize = 5 << 20

// DocumentHandler handles knowledge-base document uploads.
type DocumentHandler struct {
	qaService service.QAService
	logger    *logger.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(qaService service.QAService, logger *logger.Logger) *DocumentHandler {
	return &DocumentHandler{qaService: qaService, logger: logger}
}

// RegisterRoutes registers the document routes to the Echo group.
func (h *DocumentHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/add_document", h.AddDocument)
}

// AddDocument godoc
// @Summary Add a document to the knowledge base
// @Description Uploads a text document, chunks it and indexes it for retrieval
// @Tags documents
// @Accept  mpfd
// @Produce  json
// @Param   file  formData  file  true  "Document file"
// @Success 200 {object} dto.AddDocumentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /add_document [post]
func (h *DocumentHandler) AddDocument(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Dosya bulunamadı"})
	}
	if fileHeader.Size > maxDocumentSize {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Dosya çok büyük"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Dosya açılamadı"})
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxDocumentSize))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Dosya okunamadı"})
	}

	title := strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	if err := h.qaService.AddDocument(c.Request().Context(), fileHeader.Filename, title, string(content)); err != nil {
		h.logger.Error("failed to add document", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, &dto.AddDocumentResponse{
			Success: false,
			Message: "Belge eklenemedi",
		})
	}

	return c.JSON(http.StatusOK, &dto.AddDocumentResponse{
		Success: true,
		Message: "Belge başarıyla eklendi",
	})
}
