package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kchol-assistant/internal/assistant/dto"
	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"
)

type stubChatService struct {
	resp    *dto.ChatResponse
	session *entity.ChatSession
}

func (s *stubChatService) Chat(ctx context.Context, req *dto.ChatRequest) *dto.ChatResponse {
	return s.resp
}

func (s *stubChatService) NewSession(ctx context.Context) (*entity.ChatSession, error) {
	return &entity.ChatSession{ID: "new-session", Title: "Yeni Sohbet"}, nil
}

func (s *stubChatService) History(ctx context.Context, sessionID string) (*entity.ChatSession, error) {
	if s.session == nil || s.session.ID != sessionID {
		return nil, errs.ErrSessionNotFound
	}
	return s.session, nil
}

func (s *stubChatService) Sessions(ctx context.Context) ([]entity.SessionSummary, error) {
	return []entity.SessionSummary{{ID: "abc", Title: "Fiyat tahmini", MessageCount: 4}}, nil
}

func newChatTestHandler(svc *stubChatService) *ChatHandler {
	log, err := logger.New("error", "json")
	if err != nil {
		panic(err)
	}
	return NewChatHandler(svc, log)
}

func TestChatEndpoint(t *testing.T) {
	handler := newChatTestHandler(&stubChatService{resp: &dto.ChatResponse{
		Response:  "Merhaba!",
		Type:      dto.TypeGreeting,
		SessionID: "abc",
	}})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"merhaba"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.Chat(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.TypeGreeting, resp.Type)
	assert.Equal(t, "abc", resp.SessionID)
}

func TestChatEndpointBadBodyStaysHTTP200(t *testing.T) {
	handler := newChatTestHandler(&stubChatService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{not json`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.Chat(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.TypeError, resp.Type)
	assert.Contains(t, resp.Response, "mesaj okunamadı")
}

func TestChatEndpointEmptyMessageStaysHTTP200(t *testing.T) {
	handler := newChatTestHandler(&stubChatService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.Chat(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, dto.TypeError, resp.Type)
}

func TestNewChatEndpoint(t *testing.T) {
	handler := newChatTestHandler(&stubChatService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/new_chat", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.NewChat(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.NewChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "new-session", resp.SessionID)
}

func TestChatHistoryEndpoint(t *testing.T) {
	handler := newChatTestHandler(&stubChatService{session: exportFixture()})

	t.Run("txt download", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/chat_history?session_id=abc-123", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler.ChatHistory(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "attachment; filename=chat_abc-123.txt", rec.Header().Get(echo.HeaderContentDisposition))
		assert.Contains(t, rec.Body.String(), "Sohbet: Fiyat tahmini")
	})

	t.Run("missing session_id", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/chat_history", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler.ChatHistory(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown session", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/chat_history?session_id=nope", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler.ChatHistory(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad format", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/api/chat_history?session_id=abc-123&format=pdf", nil)
		rec := httptest.NewRecorder()

		require.NoError(t, handler.ChatHistory(e.NewContext(req, rec)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSessionsEndpoint(t *testing.T) {
	handler := newChatTestHandler(&stubChatService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, handler.Sessions(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var summaries []entity.SessionSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, 4, summaries[0].MessageCount)
}
