package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kchol-assistant/internal/entity"
)

func exportFixture() *entity.ChatSession {
	created := time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	return &entity.ChatSession{
		ID:        "abc-123",
		Title:     "Fiyat tahmini",
		CreatedAt: created,
		Messages: []entity.ChatMessage{
			{ID: 1, Sender: entity.SenderUser, Text: "fiyat tahmini yap", Timestamp: created},
			{ID: 2, Sender: entity.SenderBot, Text: "Tahmin: 210.50 TL\nYükseliş bekleniyor!", Timestamp: created},
		},
	}
}

func TestExportSessionText(t *testing.T) {
	body, contentType, err := ExportSession(exportFixture(), "txt")
	require.NoError(t, err)

	assert.Equal(t, "text/plain; charset=utf-8", contentType)
	text := string(body)
	assert.Contains(t, text, "Sohbet: Fiyat tahmini")
	assert.Contains(t, text, "Kullanıcı:\nfiyat tahmini yap")
	assert.Contains(t, text, "Asistan:\nTahmin: 210.50 TL")
}

func TestExportSessionJSON(t *testing.T) {
	body, contentType, err := ExportSession(exportFixture(), "json")
	require.NoError(t, err)

	assert.Equal(t, "application/json", contentType)
	var decoded entity.ChatSession
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "abc-123", decoded.ID)
	require.Len(t, decoded.Messages, 2)
	assert.Equal(t, entity.SenderBot, decoded.Messages[1].Sender)
}

func TestExportSessionHTMLEscapes(t *testing.T) {
	sess := exportFixture()
	sess.Messages[0].Text = "<script>alert(1)</script>"

	body, contentType, err := ExportSession(sess, "html")
	require.NoError(t, err)

	assert.Equal(t, "text/html; charset=utf-8", contentType)
	page := string(body)
	assert.NotContains(t, page, "<script>alert(1)</script>")
	assert.Contains(t, page, "&lt;script&gt;")
	// Newlines in replies become line breaks.
	assert.Contains(t, page, "Tahmin: 210.50 TL<br>Yükseliş bekleniyor!")
}

func TestExportSessionUnsupportedFormat(t *testing.T) {
	_, _, err := ExportSession(exportFixture(), "pdf")
	assert.Error(t, err)
}
