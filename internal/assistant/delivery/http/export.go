package http

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	"kchol-assistant/internal/entity"
)

// ExportSession renders a conversation log in the requested download format
// and returns the body with its content type.
func ExportSession(sess *entity.ChatSession, format string) ([]byte, string, error) {
	switch format {
	case "txt":
		return []byte(exportText(sess)), "text/plain; charset=utf-8", nil
	case "json":
		body, err := json.MarshalIndent(sess, "", "  ")
		return body, "application/json", err
	case "html":
		return []byte(exportHTML(sess)), "text/html; charset=utf-8", nil
	default:
		return nil, "", fmt.Errorf("unsupported export format %q", format)
	}
}

func exportText(sess *entity.ChatSession) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Sohbet: %s\nTarih: %s\n\n", sess.Title, sess.CreatedAt.Format("02.01.2006 15:04")))
	for _, msg := range sess.Messages {
		sender := "Kullanıcı"
		if msg.Sender == entity.SenderBot {
			sender = "Asistan"
		}
		b.WriteString(fmt.Sprintf("[%s] %s:\n%s\n\n", msg.Timestamp.Format("15:04"), sender, msg.Text))
	}
	return b.String()
}

func exportHTML(sess *entity.ChatSession) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"tr\">\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(sess.Title)))
	b.WriteString("<style>body{font-family:sans-serif;max-width:720px;margin:2em auto}.user{color:#1a5276}.bot{color:#145a32}.ts{color:#888;font-size:0.8em}</style>\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(sess.Title)))
	for _, msg := range sess.Messages {
		class, sender := "user", "Kullanıcı"
		if msg.Sender == entity.SenderBot {
			class, sender = "bot", "Asistan"
		}
		b.WriteString(fmt.Sprintf("<p class=\"%s\"><span class=\"ts\">%s</span> <strong>%s:</strong><br>%s</p>\n",
			class, msg.Timestamp.Format("15:04"), sender,
			strings.ReplaceAll(html.EscapeString(msg.Text), "\n", "<br>")))
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
