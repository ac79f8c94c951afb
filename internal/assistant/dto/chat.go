package dto

// Response type tags returned by /api/chat.
const (
	TypePrediction        = "prediction"
	TypeTechnicalAnalysis = "technical_analysis"
	TypeNewsAnalysis      = "news_analysis"
	TypeFinancialQA       = "financial_qa"
	TypeFinancialEduca    = "financial_education"
	TypePersonalAdvice    = "personalized_advice"
	TypeSimulation        = "simulation"
	TypeHelp              = "help"
	TypeGreeting          = "greeting"
	TypeAIResponse        = "ai_response"
	TypeError             = "error"
	TypeUnknown           = "unknown"
)

// ChatRequest is the body of POST /api/chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the reply for one chat turn.
type ChatResponse struct {
	Response  string      `json:"response"`
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	SessionID string      `json:"session_id"`
}

// NewChatResponse is the reply of POST /api/new_chat.
type NewChatResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}
