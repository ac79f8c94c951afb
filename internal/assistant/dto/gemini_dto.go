package dto

// GeminiAPIRequest is the request body for the Gemini generateContent API.
type GeminiAPIRequest struct {
	Contents []Content `json:"contents"`
	Tools    []Tool    `json:"tools,omitempty"`
}

// Content is a single conversational content block.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part is a text fragment of a content block.
type Part struct {
	Text string `json:"text"`
}

// Tool enables an optional capability on a Gemini request.
// An empty GoogleSearch object turns on search grounding.
type Tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

// GeminiAPIResponse is the response body of the Gemini generateContent API.
type GeminiAPIResponse struct {
	Candidates []struct {
		Content struct {
			Parts []Part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
