// Package docs registers the generated OpenAPI definition with the swag
// runtime. Regenerate with `swag init` after changing handler annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/add_document": {
            "post": {
                "description": "Uploads a text document, chunks it and indexes it for retrieval",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "documents"
                ],
                "summary": "Add a document to the knowledge base",
                "parameters": [
                    {
                        "type": "file",
                        "description": "Document file",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.AddDocumentResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/calendar": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "calendar"
                ],
                "summary": "List upcoming calendar events",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Company symbol, defaults to KCHOL",
                        "name": "symbol",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Lookahead window in days, defaults to 30",
                        "name": "days",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/entity.CalendarEvent"
                            }
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/calendar/refresh": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "calendar"
                ],
                "summary": "Re-scrape the financial calendar now",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "boolean"
                            }
                        }
                    }
                }
            }
        },
        "/chat": {
            "post": {
                "description": "Routes a free-text Turkish message to the matching handler",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "chat"
                ],
                "summary": "Handle one chat turn",
                "parameters": [
                    {
                        "description": "User message",
                        "name": "message",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.ChatRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.ChatResponse"
                        }
                    }
                }
            }
        },
        "/chat_history": {
            "get": {
                "produces": [
                    "text/plain"
                ],
                "tags": [
                    "chat"
                ],
                "summary": "Download a session's conversation log",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Session ID",
                        "name": "session_id",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Export format: txt, json or html",
                        "name": "format",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "string"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/new_chat": {
            "post": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "chat"
                ],
                "summary": "Start a new chat session",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.NewChatResponse"
                        }
                    }
                }
            }
        },
        "/news_analysis": {
            "get": {
                "description": "Collects recent articles and returns the aggregate sentiment record",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "analysis"
                ],
                "summary": "Aggregate news sentiment",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Search term override",
                        "name": "query",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Trailing window in days",
                        "name": "days",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.SentimentRecord"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/portfolio": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "portfolio"
                ],
                "summary": "List a user's holdings",
                "parameters": [
                    {
                        "type": "string",
                        "description": "User ID",
                        "name": "user_id",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/entity.PortfolioItem"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/portfolio/add": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "portfolio"
                ],
                "summary": "Add a holding",
                "parameters": [
                    {
                        "description": "Holding to add",
                        "name": "item",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.AddPortfolioItemRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "boolean"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/portfolio/calculate": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "portfolio"
                ],
                "summary": "Value a user's portfolio at current prices",
                "parameters": [
                    {
                        "type": "string",
                        "description": "User ID",
                        "name": "user_id",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.PortfolioValuation"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/portfolio/remove": {
            "post": {
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "portfolio"
                ],
                "summary": "Remove a holding",
                "parameters": [
                    {
                        "description": "Holding to remove",
                        "name": "item",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.RemovePortfolioItemRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "additionalProperties": {
                                "type": "boolean"
                            }
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/sessions": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "chat"
                ],
                "summary": "List chat sessions",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "$ref": "#/definitions/entity.SessionSummary"
                            }
                        }
                    }
                }
            }
        },
        "/technical_analysis": {
            "post": {
                "description": "Computes indicator charts, a snapshot and a Turkish commentary",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "analysis"
                ],
                "summary": "Run technical analysis",
                "parameters": [
                    {
                        "description": "Analysis request",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/dto.TechnicalAnalysisRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/dto.TechnicalAnalysisResult"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "$ref": "#/definitions/dto.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.AddDocumentResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "dto.AddPortfolioItemRequest": {
            "type": "object",
            "properties": {
                "buy_price": {
                    "type": "number"
                },
                "quantity": {
                    "type": "number"
                },
                "ticker": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                }
            }
        },
        "dto.Chart": {
            "type": "object",
            "properties": {
                "series": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ChartSeries"
                    }
                },
                "title": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                }
            }
        },
        "dto.ChartSeries": {
            "type": "object",
            "properties": {
                "dates": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "name": {
                    "type": "string"
                },
                "values": {
                    "type": "array",
                    "items": {
                        "type": "number"
                    }
                }
            }
        },
        "dto.ChatRequest": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "session_id": {
                    "type": "string"
                }
            }
        },
        "dto.ChatResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "response": {
                    "type": "string"
                },
                "session_id": {
                    "type": "string"
                },
                "type": {
                    "type": "string"
                }
            }
        },
        "dto.CompanySentiment": {
            "type": "object",
            "properties": {
                "count": {
                    "type": "integer"
                },
                "negative": {
                    "type": "integer"
                },
                "neutral": {
                    "type": "integer"
                },
                "positive": {
                    "type": "integer"
                },
                "total_score": {
                    "type": "number"
                }
            }
        },
        "dto.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "string"
                }
            }
        },
        "dto.IndicatorSnapshot": {
            "type": "object",
            "properties": {
                "atr": {
                    "type": "number"
                },
                "bb_width": {
                    "type": "number"
                },
                "current_price": {
                    "type": "number"
                },
                "daily_change_percent": {
                    "type": "number"
                },
                "macd": {
                    "type": "number"
                },
                "macd_direction": {
                    "type": "string"
                },
                "macd_signal": {
                    "type": "number"
                },
                "rsi": {
                    "type": "number"
                },
                "rsi_zone": {
                    "type": "string"
                },
                "sma20": {
                    "type": "number"
                },
                "sma50": {
                    "type": "number"
                },
                "sma200": {
                    "type": "number"
                },
                "trend_comment": {
                    "type": "string"
                },
                "williams": {
                    "type": "number"
                }
            }
        },
        "dto.NewChatResponse": {
            "type": "object",
            "properties": {
                "message": {
                    "type": "string"
                },
                "session_id": {
                    "type": "string"
                },
                "success": {
                    "type": "boolean"
                }
            }
        },
        "dto.PortfolioPosition": {
            "type": "object",
            "properties": {
                "buy_price": {
                    "type": "number"
                },
                "current_price": {
                    "type": "number"
                },
                "current_value": {
                    "type": "number"
                },
                "item_id": {
                    "type": "integer"
                },
                "net_gain": {
                    "type": "number"
                },
                "quantity": {
                    "type": "number"
                },
                "return_pct": {
                    "type": "number"
                },
                "ticker": {
                    "type": "string"
                }
            }
        },
        "dto.PortfolioValuation": {
            "type": "object",
            "properties": {
                "net_gain": {
                    "type": "number"
                },
                "positions": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.PortfolioPosition"
                    }
                },
                "return_pct": {
                    "type": "number"
                },
                "total_cost": {
                    "type": "number"
                },
                "total_value": {
                    "type": "number"
                },
                "user_id": {
                    "type": "string"
                }
            }
        },
        "dto.RemovePortfolioItemRequest": {
            "type": "object",
            "properties": {
                "item_id": {
                    "type": "integer"
                },
                "user_id": {
                    "type": "string"
                }
            }
        },
        "dto.ScoredArticle": {
            "type": "object",
            "properties": {
                "content": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "published_at": {
                    "type": "string"
                },
                "score": {
                    "type": "number"
                },
                "sentiment": {
                    "type": "string"
                },
                "source": {
                    "type": "string"
                },
                "source_company": {
                    "type": "string"
                },
                "title": {
                    "type": "string"
                },
                "url": {
                    "type": "string"
                }
            }
        },
        "dto.SentimentRecord": {
            "type": "object",
            "properties": {
                "analyzed_at": {
                    "type": "string"
                },
                "company_breakdown": {
                    "type": "object",
                    "additionalProperties": {
                        "$ref": "#/definitions/dto.CompanySentiment"
                    }
                },
                "key_articles": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ScoredArticle"
                    }
                },
                "negative_count": {
                    "type": "integer"
                },
                "neutral_count": {
                    "type": "integer"
                },
                "overall_sentiment": {
                    "type": "string"
                },
                "positive_count": {
                    "type": "integer"
                },
                "sentiment_score": {
                    "type": "number"
                },
                "total_articles": {
                    "type": "integer"
                }
            }
        },
        "dto.TechnicalAnalysisRequest": {
            "type": "object",
            "properties": {
                "request": {
                    "type": "string"
                }
            }
        },
        "dto.TechnicalAnalysisResult": {
            "type": "object",
            "properties": {
                "analysis": {
                    "type": "string"
                },
                "charts": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.Chart"
                    }
                },
                "snapshot": {
                    "$ref": "#/definitions/dto.IndicatorSnapshot"
                },
                "summary": {
                    "type": "string"
                }
            }
        },
        "entity.CalendarEvent": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "description": {
                    "type": "string"
                },
                "event_date": {
                    "type": "string"
                },
                "event_type": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "source": {
                    "type": "string"
                },
                "status": {
                    "type": "string"
                },
                "symbol": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                }
            }
        },
        "entity.PortfolioItem": {
            "type": "object",
            "properties": {
                "buy_price": {
                    "type": "number"
                },
                "created_at": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "quantity": {
                    "type": "number"
                },
                "ticker": {
                    "type": "string"
                },
                "updated_at": {
                    "type": "string"
                },
                "user_id": {
                    "type": "string"
                }
            }
        },
        "entity.SessionSummary": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "id": {
                    "type": "string"
                },
                "message_count": {
                    "type": "integer"
                },
                "title": {
                    "type": "string"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "KCHOL Assistant API",
	Description:      "Turkish conversational assistant for the KCHOL stock.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
