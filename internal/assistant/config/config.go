package config

import (
	"kchol-assistant/pkg/config"
)

// Assistant holds assistant-specific behavior settings.
type Assistant struct {
	Ticker          string   `mapstructure:"ticker"`
	LookbackDays    int      `mapstructure:"lookback_days"`
	NewsDays        int      `mapstructure:"news_days"`
	NewsPageSize    int      `mapstructure:"news_page_size"`
	SearchTerms     []string `mapstructure:"search_terms"`
	SessionStore    string   `mapstructure:"session_store"` // "memory" or "redis"
	DocumentsDir    string   `mapstructure:"documents_dir"`
	ModelPath       string   `mapstructure:"model_path"`
	BriefingSpec    string   `mapstructure:"briefing_spec"`
	CalendarSpec    string   `mapstructure:"calendar_spec"`
	CalendarSymbols []string `mapstructure:"calendar_symbols"`
}

// Gemini holds the configuration for the Gemini API.
type Gemini struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	Model               string `mapstructure:"model"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
	MaxTokenPerMinute   int    `mapstructure:"max_token_per_minute"`
}

// NewsAPI holds the configuration for the NewsAPI service.
type NewsAPI struct {
	APIKey              string `mapstructure:"api_key"`
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// YahooFinance holds the configuration for the Yahoo Finance API.
type YahooFinance struct {
	BaseURL             string `mapstructure:"base_url"`
	MaxRequestPerMinute int    `mapstructure:"max_request_per_minute"`
}

// Telegram holds configuration for the Telegram briefing notifier.
type Telegram struct {
	Enabled  bool   `mapstructure:"enabled"`
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the assistant service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	Assistant    Assistant       `mapstructure:"assistant"`
	Gemini       Gemini          `mapstructure:"gemini"`
	NewsAPI      NewsAPI         `mapstructure:"news_api"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	Telegram     Telegram        `mapstructure:"telegram"`
}

// Load loads the assistant configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
