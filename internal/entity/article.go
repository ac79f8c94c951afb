package entity

import "time"

// Article is a news article returned by a news search provider.
// SourceCompany records which search term produced it.
type Article struct {
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Content       string     `json:"content"`
	URL           string     `json:"url"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	Source        string     `json:"source"`
	SourceCompany string     `json:"source_company"`
}
