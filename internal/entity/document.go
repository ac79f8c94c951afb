package entity

import (
	"time"

	"github.com/lib/pq"
)

// Document is an uploaded knowledge-base document.
type Document struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	FileName  string          `gorm:"unique;not null" json:"file_name"`
	Title     string          `json:"title"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	Chunks    []DocumentChunk `gorm:"foreignKey:DocumentID" json:"chunks"`
}

// TableName specifies the table name for the Document model.
func (Document) TableName() string {
	return "documents"
}

// DocumentChunk is a retrievable slice of a document with its index keywords.
type DocumentChunk struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	DocumentID uint           `gorm:"index;not null" json:"document_id"`
	Seq        int            `gorm:"not null" json:"seq"`
	Content    string         `gorm:"not null" json:"content"`
	Keywords   pq.StringArray `gorm:"type:text[]" json:"keywords"`
}

// TableName specifies the table name for the DocumentChunk model.
func (DocumentChunk) TableName() string {
	return "document_chunks"
}
