package repository

import (
	"context"

	"kchol-assistant/internal/entity"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *entity.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *documentRepository) ExistsByFileName(ctx context.Context, fileName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Document{}).
		Where("file_name = ?", fileName).
		Count(&count).Error
	return count > 0, err
}

// SearchChunks returns chunks whose keyword arrays overlap the query
// keywords, most recently added documents first.
func (r *documentRepository) SearchChunks(ctx context.Context, keywords []string, limit int) ([]entity.DocumentChunk, error) {
	if len(keywords) == 0 {
		return nil, nil
	}

	var chunks []entity.DocumentChunk
	err := r.db.WithContext(ctx).
		Where("keywords && ?", pq.Array(keywords)).
		Order("document_id desc, seq asc").
		Limit(limit).
		Find(&chunks).Error
	return chunks, err
}
