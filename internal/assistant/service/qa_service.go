package service

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/internal/assistant/repository"
	"kchol-assistant/internal/entity"
	"kchol-assistant/pkg/logger"

	"github.com/lib/pq"
)

// Chunking and retrieval limits.
const (
	chunkSize        = 1000
	maxChunkKeywords = 12
	maxChunksPerHit  = 4
)

// Canned fallback when every responder in the chain fails.
const qaFallbackResponse = "Üzgünüm, şu anda yanıt veremiyorum. Lütfen daha sonra tekrar deneyin."

// QAService answers free-form questions. Retrieval over uploaded documents
// is tried first, then a plain generative answer, then a canned fallback.
type QAService interface {
	Answer(ctx context.Context, message string) string
	// AnswerEducational answers definitional finance questions without
	// document retrieval.
	AnswerEducational(ctx context.Context, message string) string
	AddDocument(ctx context.Context, fileName, title, content string) error
	// SeedFromDir ingests the .txt and .md files of a directory. Files
	// already ingested under the same name are skipped.
	SeedFromDir(ctx context.Context, dir string) error
}

// NewQAService creates a QA service. Both repositories may be nil; each
// missing collaborator just shortens the fallback chain.
func NewQAService(
	docRepo repository.DocumentRepository,
	aiRepo repository.AIRepository,
	log *logger.Logger,
) QAService {
	return &qaService{docRepo: docRepo, aiRepo: aiRepo, log: log}
}

type qaService struct {
	docRepo repository.DocumentRepository
	aiRepo  repository.AIRepository
	log     *logger.Logger
}

func (s *qaService) Answer(ctx context.Context, message string) string {
	if s.docRepo != nil {
		keywords := ExtractKeywords(message, maxChunkKeywords)
		if len(keywords) > 0 {
			chunks, err := s.docRepo.SearchChunks(ctx, keywords, maxChunksPerHit)
			if err != nil {
				s.log.Warn("document chunk search failed", logger.ErrorField(err))
			} else if len(chunks) > 0 && s.aiRepo != nil {
				answer, err := s.aiRepo.GenerateResponse(ctx, repository.BuildDocumentAnswerPrompt(message, chunks))
				if err == nil && answer != "" {
					return answer
				}
				if err != nil {
					s.log.Warn("document-grounded answer failed", logger.ErrorField(err))
				}
			}
		}
	}

	return s.AnswerEducational(ctx, message)
}

func (s *qaService) AnswerEducational(ctx context.Context, message string) string {
	if s.aiRepo == nil {
		return qaFallbackResponse
	}

	answer, err := s.aiRepo.GenerateResponse(ctx, repository.BuildFinanceQAPrompt(message, ""))
	if err != nil || answer == "" {
		if err != nil {
			s.log.Warn("generative answer failed", logger.ErrorField(err))
		}
		return qaFallbackResponse
	}
	return answer
}

func (s *qaService) AddDocument(ctx context.Context, fileName, title, content string) error {
	if s.docRepo == nil {
		return errs.ErrDataUnavailable
	}

	doc := &entity.Document{
		FileName: fileName,
		Title:    title,
	}

	for seq, part := range splitChunks(content, chunkSize) {
		doc.Chunks = append(doc.Chunks, entity.DocumentChunk{
			Seq:      seq,
			Content:  part,
			Keywords: pq.StringArray(ExtractKeywords(part, maxChunkKeywords)),
		})
	}

	return s.docRepo.Create(ctx, doc)
}

func (s *qaService) SeedFromDir(ctx context.Context, dir string) error {
	if s.docRepo == nil {
		return errs.ErrDataUnavailable
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" {
			continue
		}

		exists, err := s.docRepo.ExistsByFileName(ctx, entry.Name())
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			s.log.Warn("seed document unreadable",
				logger.StringField("file", entry.Name()), logger.ErrorField(err))
			continue
		}

		title := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if err := s.AddDocument(ctx, entry.Name(), title, string(raw)); err != nil {
			return err
		}
		s.log.Info("seed document ingested", logger.StringField("file", entry.Name()))
	}
	return nil
}

// splitChunks breaks text into pieces of roughly limit runes, preferring
// paragraph boundaries so retrieved chunks stay readable.
func splitChunks(text string, limit int) []string {
	var chunks []string
	var current strings.Builder

	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		if current.Len() > 0 && current.Len()+len(paragraph) > limit {
			chunks = append(chunks, current.String())
			current.Reset()
		}

		// Oversized paragraphs are split on rune boundaries.
		for len(paragraph) > limit {
			runes := []rune(paragraph)
			cut := limit
			if cut > len(runes) {
				cut = len(runes)
			}
			chunks = append(chunks, string(runes[:cut]))
			paragraph = string(runes[cut:])
		}
		if paragraph == "" {
			continue
		}

		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(paragraph)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}

var keywordRe = regexp.MustCompile(`[\p{L}]{4,}`)

// Common Turkish function words excluded from keyword indexes.
var stopwords = map[string]bool{
	"için": true, "gibi": true, "daha": true, "çok": true, "olarak": true,
	"olan": true, "ancak": true, "veya": true, "kadar": true, "sonra": true,
	"önce": true, "bütün": true, "nedir": true, "nasıl": true, "hangi": true,
	"ile": true, "anda": true, "olur": true, "oldu": true, "midir": true,
}

// ExtractKeywords returns the distinct lower-cased words of four or more
// letters, in first-occurrence order, up to the limit.
func ExtractKeywords(text string, limit int) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, word := range keywordRe.FindAllString(strings.ToLower(text), -1) {
		if stopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == limit {
			break
		}
	}
	return keywords
}
