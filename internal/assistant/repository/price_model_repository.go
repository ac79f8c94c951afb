package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"kchol-assistant/internal/assistant/errs"
	"kchol-assistant/pkg/logger"
)

// FeatureOrder is the fixed model input vector layout. The exported model
// artifact was trained against exactly this column ordering.
var FeatureOrder = []string{
	"close", "high", "low", "open", "volume",
	"SMA200", "RSI", "ATR", "BBWidth", "Williams",
}

// modelArtifact is the exported regression model file layout.
type modelArtifact struct {
	Features     []string  `json:"features"`
	Intercept    float64   `json:"intercept"`
	Coefficients []float64 `json:"coefficients"`
}

type priceModelRepository struct {
	log      *logger.Logger
	path     string
	artifact *modelArtifact
}

// NewPriceModelRepository loads the exported next-day close regression model
// from a JSON artifact. A load failure is recorded, not fatal: Predict then
// fails with ErrModelUnavailable on every call, matching the per-request
// model check in the chat flow.
func NewPriceModelRepository(path string, log *logger.Logger) PriceModelRepository {
	repo := &priceModelRepository{log: log, path: path}
	artifact, err := loadArtifact(path)
	if err != nil {
		log.Error("Failed to load prediction model", logger.ErrorField(err), logger.StringField("path", path))
		return repo
	}
	repo.artifact = artifact
	return repo
}

func loadArtifact(path string) (*modelArtifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal model file: %w", err)
	}

	if len(artifact.Coefficients) != len(FeatureOrder) {
		return nil, fmt.Errorf("model has %d coefficients, expected %d",
			len(artifact.Coefficients), len(FeatureOrder))
	}
	return &artifact, nil
}

func (r *priceModelRepository) Predict(features []float64) (float64, error) {
	if r.artifact == nil {
		return 0, errs.ErrModelUnavailable
	}
	if len(features) < len(r.artifact.Coefficients) {
		return 0, &errs.MissingFeaturesError{Features: FeatureOrder[len(features):]}
	}
	if len(features) > len(r.artifact.Coefficients) {
		return 0, fmt.Errorf("expected %d features, got %d", len(r.artifact.Coefficients), len(features))
	}

	prediction := r.artifact.Intercept
	for i, f := range features {
		prediction += r.artifact.Coefficients[i] * f
	}
	return prediction, nil
}
