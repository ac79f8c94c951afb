package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the assistant's failure taxonomy. Router branches are
// expected to translate these into user-visible Turkish messages.
var (
	// ErrDataUnavailable means market data came back empty or unreachable.
	ErrDataUnavailable = errors.New("market data unavailable")

	// ErrInsufficientData means too few rows remain after indicator lookbacks.
	ErrInsufficientData = errors.New("insufficient data for indicators")

	// ErrModelUnavailable means the prediction model failed to load.
	ErrModelUnavailable = errors.New("prediction model unavailable")

	// ErrDateResolution means a simulation date expression could not be parsed.
	ErrDateResolution = errors.New("date expression could not be resolved")

	// ErrSessionNotFound means the requested chat session does not exist.
	ErrSessionNotFound = errors.New("session not found")
)

// MissingFeaturesError reports which model input columns are absent.
type MissingFeaturesError struct {
	Features []string
}

func (e *MissingFeaturesError) Error() string {
	return fmt.Sprintf("missing features: %s", strings.Join(e.Features, ", "))
}

// ExternalServiceError reports a non-success response from an external API.
type ExternalServiceError struct {
	Service string
	Status  int
	Message string
}

func (e *ExternalServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Status, e.Message)
	}
	return fmt.Sprintf("%s returned status %d", e.Service, e.Status)
}
