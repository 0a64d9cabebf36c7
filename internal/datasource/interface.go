package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/gridiron-edge/internal/models"
)

// GameDataSource defines the interface for fetching game-level data
// from external providers.
type GameDataSource interface {
	// FetchGames retrieves completed games with per-side EPA
	// aggregates for one season.
	FetchGames(ctx context.Context, season int) ([]models.Game, error)

	// FetchPassLogs retrieves per-game QB passing logs for one
	// season. Sources without passer-level detail return an empty
	// slice and no error.
	FetchPassLogs(ctx context.Context, season int) ([]models.PassLog, error)

	// Name returns the name of the data source
	Name() string

	// IsEnabled returns whether this data source is currently enabled
	IsEnabled() bool
}

// SourceError represents errors from data source operations
type SourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e SourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
	ErrCodeDisabled          = "source_disabled"
)

var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrSourceDisabled    = errors.New("data source disabled")
	ErrInvalidData       = errors.New("invalid data format")
)

// NewSourceError creates a new data source error
func NewSourceError(source, code, message string, err error) SourceError {
	return SourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
