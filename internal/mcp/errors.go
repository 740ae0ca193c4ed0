package mcp

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/rpggio/portfolio/internal/domain/beat"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/domain/setting"
)

// APIError is the error surfaced to MCP clients as a tool error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to client-facing codes. Store failures are
// logged and reported without detail.
func MapError(logger *slog.Logger, tool string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrInvalidInput),
		errors.Is(err, beat.ErrInvalidInput),
		errors.Is(err, setting.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, beat.ErrBeatNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error()}
	default:
		logger.Error("mcp tool failed", "tool", tool, "error", err)
		return &APIError{Code: "INTERNAL", Message: tool + " failed"}
	}
}
