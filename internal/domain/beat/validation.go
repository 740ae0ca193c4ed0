package beat

import (
	"fmt"
	"strings"
)

// ValidateCreateInput validates fields required to create a beat.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.AudioURL) == "" {
		return fmt.Errorf("%w: audio_url is required", ErrInvalidInput)
	}
	if req.Duration != nil && *req.Duration < 0 {
		return fmt.Errorf("%w: duration must be non-negative", ErrInvalidInput)
	}
	return nil
}

// ValidateUpdateInput validates a partial update.
func ValidateUpdateInput(req UpdateRequest) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}
	if req.AudioURL != nil && strings.TrimSpace(*req.AudioURL) == "" {
		return fmt.Errorf("%w: audio_url cannot be empty", ErrInvalidInput)
	}
	if req.Duration != nil && *req.Duration < 0 {
		return fmt.Errorf("%w: duration must be non-negative", ErrInvalidInput)
	}
	return nil
}
