package project

import (
	"fmt"
	"strings"
)

// ValidateCreateInput validates fields required to create a project.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrInvalidInput)
	}
	if req.Status != "" && !req.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	return nil
}

// ValidateUpdateInput validates a partial update. Only supplied fields are checked.
func ValidateUpdateInput(req UpdateRequest) error {
	if req.ID <= 0 {
		return fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
	}
	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return fmt.Errorf("%w: description cannot be empty", ErrInvalidInput)
	}
	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}
	return nil
}
