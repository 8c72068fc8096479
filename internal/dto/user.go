package dto

import (
	"github.com/mwhitfield/pocketbook-backend/internal/errs"
)

type RegisterUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

func (r RegisterUserRequest) Validate() error {
	if r.Email == "" {
		return errs.NewValidationError("email is required")
	}
	if r.Name == "" {
		return errs.NewValidationError("name is required")
	}
	return nil
}

type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	PhotoURL *string `json:"photoUrl,omitempty"`
}

func (r UpdateUserRequest) Validate() error {
	if r.Name != nil && *r.Name == "" {
		return errs.NewValidationError("name must not be empty")
	}
	if r.Name == nil && r.PhotoURL == nil {
		return errs.NewValidationError("no updatable fields provided")
	}
	return nil
}
