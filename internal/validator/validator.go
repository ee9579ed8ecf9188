package validator

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/kimbugp/ah-haven-space-sprinters/internal/domain"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 500
)

// Validator provides validation methods for article payloads.
type Validator struct{}

// NewValidator creates a new Validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateCreate validates an article creation payload. Failures come back as
// validation.Errors, a field to message mapping that marshals directly into
// the 400 response body.
func (v *Validator) ValidateCreate(p *domain.ArticleCreate) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, maxTitleLength).Error("title must be at most 255 characters"),
		),
		validation.Field(&p.Description,
			validation.Required.Error("description is required"),
			validation.Length(1, maxDescriptionLength).Error("description must be at most 500 characters"),
		),
		validation.Field(&p.Body,
			validation.Required.Error("body is required"),
		),
	)
}

// ValidatePatch validates a partial update. Absent fields are fine; present
// fields must satisfy the same rules as on creation.
func (v *Validator) ValidatePatch(p *domain.ArticlePatch) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title,
			validation.NilOrNotEmpty.Error("title must not be empty"),
			validation.Length(1, maxTitleLength).Error("title must be at most 255 characters"),
		),
		validation.Field(&p.Description,
			validation.NilOrNotEmpty.Error("description must not be empty"),
			validation.Length(1, maxDescriptionLength).Error("description must be at most 500 characters"),
		),
		validation.Field(&p.Body,
			validation.NilOrNotEmpty.Error("body must not be empty"),
		),
	)
}

// FieldErrors converts a validation error into the field to message map the
// API returns. Non-validation errors collapse into a single "detail" entry.
func FieldErrors(err error) map[string]string {
	out := map[string]string{}
	if ve, ok := err.(validation.Errors); ok {
		for field, fieldErr := range ve {
			out[field] = fieldErr.Error()
		}
		return out
	}
	if err != nil {
		out["detail"] = err.Error()
	}
	return out
}
