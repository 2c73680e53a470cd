package validators

import (
	"strings"
	"unicode/utf8"

	"forzeit/pkg/errors"
)

// Card input rules
const (
	CardTitleMaxLength = 200
)

// CardValidator validates card-related domain rules
type CardValidator struct {
	titleMaxLength int
}

// NewCardValidator creates a new card validator with default rules
func NewCardValidator() *CardValidator {
	return &CardValidator{
		titleMaxLength: CardTitleMaxLength,
	}
}

// ValidateNewCard checks the title and estimate of a card about to be created.
// Rules are applied in a fixed order and the first failure is returned.
func (v *CardValidator) ValidateNewCard(title string, minutes int) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return errors.NewValidationError("Card title cannot be empty").
			WithDetails(map[string]interface{}{"field": "title"})
	}

	if minutes < 0 {
		return errors.NewValidationError("Minutes cannot be negative").
			WithDetails(map[string]interface{}{"field": "minutes", "value": minutes})
	}

	if length := utf8.RuneCountInString(trimmed); length > v.titleMaxLength {
		return errors.NewValidationError("Card title is too long (max 200 characters)").
			WithDetails(map[string]interface{}{
				"field":         "title",
				"actual_length": length,
				"max_length":    v.titleMaxLength,
			})
	}

	return nil
}

// NormalizeTitle returns the title as it is stored
func (v *CardValidator) NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}
