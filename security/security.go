package security

import (
	"errors"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// SecurityService sanitizes user-supplied market text before it is
// stored or echoed back.
type SecurityService struct {
	strict *bluemonday.Policy
}

func NewSecurityService() *SecurityService {
	return &SecurityService{
		strict: bluemonday.StrictPolicy(),
	}
}

// MarketInput is the user-supplied text of a market
type MarketInput struct {
	Question    string
	Description string
	Category    string
}

var ErrEmptyQuestion = errors.New("market question is empty after sanitization")

// ValidateAndSanitizeMarketInput strips all markup from the question
// and category and removes scriptable content from the description.
// Markdown in the description survives; it is rendered separately.
func (s *SecurityService) ValidateAndSanitizeMarketInput(input MarketInput) (MarketInput, error) {
	out := MarketInput{
		Question:    strings.TrimSpace(s.strict.Sanitize(input.Question)),
		Description: strings.TrimSpace(s.strict.Sanitize(input.Description)),
		Category:    strings.TrimSpace(s.strict.Sanitize(input.Category)),
	}
	if out.Question == "" {
		return MarketInput{}, ErrEmptyQuestion
	}
	return out, nil
}

// SanitizeOptionLabels strips markup from option labels, dropping any
// label that sanitizes to empty
func (s *SecurityService) SanitizeOptionLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		clean := strings.TrimSpace(s.strict.Sanitize(l))
		if clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
