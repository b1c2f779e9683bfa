package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeStripsScript(t *testing.T) {
	s := NewSecurityService()

	out, err := s.ValidateAndSanitizeMarketInput(MarketInput{
		Question:    `Will <script>alert("x")</script>it rain?`,
		Description: `<img src=x onerror=alert(1)>Resolution details`,
		Category:    "<b>sports</b>",
	})
	require.NoError(t, err)
	assert.NotContains(t, out.Question, "<script>")
	assert.NotContains(t, out.Description, "onerror")
	assert.Equal(t, "sports", out.Category)
}

func TestSanitizeRejectsEmptyQuestion(t *testing.T) {
	s := NewSecurityService()

	_, err := s.ValidateAndSanitizeMarketInput(MarketInput{
		Question: "<script>only markup</script>",
	})
	assert.ErrorIs(t, err, ErrEmptyQuestion)
}

func TestSanitizeOptionLabels(t *testing.T) {
	s := NewSecurityService()

	labels := s.SanitizeOptionLabels([]string{"<b>Yes</b>", "No", "<script></script>", "  "})
	assert.Equal(t, []string{"Yes", "No"}, labels)
}
