package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRenderTemplates(t *testing.T) {
	s := NewEmailService(Config{FrontendURL: "https://starclub.app"}, zap.NewNop())

	html, err := s.render("welcome", map[string]interface{}{"FullName": "Mary <Smith>", "FrontendURL": s.frontendURL, "Year": 2024})
	require.NoError(t, err)
	assert.Contains(t, html, "Hi Mary &lt;Smith&gt;")
	assert.Contains(t, html, "https://starclub.app/dashboard")

	html, err = s.render("tier_upgrade", map[string]interface{}{"FullName": "Mary", "Tier": "gold", "TotalStars": 25, "Year": 2024})
	require.NoError(t, err)
	assert.Contains(t, html, "<strong>gold</strong>")
	assert.Contains(t, html, "With 25 stars")
}

func TestSendWithoutAPIKeyIsNoop(t *testing.T) {
	s := NewEmailService(Config{}, zap.NewNop())
	assert.NoError(t, s.SendWelcomeEmail("mary@example.com", "Mary"))
	assert.NoError(t, s.SendTierUpgradeEmail("mary@example.com", "Mary", "silver", 10))
}
