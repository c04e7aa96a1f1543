package contentagent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSystemPromptReflectsConfig(t *testing.T) {
	cfg := DefaultGenerationConfig()
	cfg.TargetPlatforms = []string{"instagram", "facebook"}
	cfg.VideoAspectRatio = "9:16"
	cfg.VideoDuration = 15

	prompt := buildSystemPrompt(cfg)
	assert.Contains(t, prompt, "Target platforms: instagram, facebook")
	assert.Contains(t, prompt, "aspect ratio 9:16 (1080x1920)")
	assert.Contains(t, prompt, "seconds=15")
	assert.Contains(t, prompt, "check_policy_compliance AND check_design_compliance")
	assert.Contains(t, prompt, "Ask the user for confirmation before publishing.")
}

func TestBuildSystemPromptTogglesWorkflowSteps(t *testing.T) {
	cfg := DefaultGenerationConfig()
	cfg.AutoCompliance = false
	cfg.EnableCaptions = false
	cfg.AutoPublish = true

	prompt := buildSystemPrompt(cfg)
	assert.Contains(t, prompt, "Skip compliance checks unless the user asks.")
	assert.Contains(t, prompt, "Skip caption generation unless the user asks.")
	assert.Contains(t, prompt, "Automatically publish to: linkedin.")
}
