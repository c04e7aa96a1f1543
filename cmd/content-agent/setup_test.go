package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soracraft/content-agent-go/pkg/contentagent"
)

func TestPromptGenerationConfigAcceptsDefaults(t *testing.T) {
	// Blank answers keep every default.
	in := strings.NewReader(strings.Repeat("\n", 10))
	var out bytes.Buffer

	cfg := promptGenerationConfig(in, &out, contentagent.DefaultGenerationConfig())
	assert.Equal(t, contentagent.DefaultGenerationConfig(), cfg)
	assert.Contains(t, out.String(), "Configuration saved!")
}

func TestPromptGenerationConfigAppliesAnswers(t *testing.T) {
	answers := strings.Join([]string{
		"instagram, facebook", // platforms
		"30",                  // duration
		"9:16",                // aspect ratio
		"1792x1024",           // image size
		"yes",                 // captions
		"casual",              // caption style
		"no",                  // compliance
		"yes",                 // auto-publish
	}, "\n") + "\n"
	var out bytes.Buffer

	cfg := promptGenerationConfig(strings.NewReader(answers), &out, contentagent.DefaultGenerationConfig())
	assert.Equal(t, []string{"instagram", "facebook"}, cfg.TargetPlatforms)
	assert.Equal(t, 30, cfg.VideoDuration)
	assert.Equal(t, "9:16", cfg.VideoAspectRatio)
	assert.Equal(t, "1792x1024", cfg.ImageSize)
	assert.True(t, cfg.EnableCaptions)
	assert.Equal(t, "casual", cfg.CaptionStyle)
	assert.False(t, cfg.AutoCompliance)
	assert.True(t, cfg.AutoPublish)
	require.NoError(t, cfg.Validate())
}

func TestPromptGenerationConfigCoercesInvalidInput(t *testing.T) {
	answers := strings.Join([]string{
		"myspace, friendster", // no valid platforms
		"500",                 // out of range
		"3:2",                 // unknown ratio
		"640x480",             // unknown size
		"yes",                 // captions
		"dramatic",            // unknown style
		"",                    // compliance default
		"",                    // auto-publish default
	}, "\n") + "\n"
	var out bytes.Buffer

	defaults := contentagent.DefaultGenerationConfig()
	cfg := promptGenerationConfig(strings.NewReader(answers), &out, defaults)

	// Every invalid answer is coerced back to the default.
	assert.Equal(t, defaults, cfg)
	require.NoError(t, cfg.Validate())
	assert.Contains(t, out.String(), "Invalid input. Using default.")
	assert.Contains(t, out.String(), "No valid platforms. Using default.")
}

func TestPromptGenerationConfigDisableCaptionsSkipsStyle(t *testing.T) {
	answers := strings.Join([]string{
		"",    // platforms
		"",    // duration
		"",    // aspect ratio
		"",    // image size
		"no",  // captions off
		"yes", // compliance (style question is skipped)
		"no",  // auto-publish
	}, "\n") + "\n"
	var out bytes.Buffer

	cfg := promptGenerationConfig(strings.NewReader(answers), &out, contentagent.DefaultGenerationConfig())
	assert.False(t, cfg.EnableCaptions)
	assert.True(t, cfg.AutoCompliance)
	assert.False(t, cfg.AutoPublish)
}

func TestYesNoHelpers(t *testing.T) {
	assert.True(t, isNo("no"))
	assert.True(t, isNo("n"))
	assert.False(t, isNo(""))
	assert.False(t, isNo("yes"))

	assert.True(t, isYes("yes"))
	assert.True(t, isYes("y"))
	assert.False(t, isYes(""))
	assert.False(t, isYes("no"))
}
