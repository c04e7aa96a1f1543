package contentagent

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptionRuleFor(t *testing.T) {
	assert.Equal(t, 280, captionRuleFor("twitter").MaxLength)
	assert.Equal(t, "20-30", captionRuleFor("instagram").HashtagRange)

	// Platforms outside the table get the generic rule.
	rule := captionRuleFor("mastodon")
	assert.Equal(t, genericCaptionRule, rule)
	assert.Equal(t, 2200, rule.MaxLength)
	assert.Equal(t, "3-5", rule.HashtagRange)
}

func TestGenerateCaption(t *testing.T) {
	toolCtx := newTestToolContext(t)
	text := &fakeTextBackend{reply: "  Big news! #launch  "}
	toolCtx.Text = text

	adapter := &generateCaptionTool{ctx: toolCtx}
	raw, err := adapter.execute(`{"content_description":"product launch","platform":"linkedin","style":"casual"}`)
	require.NoError(t, err)

	envelope, data := decodeEnvelope(t, raw)
	require.True(t, envelope.OK, envelope.Err)

	var result captionResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, "linkedin", result.Platform)
	assert.Equal(t, "casual", result.Style)
	assert.Equal(t, "Big news! #launch", result.Caption)
	assert.Equal(t, 3000, result.MaxLength)
	assert.Equal(t, "3-5", result.HashtagRange)

	require.Len(t, text.requests, 1)
	req := text.requests[0]
	assert.Contains(t, req.System, "specializing in linkedin")
	assert.Contains(t, req.System, "3-5 relevant, trending hashtags")
	assert.Contains(t, req.User, "product launch")
	assert.InDelta(t, 0.8, req.Temperature, 0.001)
}

func TestGenerateCaptionDefaultsPlatformAndStyle(t *testing.T) {
	toolCtx := newTestToolContext(t)
	text := &fakeTextBackend{reply: "caption"}
	toolCtx.Text = text

	adapter := &generateCaptionTool{ctx: toolCtx}
	raw, err := adapter.execute(`{"content_description":"d","style":"dramatic"}`)
	require.NoError(t, err)

	envelope, data := decodeEnvelope(t, raw)
	require.True(t, envelope.OK, envelope.Err)

	var result captionResult
	require.NoError(t, json.Unmarshal(data, &result))
	// Platform falls back to the first configured target, style to the
	// configured default.
	assert.Equal(t, "linkedin", result.Platform)
	assert.Equal(t, "professional", result.Style)
}

func TestGenerateCaptionDisableHashtagsAndEmojis(t *testing.T) {
	toolCtx := newTestToolContext(t)
	text := &fakeTextBackend{reply: "caption"}
	toolCtx.Text = text

	adapter := &generateCaptionTool{ctx: toolCtx}
	_, err := adapter.execute(`{"content_description":"d","include_hashtags":false,"include_emojis":false}`)
	require.NoError(t, err)

	require.Len(t, text.requests, 1)
	assert.Contains(t, text.requests[0].System, "Do NOT include hashtags")
	assert.Contains(t, text.requests[0].System, "Do NOT include emojis")
}

func TestGenerateCaptionRequiresDescription(t *testing.T) {
	adapter := &generateCaptionTool{ctx: newTestToolContext(t)}
	raw, err := adapter.execute(`{"platform":"linkedin"}`)
	require.NoError(t, err)

	envelope, _ := decodeEnvelope(t, raw)
	assert.False(t, envelope.OK)
	assert.Equal(t, string(KindValidation), envelope.Kind)
}

func TestGenerateCaptionBackendFailure(t *testing.T) {
	toolCtx := newTestToolContext(t)
	toolCtx.Text = &fakeTextBackend{err: errors.New("overloaded")}

	adapter := &generateCaptionTool{ctx: toolCtx}
	raw, err := adapter.execute(`{"content_description":"d"}`)
	require.NoError(t, err)

	envelope, _ := decodeEnvelope(t, raw)
	assert.False(t, envelope.OK)
	assert.Equal(t, string(KindTransport), envelope.Kind)
}
