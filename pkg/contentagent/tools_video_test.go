package contentagent

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runVideoTool(t *testing.T, toolCtx toolContext, argText string) (toolResponse, videoResult) {
	t.Helper()
	adapter := &generateVideoTool{ctx: toolCtx}
	raw, err := adapter.execute(argText)
	require.NoError(t, err)

	envelope, data := decodeEnvelope(t, raw)
	var result videoResult
	if envelope.OK {
		require.NoError(t, json.Unmarshal(data, &result))
	}
	return envelope, result
}

func TestGenerateVideoHappyPath(t *testing.T) {
	toolCtx := newTestToolContext(t)
	video := &fakeVideoBackend{
		job:     videoJob{ID: "vid_1", URL: "https://example.com/vid_1"},
		content: []byte("mp4-bytes"),
	}
	toolCtx.Video = video

	envelope, result := runVideoTool(t, toolCtx, `{"prompt":"product launch","aspect_ratio":"9:16","seconds":20}`)
	require.True(t, envelope.OK, envelope.Err)

	assert.Equal(t, "vid_1", result.ID)
	assert.Equal(t, "9:16", result.AspectRatio)
	assert.Equal(t, "1080x1920", result.Resolution)
	assert.Equal(t, 20, result.Duration)
	assert.Empty(t, result.DownloadError)
	assert.NotEmpty(t, result.ArtifactID)

	saved, err := os.ReadFile(result.LocalPath)
	require.NoError(t, err)
	assert.Equal(t, "mp4-bytes", string(saved))

	assert.Equal(t, "1080x1920", video.lastSize)
	assert.Equal(t, 20, video.lastSeconds)
}

func TestGenerateVideoPlatformOverridesRatio(t *testing.T) {
	toolCtx := newTestToolContext(t)
	video := &fakeVideoBackend{job: videoJob{ID: "vid_1"}, content: []byte("x")}
	toolCtx.Video = video

	// The platform's recommended ratio wins over the explicit one.
	envelope, result := runVideoTool(t, toolCtx, `{"prompt":"p","platform":"instagram","aspect_ratio":"16:9"}`)
	require.True(t, envelope.OK, envelope.Err)
	assert.Equal(t, "1:1", result.AspectRatio)
	assert.Equal(t, "1080x1080", result.Resolution)
}

func TestGenerateVideoUnknownRatioFallsBack(t *testing.T) {
	toolCtx := newTestToolContext(t)
	toolCtx.Video = &fakeVideoBackend{job: videoJob{ID: "vid_1"}, content: []byte("x")}

	envelope, result := runVideoTool(t, toolCtx, `{"prompt":"p","aspect_ratio":"21:9"}`)
	require.True(t, envelope.OK, envelope.Err)
	assert.Equal(t, "16:9", result.AspectRatio)
	assert.Equal(t, "1920x1080", result.Resolution)
}

func TestGenerateVideoSecondsOutOfRange(t *testing.T) {
	toolCtx := newTestToolContext(t)
	video := &fakeVideoBackend{job: videoJob{ID: "vid_1"}, content: []byte("x")}
	toolCtx.Video = video

	envelope, result := runVideoTool(t, toolCtx, `{"prompt":"p","seconds":300}`)
	require.True(t, envelope.OK, envelope.Err)
	assert.Equal(t, 10, result.Duration)
	assert.Equal(t, 10, video.lastSeconds)
}

func TestGenerateVideoEnhancesPrompt(t *testing.T) {
	toolCtx := newTestToolContext(t)
	video := &fakeVideoBackend{job: videoJob{ID: "vid_1"}, content: []byte("x")}
	toolCtx.Video = video

	envelope, _ := runVideoTool(t, toolCtx, `{"prompt":"team offsite recap","platform":"linkedin"}`)
	require.True(t, envelope.OK, envelope.Err)

	assert.Contains(t, video.lastPrompt, "USER REQUEST: team offsite recap")
	assert.Contains(t, video.lastPrompt, platformStyleHints["linkedin"])
	assert.Contains(t, video.lastPrompt, "DESIGN RULES:")
	assert.Contains(t, video.lastPrompt, "CONTENT POLICY:")
}

func TestGenerateVideoDownloadFailureKeepsJob(t *testing.T) {
	toolCtx := newTestToolContext(t)
	toolCtx.Video = &fakeVideoBackend{
		job:         videoJob{ID: "vid_1", URL: "https://example.com/vid_1"},
		downloadErr: errors.New("content not ready"),
	}

	envelope, result := runVideoTool(t, toolCtx, `{"prompt":"p"}`)
	require.True(t, envelope.OK, envelope.Err)
	assert.Equal(t, "vid_1", result.ID)
	assert.Contains(t, result.DownloadError, "content not ready")
	assert.Empty(t, result.LocalPath)
}

func TestGenerateVideoGenerationFailure(t *testing.T) {
	toolCtx := newTestToolContext(t)
	toolCtx.Video = &fakeVideoBackend{genErr: errors.New("capacity")}

	envelope, _ := runVideoTool(t, toolCtx, `{"prompt":"p"}`)
	assert.False(t, envelope.OK)
	assert.Equal(t, string(KindTransport), envelope.Kind)
}

func TestGenerateVideoRequiresPrompt(t *testing.T) {
	envelope, _ := runVideoTool(t, newTestToolContext(t), `{}`)
	assert.False(t, envelope.OK)
	assert.Equal(t, string(KindValidation), envelope.Kind)
}
