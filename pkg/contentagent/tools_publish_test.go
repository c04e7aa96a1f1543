package contentagent

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempContent(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "post.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))
	return path
}

func runPublishTool(t *testing.T, toolCtx toolContext, argText string) toolResponse {
	t.Helper()
	adapter := &publishTool{ctx: toolCtx}
	raw, err := adapter.execute(argText)
	require.NoError(t, err)
	envelope, _ := decodeEnvelope(t, raw)
	return envelope
}

func TestPublishInvalidPlatform(t *testing.T) {
	envelope := runPublishTool(t, newTestToolContext(t),
		`{"platform":"myspace","content_path":"x.png","caption_prompt":"launch"}`)
	assert.False(t, envelope.OK)
	assert.Equal(t, string(KindValidation), envelope.Kind)
	assert.Contains(t, envelope.Err, "invalid platform")
}

func TestPublishRequiresCaptionPrompt(t *testing.T) {
	envelope := runPublishTool(t, newTestToolContext(t),
		`{"platform":"linkedin","content_path":"x.png"}`)
	assert.False(t, envelope.OK)
	assert.Equal(t, string(KindValidation), envelope.Kind)
}

func TestPublishMissingFileWithoutArtifacts(t *testing.T) {
	envelope := runPublishTool(t, newTestToolContext(t),
		`{"platform":"linkedin","content_path":"/does/not/exist.png","caption_prompt":"launch"}`)
	assert.False(t, envelope.OK)
	assert.Equal(t, string(KindValidation), envelope.Kind)
	assert.Contains(t, envelope.Err, "file not found")
}

func TestPublishMissingLinkedInCredentials(t *testing.T) {
	toolCtx := newTestToolContext(t)
	path := writeTempContent(t)

	envelope := runPublishTool(t, toolCtx,
		`{"platform":"linkedin","content_path":"`+path+`","caption_prompt":"launch"}`)
	assert.False(t, envelope.OK)
	assert.Equal(t, string(KindCredential), envelope.Kind)
	assert.Contains(t, envelope.Err, "LINKEDIN_ACCESS_TOKEN")
}

func TestPublishMissingLinkedInURN(t *testing.T) {
	toolCtx := newTestToolContext(t)
	toolCtx.Creds.LinkedInAccessToken = "token"
	path := writeTempContent(t)

	envelope := runPublishTool(t, toolCtx,
		`{"platform":"linkedin","content_path":"`+path+`","caption_prompt":"launch"}`)
	assert.False(t, envelope.OK)
	assert.Equal(t, string(KindCredential), envelope.Kind)
	assert.Contains(t, envelope.Err, "LINKEDIN_URN")
}

func TestPublishMissingMetaCredentials(t *testing.T) {
	toolCtx := newTestToolContext(t)
	path := writeTempContent(t)

	envelope := runPublishTool(t, toolCtx,
		`{"platform":"facebook","content_path":"`+path+`","caption_prompt":"launch"}`)
	assert.False(t, envelope.OK)
	assert.Equal(t, string(KindCredential), envelope.Kind)
	assert.Contains(t, envelope.Err, "META_ACCESS_TOKEN")
}

func TestPublishMissingInstagramUserID(t *testing.T) {
	toolCtx := newTestToolContext(t)
	toolCtx.Creds.MetaAccessToken = "token"
	toolCtx.Creds.FacebookPageID = "page"
	path := writeTempContent(t)

	envelope := runPublishTool(t, toolCtx,
		`{"platform":"instagram","content_path":"`+path+`","caption_prompt":"launch"}`)
	assert.False(t, envelope.OK)
	assert.Equal(t, string(KindCredential), envelope.Kind)
	assert.Contains(t, envelope.Err, "IG_USER_ID")
}

func TestPublishInstagramVideoUnsupported(t *testing.T) {
	toolCtx := newTestToolContext(t)
	path := writeTempContent(t)

	envelope := runPublishTool(t, toolCtx,
		`{"platform":"instagram","content_path":"`+path+`","caption_prompt":"launch","content_type":"video"}`)
	assert.False(t, envelope.OK)
	assert.Equal(t, string(KindValidation), envelope.Kind)
	assert.Contains(t, envelope.Err, "not supported")
}

func TestResolveContentPathFallsBackToLatestArtifact(t *testing.T) {
	toolCtx := newTestToolContext(t)
	artifact, err := toolCtx.Artifacts.Save(ArtifactImage, "", ".png", "", []byte("img"))
	require.NoError(t, err)

	adapter := &publishTool{ctx: toolCtx}
	path, resolveErr := adapter.resolveContentPath("/gone/away.png", "image")
	require.NoError(t, resolveErr)
	assert.Equal(t, artifact.Path, path)
}

func TestResolveContentPathPrefersExistingFile(t *testing.T) {
	toolCtx := newTestToolContext(t)
	_, err := toolCtx.Artifacts.Save(ArtifactImage, "", ".png", "", []byte("img"))
	require.NoError(t, err)
	explicit := writeTempContent(t)

	adapter := &publishTool{ctx: toolCtx}
	path, resolveErr := adapter.resolveContentPath(explicit, "image")
	require.NoError(t, resolveErr)
	assert.Equal(t, explicit, path)
}

func TestPublishCaptionUsesLinkedInTone(t *testing.T) {
	toolCtx := newTestToolContext(t)
	text := &fakeTextBackend{reply: "caption"}
	toolCtx.Text = text

	adapter := &publishTool{ctx: toolCtx}
	_, err := adapter.generateCaption("linkedin", "new feature")
	require.NoError(t, err)
	_, err = adapter.generateCaption("facebook", "new feature")
	require.NoError(t, err)

	require.Len(t, text.requests, 2)
	assert.Contains(t, text.requests[0].System, "LinkedIn")
	assert.NotContains(t, text.requests[1].System, "LinkedIn")
	assert.Contains(t, text.requests[1].User, "new feature")
}
