// Shared fakes for adapter tests.
package contentagent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeImageBackend records the last call and returns a canned result.
type fakeImageBackend struct {
	lastPrompt  string
	lastSize    string
	lastQuality string
	result      generatedImage
	err         error
}

func (f *fakeImageBackend) Generate(_ context.Context, prompt, size, quality string) (generatedImage, error) {
	f.lastPrompt = prompt
	f.lastSize = size
	f.lastQuality = quality
	return f.result, f.err
}

// fakeTextBackend records requests and replies with a fixed completion.
type fakeTextBackend struct {
	requests []textRequest
	reply    string
	err      error
}

func (f *fakeTextBackend) Complete(_ context.Context, req textRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

// fakeVideoBackend records generation parameters and serves fixed bytes.
type fakeVideoBackend struct {
	lastPrompt  string
	lastSize    string
	lastSeconds int
	job         videoJob
	genErr      error
	content     []byte
	downloadErr error
}

func (f *fakeVideoBackend) Generate(_ context.Context, prompt, size string, seconds int) (videoJob, error) {
	f.lastPrompt = prompt
	f.lastSize = size
	f.lastSeconds = seconds
	return f.job, f.genErr
}

func (f *fakeVideoBackend) Download(_ context.Context, _ string) ([]byte, error) {
	return f.content, f.downloadErr
}

// newTestToolContext wires a toolContext against fakes and a temp output dir.
func newTestToolContext(t *testing.T) toolContext {
	t.Helper()
	return toolContext{
		Ctx:        context.Background(),
		Logger:     zap.NewNop(),
		Store:      NewConfigStore(),
		Artifacts:  NewArtifactStore(t.TempDir()),
		Guidelines: NewGuidelines(""),
		Images:     &fakeImageBackend{},
		Text:       &fakeTextBackend{reply: "generated text"},
		Video:      &fakeVideoBackend{},
	}
}

// decodeEnvelope unmarshals a tool response for assertions.
func decodeEnvelope(t *testing.T, raw string) (toolResponse, json.RawMessage) {
	t.Helper()
	var envelope struct {
		OK   bool            `json:"ok"`
		Tool string          `json:"tool"`
		Kind string          `json:"kind"`
		Data json.RawMessage `json:"data"`
		Err  string          `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &envelope))
	return toolResponse{
		OK:   envelope.OK,
		Tool: envelope.Tool,
		Kind: envelope.Kind,
		Err:  envelope.Err,
	}, envelope.Data
}
