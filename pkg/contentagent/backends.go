// Backend seams between adapters and the hosted generation APIs.
package contentagent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openai/openai-go"
)

// generatedImage is the result of one image generation call.
type generatedImage struct {
	URL           string
	RevisedPrompt string
}

// imageBackend generates one image from a prompt.
type imageBackend interface {
	Generate(ctx context.Context, prompt, size, quality string) (generatedImage, error)
}

// textRequest is one completion request for captions and compliance checks.
type textRequest struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// textBackend runs a single system+user completion and returns the text.
type textBackend interface {
	Complete(ctx context.Context, req textRequest) (string, error)
}

// videoJob is a finished video generation job.
type videoJob struct {
	ID  string
	URL string
}

// videoBackend creates a video job, waits for completion, and downloads the
// rendered content.
type videoBackend interface {
	Generate(ctx context.Context, prompt, size string, seconds int) (videoJob, error)
	Download(ctx context.Context, id string) ([]byte, error)
}

// openaiBackend implements the image and text backends over one client.
type openaiBackend struct {
	client openai.Client
	model  string
}

const (
	imageModel = openai.ImageModelDallE3

	callTimeout     = 90 * time.Second
	downloadTimeout = 60 * time.Second
)

func (b *openaiBackend) Generate(ctx context.Context, prompt, size, quality string) (generatedImage, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	res, err := b.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Model:   imageModel,
		Prompt:  prompt,
		Size:    openai.ImageGenerateParamsSize(size),
		Quality: openai.ImageGenerateParamsQuality(quality),
		N:       openai.Int(1),
	})
	if err != nil {
		return generatedImage{}, err
	}
	if len(res.Data) == 0 {
		return generatedImage{}, errors.New("image response contained no data")
	}
	return generatedImage{
		URL:           res.Data[0].URL,
		RevisedPrompt: res.Data[0].RevisedPrompt,
	}, nil
}

func (b *openaiBackend) Complete(ctx context.Context, req textRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	completion, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// downloadURL fetches a generated payload from its remote URL.
func downloadURL(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = &http.Client{Timeout: downloadTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("download returned status %d", res.StatusCode)
	}
	return io.ReadAll(res.Body)
}
