// generate_image adapter.
package contentagent

import (
	"github.com/openai/openai-go"
	"go.uber.org/zap"
)

// generateImageTool wraps the hosted image generation endpoint.
type generateImageTool struct {
	ctx toolContext
}

func (t *generateImageTool) name() string {
	return "generate_image"
}

func (t *generateImageTool) definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name: "generate_image",
			Description: openai.String("Generate an image from a text prompt and save it locally. " +
				"Be specific about style, colors, composition, and mood for best results."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"prompt": map[string]any{
						"type":        "string",
						"description": "Detailed description of the image to generate",
					},
					"size": map[string]any{
						"type":        "string",
						"enum":        validImageSizes,
						"description": "Image dimensions; defaults to the configured size",
					},
					"quality": map[string]any{
						"type":        "string",
						"enum":        validImageQualities,
						"description": "Image quality; defaults to the configured quality",
					},
					"platform": map[string]any{
						"type":        "string",
						"description": "Target platform, used as a style hint",
					},
				},
				"required": []string{"prompt"},
			},
		},
	}
}

type imageResult struct {
	URL           string `json:"url"`
	LocalPath     string `json:"local_path"`
	RevisedPrompt string `json:"revised_prompt,omitempty"`
	Size          string `json:"size"`
	Quality       string `json:"quality"`
	ArtifactID    string `json:"artifact_id"`
}

func (t *generateImageTool) execute(argText string) (string, error) {
	var args struct {
		Prompt   string `json:"prompt"`
		Size     string `json:"size"`
		Quality  string `json:"quality"`
		Platform string `json:"platform"`
	}
	if err := parseToolArgs(t.name(), argText, &args); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}
	if err := requireString(t.name(), "prompt", args.Prompt); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}

	// Out-of-set values fall back to the configured defaults, never to the
	// external call.
	cfg := t.ctx.Store.Get()
	size := pickAllowed(args.Size, validImageSizes, cfg.ImageSize)
	quality := pickAllowed(args.Quality, validImageQualities, cfg.ImageQuality)

	if t.ctx.Logger != nil {
		t.ctx.Logger.Debug("generating image",
			zap.String("size", size),
			zap.String("quality", quality),
			zap.String("platform", args.Platform),
		)
	}

	generated, err := t.ctx.Images.Generate(t.ctx.Ctx, args.Prompt, size, quality)
	if err != nil {
		return marshalToolResponse(t.name(), nil, transportError(err, "image generation failed"))
	}

	data, err := downloadURL(t.ctx.Ctx, t.ctx.HTTPClient, generated.URL)
	if err != nil {
		return marshalToolResponse(t.name(), nil, transportError(err, "image download failed"))
	}

	artifact, err := t.ctx.Artifacts.Save(ArtifactImage, "", ".png", generated.URL, data)
	if err != nil {
		return marshalToolResponse(t.name(), nil, transportError(err, "image save failed"))
	}

	return marshalToolResponse(t.name(), imageResult{
		URL:           generated.URL,
		LocalPath:     artifact.Path,
		RevisedPrompt: generated.RevisedPrompt,
		Size:          size,
		Quality:       quality,
		ArtifactID:    artifact.ID,
	}, nil)
}
