// generate_video adapter.
package contentagent

import (
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"go.uber.org/zap"
)

// platformStyleHints seed the enhanced prompt with a per-platform aesthetic.
var platformStyleHints = map[string]string{
	"linkedin":  "professional, corporate, polished business aesthetic",
	"instagram": "vibrant, dynamic, visually striking, social media optimized",
	"facebook":  "friendly, approachable, community-focused, engaging",
}

const genericStyleHint = "professional, high-quality"

// generateVideoTool wraps the asynchronous video generation endpoint.
type generateVideoTool struct {
	ctx toolContext
}

func (t *generateVideoTool) name() string {
	return "generate_video"
}

func (t *generateVideoTool) definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name: "generate_video",
			Description: openai.String("Generate a video from a text prompt, following brand guidelines, " +
				"and save it locally. If a platform is given its recommended aspect ratio is used."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"prompt": map[string]any{
						"type":        "string",
						"description": "Description of the video to generate",
					},
					"platform": map[string]any{
						"type":        "string",
						"enum":        AvailablePlatforms,
						"description": "Target platform; affects style and aspect ratio",
					},
					"aspect_ratio": map[string]any{
						"type":        "string",
						"enum":        SupportedAspectRatios(),
						"description": "Video aspect ratio; unknown values fall back to " + DefaultAspectRatio,
					},
					"seconds": map[string]any{
						"type":        "integer",
						"description": fmt.Sprintf("Video length in seconds (%d-%d)", minVideoDuration, maxVideoDuration),
					},
				},
				"required": []string{"prompt"},
			},
		},
	}
}

type videoResult struct {
	ID            string `json:"id"`
	URL           string `json:"url,omitempty"`
	LocalPath     string `json:"local_path,omitempty"`
	DownloadError string `json:"download_error,omitempty"`
	Platform      string `json:"platform,omitempty"`
	Duration      int    `json:"duration_seconds"`
	AspectRatio   string `json:"aspect_ratio"`
	Resolution    string `json:"resolution"`
	ArtifactID    string `json:"artifact_id,omitempty"`
}

func (t *generateVideoTool) execute(argText string) (string, error) {
	var args struct {
		Prompt      string `json:"prompt"`
		Platform    string `json:"platform"`
		AspectRatio string `json:"aspect_ratio"`
		Seconds     int    `json:"seconds"`
	}
	if err := parseToolArgs(t.name(), argText, &args); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}
	if err := requireString(t.name(), "prompt", args.Prompt); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}

	cfg := t.ctx.Store.Get()

	seconds := args.Seconds
	if seconds < minVideoDuration || seconds > maxVideoDuration {
		seconds = cfg.VideoDuration
	}

	platform := strings.ToLower(strings.TrimSpace(args.Platform))
	ratio := args.AspectRatio
	if recommended, ok := platformAspectRatio[platform]; ok {
		ratio = recommended
	}
	if _, ok := AspectRatioOptions[ratio]; !ok {
		ratio = cfg.VideoAspectRatio
	}
	resolution := ResolutionFor(ratio)

	if t.ctx.Logger != nil {
		t.ctx.Logger.Debug("generating video",
			zap.String("platform", platform),
			zap.String("aspect_ratio", ratio),
			zap.String("resolution", resolution),
			zap.Int("seconds", seconds),
		)
	}

	enhanced := t.enhancePrompt(args.Prompt, platform)
	job, err := t.ctx.Video.Generate(t.ctx.Ctx, enhanced, resolution, seconds)
	if err != nil {
		return marshalToolResponse(t.name(), nil, transportError(err, "video generation failed"))
	}

	result := videoResult{
		ID:          job.ID,
		URL:         job.URL,
		Platform:    platform,
		Duration:    seconds,
		AspectRatio: ratio,
		Resolution:  resolution,
	}

	// A failed download keeps the remote identifier usable; the result still
	// counts as a success.
	data, err := t.ctx.Video.Download(t.ctx.Ctx, job.ID)
	if err != nil {
		result.DownloadError = err.Error()
		return marshalToolResponse(t.name(), result, nil)
	}

	artifact, err := t.ctx.Artifacts.Save(ArtifactVideo, platform, ".mp4", job.URL, data)
	if err != nil {
		result.DownloadError = err.Error()
		return marshalToolResponse(t.name(), result, nil)
	}
	result.LocalPath = artifact.Path
	result.ArtifactID = artifact.ID

	return marshalToolResponse(t.name(), result, nil)
}

// enhancePrompt injects the brand guidelines and a platform style hint so the
// generation endpoint produces compliant footage.
func (t *generateVideoTool) enhancePrompt(prompt, platform string) string {
	hint, ok := platformStyleHints[platform]
	if !ok {
		hint = genericStyleHint
	}

	var sb strings.Builder
	sb.WriteString("Create a video following these requirements:\n\n")
	sb.WriteString("USER REQUEST: " + prompt + "\n\n")
	sb.WriteString("STYLE: " + hint + "\n\n")
	sb.WriteString("MANDATORY GUIDELINES TO FOLLOW:\n")
	sb.WriteString(t.ctx.Guidelines.Combined())
	sb.WriteString("\n\nIMPORTANT: The video must have a hook in the first 3 seconds, smooth transitions, ")
	sb.WriteString("stable footage, proper lighting, and no prohibited content. Ensure the visual style ")
	sb.WriteString("matches the target platform aesthetic.")
	return sb.String()
}
