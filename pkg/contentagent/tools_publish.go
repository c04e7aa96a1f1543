// publish_to_social_media adapter.
package contentagent

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"go.uber.org/zap"
)

// publishTool posts a generated file to one platform. Credentials are
// checked here, at call time; a missing credential yields a classified
// failure result, never a crash.
type publishTool struct {
	ctx toolContext
}

func (t *publishTool) name() string {
	return "publish_to_social_media"
}

func (t *publishTool) definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name: "publish_to_social_media",
			Description: openai.String("Publish an image or video to a social media platform. " +
				"Use the local file path returned by generate_image or generate_video."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"platform": map[string]any{
						"type": "string",
						"enum": AvailablePlatforms,
					},
					"content_path": map[string]any{
						"type":        "string",
						"description": "Local file path of the content to publish",
					},
					"caption_prompt": map[string]any{
						"type":        "string",
						"description": "Brief description of the content for caption generation",
					},
					"content_type": map[string]any{
						"type": "string",
						"enum": []string{"image", "video"},
					},
					"video_title": map[string]any{
						"type":        "string",
						"description": "Optional title for videos",
					},
				},
				"required": []string{"platform", "content_path", "caption_prompt"},
			},
		},
	}
}

type publishResult struct {
	Platform    string `json:"platform"`
	ContentType string `json:"content_type"`
	ContentPath string `json:"content_path"`
	Caption     string `json:"caption"`
	PostID      string `json:"post_id,omitempty"`
}

func (t *publishTool) execute(argText string) (string, error) {
	var args struct {
		Platform      string `json:"platform"`
		ContentPath   string `json:"content_path"`
		CaptionPrompt string `json:"caption_prompt"`
		ContentType   string `json:"content_type"`
		VideoTitle    string `json:"video_title"`
	}
	if err := parseToolArgs(t.name(), argText, &args); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}
	if err := requireString(t.name(), "caption_prompt", args.CaptionPrompt); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}

	platform := strings.ToLower(strings.TrimSpace(args.Platform))
	if !contains(AvailablePlatforms, platform) {
		return marshalToolResponse(t.name(), nil,
			validationError("%s: invalid platform %q (must be one of: %s)", t.name(), args.Platform, strings.Join(AvailablePlatforms, ", ")))
	}
	contentType := pickAllowed(strings.ToLower(strings.TrimSpace(args.ContentType)), []string{"image", "video"}, "image")

	path, err := t.resolveContentPath(args.ContentPath, contentType)
	if err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}

	caption, err := t.generateCaption(platform, args.CaptionPrompt)
	if err != nil {
		return marshalToolResponse(t.name(), nil, transportError(err, "caption generation for publishing failed"))
	}

	if t.ctx.Logger != nil {
		t.ctx.Logger.Info("publishing content",
			zap.String("platform", platform),
			zap.String("content_type", contentType),
			zap.String("path", path),
		)
	}

	postID, pubErr := t.publish(t.ctx.Ctx, platform, contentType, path, caption, args.VideoTitle)
	if pubErr != nil {
		return marshalToolResponse(t.name(), nil, pubErr)
	}

	return marshalToolResponse(t.name(), publishResult{
		Platform:    platform,
		ContentType: contentType,
		ContentPath: path,
		Caption:     caption,
		PostID:      postID,
	}, nil)
}

// resolveContentPath falls back to the most recent artifact of the same kind
// when the given path does not exist.
func (t *publishTool) resolveContentPath(path, contentType string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	kind := ArtifactImage
	if contentType == "video" {
		kind = ArtifactVideo
	}
	if latest, ok := t.ctx.Artifacts.Latest(kind); ok {
		return latest.Path, nil
	}
	return "", validationError("%s: file not found: %s (and no generated %s available)", t.name(), path, contentType)
}

func (t *publishTool) generateCaption(platform, prompt string) (string, error) {
	system := "You write short, engaging social media captions."
	if platform == "linkedin" {
		system = "Write a professional LinkedIn post caption."
	}
	caption, err := t.ctx.Text.Complete(t.ctx.Ctx, textRequest{
		System:      system,
		User:        fmt.Sprintf("Write a short caption (max 2 lines) with 5 relevant hashtags for: %s", prompt),
		Temperature: 0.7,
		MaxTokens:   120,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(caption), nil
}

func (t *publishTool) publish(ctx context.Context, platform, contentType, path, caption, videoTitle string) (string, error) {
	title := videoTitle
	if title == "" {
		title = "Video"
	}

	switch platform {
	case "linkedin":
		if t.ctx.Creds.LinkedInAccessToken == "" {
			return "", credentialError("LINKEDIN_ACCESS_TOKEN")
		}
		if t.ctx.Creds.LinkedInURN == "" {
			return "", credentialError("LINKEDIN_URN")
		}
		client := newLinkedInClient(t.ctx.Creds.LinkedInAccessToken, t.ctx.Creds.LinkedInURN, t.ctx.HTTPClient)
		if contentType == "video" {
			return client.PostVideo(ctx, caption, path, title)
		}
		return client.PostImage(ctx, caption, path)

	case "facebook":
		if t.ctx.Creds.MetaAccessToken == "" {
			return "", credentialError("META_ACCESS_TOKEN")
		}
		if t.ctx.Creds.FacebookPageID == "" {
			return "", credentialError("FB_PAGE_ID")
		}
		client := newMetaClient(t.ctx.Creds.MetaAccessToken, t.ctx.Creds.FacebookPageID, t.ctx.Creds.InstagramUserID, t.ctx.HTTPClient)
		if contentType == "video" {
			return client.PostFacebookVideo(ctx, caption, path, title)
		}
		return client.PostFacebookImage(ctx, caption, path)

	case "instagram":
		if contentType == "video" {
			return "", validationError("%s: instagram video posting is not supported, only images", t.name())
		}
		if t.ctx.Creds.MetaAccessToken == "" {
			return "", credentialError("META_ACCESS_TOKEN")
		}
		if t.ctx.Creds.FacebookPageID == "" {
			return "", credentialError("FB_PAGE_ID")
		}
		if t.ctx.Creds.InstagramUserID == "" {
			return "", credentialError("IG_USER_ID")
		}
		client := newMetaClient(t.ctx.Creds.MetaAccessToken, t.ctx.Creds.FacebookPageID, t.ctx.Creds.InstagramUserID, t.ctx.HTTPClient)
		return client.PublishInstagramImage(ctx, caption, path)
	}
	return "", validationError("%s: invalid platform %q", t.name(), platform)
}
