// generate_caption adapter.
package contentagent

import (
	"fmt"
	"strings"

	"github.com/openai/openai-go"
)

// captionRule bounds caption generation for one platform.
type captionRule struct {
	MaxLength    int
	HashtagRange string
	Notes        string
}

// platformCaptionRules maps a platform to its length and hashtag limits.
var platformCaptionRules = map[string]captionRule{
	"instagram": {MaxLength: 2200, HashtagRange: "20-30", Notes: "Visual-first, storytelling works well, hashtags at the end"},
	"linkedin":  {MaxLength: 3000, HashtagRange: "3-5", Notes: "Professional tone, thought leadership, industry-specific hashtags"},
	"twitter":   {MaxLength: 280, HashtagRange: "1-3", Notes: "Concise, punchy, trending hashtags work best"},
	"tiktok":    {MaxLength: 2200, HashtagRange: "4-6", Notes: "Trendy, casual, reference trending sounds and challenges"},
	"facebook":  {MaxLength: 63206, HashtagRange: "1-3", Notes: "Conversational, questions engage well, minimal hashtags"},
}

// genericCaptionRule applies to any platform outside the table.
var genericCaptionRule = captionRule{
	MaxLength:    2200,
	HashtagRange: "3-5",
	Notes:        "Clear, engaging, broadly appropriate tone",
}

func captionRuleFor(platform string) captionRule {
	if rule, ok := platformCaptionRules[platform]; ok {
		return rule
	}
	return genericCaptionRule
}

// generateCaptionTool writes a platform-optimized caption with hashtags.
type generateCaptionTool struct {
	ctx toolContext
}

func (t *generateCaptionTool) name() string {
	return "generate_caption"
}

func (t *generateCaptionTool) definition() openai.ChatCompletionToolParam {
	return openai.ChatCompletionToolParam{
		Function: openai.FunctionDefinitionParam{
			Name: "generate_caption",
			Description: openai.String("Generate a social media caption with relevant hashtags, " +
				"optimized for the target platform's length and hashtag conventions."),
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]any{
					"content_description": map[string]any{
						"type":        "string",
						"description": "Description of the content that needs a caption",
					},
					"platform": map[string]any{
						"type":        "string",
						"description": "Target platform (instagram, linkedin, twitter, tiktok, facebook)",
					},
					"style": map[string]any{
						"type":        "string",
						"enum":        validCaptionStyles,
						"description": "Caption tone; defaults to the configured style",
					},
					"include_hashtags": map[string]any{
						"type": "boolean",
					},
					"include_emojis": map[string]any{
						"type": "boolean",
					},
				},
				"required": []string{"content_description"},
			},
		},
	}
}

type captionResult struct {
	Platform     string `json:"platform"`
	Style        string `json:"style"`
	Caption      string `json:"caption"`
	MaxLength    int    `json:"max_length"`
	HashtagRange string `json:"hashtag_range"`
}

func (t *generateCaptionTool) execute(argText string) (string, error) {
	args := struct {
		ContentDescription string `json:"content_description"`
		Platform           string `json:"platform"`
		Style              string `json:"style"`
		IncludeHashtags    *bool  `json:"include_hashtags"`
		IncludeEmojis      *bool  `json:"include_emojis"`
	}{}
	if err := parseToolArgs(t.name(), argText, &args); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}
	if err := requireString(t.name(), "content_description", args.ContentDescription); err != nil {
		return marshalToolResponse(t.name(), nil, err)
	}

	cfg := t.ctx.Store.Get()
	style := pickAllowed(args.Style, validCaptionStyles, cfg.CaptionStyle)
	platform := strings.ToLower(strings.TrimSpace(args.Platform))
	if platform == "" && len(cfg.TargetPlatforms) > 0 {
		platform = cfg.TargetPlatforms[0]
	}
	rule := captionRuleFor(platform)

	hashtags := true
	if args.IncludeHashtags != nil {
		hashtags = *args.IncludeHashtags
	}
	emojis := true
	if args.IncludeEmojis != nil {
		emojis = *args.IncludeEmojis
	}

	caption, err := t.ctx.Text.Complete(t.ctx.Ctx, textRequest{
		System:      captionSystemPrompt(platform, style, rule, hashtags, emojis),
		User:        captionUserPrompt(platform, style, args.ContentDescription),
		Temperature: 0.8,
		MaxTokens:   1000,
	})
	if err != nil {
		return marshalToolResponse(t.name(), nil, transportError(err, "caption generation failed"))
	}

	return marshalToolResponse(t.name(), captionResult{
		Platform:     platform,
		Style:        style,
		Caption:      strings.TrimSpace(caption),
		MaxLength:    rule.MaxLength,
		HashtagRange: rule.HashtagRange,
	}, nil)
}

func captionSystemPrompt(platform, style string, rule captionRule, hashtags, emojis bool) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are an expert social media content creator specializing in %s.\n\n", platform))
	sb.WriteString("Your task is to create engaging captions that:\n")
	sb.WriteString(fmt.Sprintf("1. Match the %s tone/style\n", style))
	sb.WriteString(fmt.Sprintf("2. Are optimized for %s (max %d characters)\n", platform, rule.MaxLength))
	if hashtags {
		sb.WriteString(fmt.Sprintf("3. Include %s relevant, trending hashtags\n", rule.HashtagRange))
	} else {
		sb.WriteString("3. Do NOT include hashtags\n")
	}
	if emojis {
		sb.WriteString("4. Include appropriate emojis\n")
	} else {
		sb.WriteString("4. Do NOT include emojis\n")
	}
	sb.WriteString(fmt.Sprintf("5. %s\n", rule.Notes))
	return sb.String()
}

func captionUserPrompt(platform, style, description string) string {
	return fmt.Sprintf("Create a %s caption for %s about:\n\n%s\n\nMake it engaging and optimized for maximum reach and engagement.",
		style, platform, description)
}
