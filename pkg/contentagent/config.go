// Generation settings and the configuration store.
package contentagent

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// AspectRatioInfo describes one supported video aspect ratio.
type AspectRatioInfo struct {
	Size        string
	Description string
}

// AspectRatioOptions maps a ratio label to its target resolution.
var AspectRatioOptions = map[string]AspectRatioInfo{
	"16:9": {Size: "1920x1080", Description: "Landscape - YouTube, LinkedIn, Twitter"},
	"9:16": {Size: "1080x1920", Description: "Portrait - TikTok, Reels, Shorts"},
	"1:1":  {Size: "1080x1080", Description: "Square - Instagram Feed, Facebook"},
	"4:5":  {Size: "1080x1350", Description: "Portrait - Instagram Feed optimal"},
}

// DefaultAspectRatio is used whenever a ratio is unknown or unset.
const DefaultAspectRatio = "16:9"

// AvailablePlatforms lists the platforms content can be published to.
var AvailablePlatforms = []string{"linkedin", "instagram", "facebook"}

// platformAspectRatio maps a platform to its recommended video ratio.
var platformAspectRatio = map[string]string{
	"linkedin":  "16:9",
	"instagram": "1:1",
	"facebook":  "16:9",
}

var (
	validImageSizes     = []string{"1024x1024", "1792x1024", "1024x1792"}
	validImageQualities = []string{"standard", "hd"}
	validCaptionStyles  = []string{"professional", "casual", "creative"}
)

const (
	minVideoDuration = 5
	maxVideoDuration = 60
)

// GenerationConfig holds the user-chosen generation settings. It is treated
// as an immutable snapshot: replaced wholesale, only read by adapters.
type GenerationConfig struct {
	TargetPlatforms  []string
	VideoDuration    int
	VideoAspectRatio string
	EnableCaptions   bool
	CaptionStyle     string
	ImageSize        string
	ImageQuality     string
	AutoCompliance   bool
	AutoPublish      bool
}

// DefaultGenerationConfig returns the documented defaults.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		TargetPlatforms:  []string{"linkedin"},
		VideoDuration:    10,
		VideoAspectRatio: DefaultAspectRatio,
		EnableCaptions:   true,
		CaptionStyle:     "professional",
		ImageSize:        "1024x1024",
		ImageQuality:     "hd",
		AutoCompliance:   true,
		AutoPublish:      false,
	}
}

// ResolutionFor resolves a ratio label, falling back to the default ratio
// for anything outside the supported set.
func ResolutionFor(ratio string) string {
	if info, ok := AspectRatioOptions[ratio]; ok {
		return info.Size
	}
	return AspectRatioOptions[DefaultAspectRatio].Size
}

// VideoResolution returns the resolution derived from the aspect ratio.
func (c GenerationConfig) VideoResolution() string {
	return ResolutionFor(c.VideoAspectRatio)
}

// Validate rejects any field outside its enumerated option set.
func (c GenerationConfig) Validate() error {
	if len(c.TargetPlatforms) == 0 {
		return configurationError("at least one target platform is required")
	}
	for _, p := range c.TargetPlatforms {
		if !contains(AvailablePlatforms, p) {
			return configurationError("unknown platform %q (available: %s)", p, strings.Join(AvailablePlatforms, ", "))
		}
	}
	if c.VideoDuration < minVideoDuration || c.VideoDuration > maxVideoDuration {
		return configurationError("video duration %d out of range %d-%d", c.VideoDuration, minVideoDuration, maxVideoDuration)
	}
	if _, ok := AspectRatioOptions[c.VideoAspectRatio]; !ok {
		return configurationError("unknown aspect ratio %q", c.VideoAspectRatio)
	}
	if !contains(validImageSizes, c.ImageSize) {
		return configurationError("unknown image size %q", c.ImageSize)
	}
	if !contains(validImageQualities, c.ImageQuality) {
		return configurationError("unknown image quality %q", c.ImageQuality)
	}
	if !contains(validCaptionStyles, c.CaptionStyle) {
		return configurationError("unknown caption style %q", c.CaptionStyle)
	}
	return nil
}

// Describe renders the configuration for the /settings command.
func (c GenerationConfig) Describe() string {
	var sb strings.Builder
	sb.WriteString("Current Configuration\n")
	sb.WriteString(fmt.Sprintf("  Target platforms: %s\n", strings.Join(c.TargetPlatforms, ", ")))
	sb.WriteString(fmt.Sprintf("  Video: %ds, %s (%s)\n", c.VideoDuration, c.VideoAspectRatio, c.VideoResolution()))
	sb.WriteString(fmt.Sprintf("  Image: %s, %s quality\n", c.ImageSize, c.ImageQuality))
	sb.WriteString(fmt.Sprintf("  Captions: %v, style=%s\n", c.EnableCaptions, c.CaptionStyle))
	sb.WriteString(fmt.Sprintf("  Auto-compliance: %v\n", c.AutoCompliance))
	sb.WriteString(fmt.Sprintf("  Auto-publish: %v", c.AutoPublish))
	return sb.String()
}

func (c GenerationConfig) clone() GenerationConfig {
	out := c
	out.TargetPlatforms = append([]string(nil), c.TargetPlatforms...)
	return out
}

// ConfigStore holds the live GenerationConfig snapshot. Set replaces it
// atomically; an invalid set is rejected and the prior value retained.
type ConfigStore struct {
	mu      sync.RWMutex
	current GenerationConfig
}

// NewConfigStore returns a store seeded with the defaults.
func NewConfigStore() *ConfigStore {
	return &ConfigStore{current: DefaultGenerationConfig()}
}

// Get returns the current snapshot.
func (s *ConfigStore) Get() GenerationConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.clone()
}

// Set validates and replaces the snapshot.
func (s *ConfigStore) Set(cfg GenerationConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = cfg.clone()
	return nil
}

// SupportedAspectRatios returns the ratio labels in stable order.
func SupportedAspectRatios() []string {
	out := make([]string, 0, len(AspectRatioOptions))
	for ratio := range AspectRatioOptions {
		out = append(out, ratio)
	}
	sort.Strings(out)
	return out
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
