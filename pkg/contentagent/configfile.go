// Optional YAML defaults file for generation settings.
package contentagent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// generationFile mirrors GenerationConfig for YAML decoding. Absent fields
// keep their defaults.
type generationFile struct {
	TargetPlatforms  []string `yaml:"target_platforms"`
	VideoDuration    *int     `yaml:"video_duration"`
	VideoAspectRatio string   `yaml:"video_aspect_ratio"`
	EnableCaptions   *bool    `yaml:"enable_captions"`
	CaptionStyle     string   `yaml:"caption_style"`
	ImageSize        string   `yaml:"image_size"`
	ImageQuality     string   `yaml:"image_quality"`
	AutoCompliance   *bool    `yaml:"auto_compliance"`
	AutoPublish      *bool    `yaml:"auto_publish"`
}

// LoadGenerationDefaults reads a YAML defaults file and overlays it on the
// built-in defaults. A missing file is not an error; an invalid resulting
// configuration is.
func LoadGenerationDefaults(path string) (GenerationConfig, error) {
	cfg := DefaultGenerationConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var file generationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}

	if len(file.TargetPlatforms) > 0 {
		cfg.TargetPlatforms = file.TargetPlatforms
	}
	if file.VideoDuration != nil {
		cfg.VideoDuration = *file.VideoDuration
	}
	if file.VideoAspectRatio != "" {
		cfg.VideoAspectRatio = file.VideoAspectRatio
	}
	if file.EnableCaptions != nil {
		cfg.EnableCaptions = *file.EnableCaptions
	}
	if file.CaptionStyle != "" {
		cfg.CaptionStyle = file.CaptionStyle
	}
	if file.ImageSize != "" {
		cfg.ImageSize = file.ImageSize
	}
	if file.ImageQuality != "" {
		cfg.ImageQuality = file.ImageQuality
	}
	if file.AutoCompliance != nil {
		cfg.AutoCompliance = *file.AutoCompliance
	}
	if file.AutoPublish != nil {
		cfg.AutoPublish = *file.AutoPublish
	}

	if err := cfg.Validate(); err != nil {
		return DefaultGenerationConfig(), fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}
