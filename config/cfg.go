package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	ImagesConfig struct {
		MaxWidth    int `yaml:"max_width" validate:"gte=0"`
		JPEGQuality int `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
	}

	IllustrationsConfig struct {
		EditorNotePath   string `yaml:"editor_note_path" sanitize:"assure_file_access"`
		ReporterNotePath string `yaml:"reporter_note_path" sanitize:"assure_file_access"`
		Width            int    `yaml:"width" validate:"min=100,max=4096"`
	}

	PreviewConfig struct {
		Enable        bool   `yaml:"enable"`
		TitleTemplate string `yaml:"title_template"`
	}

	DocumentConfig struct {
		StylesheetPath        string              `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		OutputNameTemplate    string              `yaml:"output_name_template"`
		FileNameTransliterate bool                `yaml:"file_name_transliterate"`
		PoweredBy             string              `yaml:"powered_by"`
		Preview               PreviewConfig       `yaml:"preview"`
		Images                ImagesConfig        `yaml:"images"`
		Illustrations         IllustrationsConfig `yaml:"illustrations"`
	}

	LocalHostConfig struct {
		Directory string `yaml:"directory" validate:"required"`
		BaseURL   string `yaml:"base_url" validate:"omitempty,url"`
	}

	SMMSHostConfig struct {
		Endpoint string        `yaml:"endpoint" validate:"required,url"`
		Token    SecretString  `yaml:"token"`
		Timeout  time.Duration `yaml:"timeout" validate:"gte=0"`
	}

	AssetsConfig struct {
		Host      HostKind        `yaml:"host"`
		CachePath string          `yaml:"cache_path" sanitize:"path_clean,assure_dir_exists_for_file"`
		CacheTTL  time.Duration   `yaml:"cache_ttl" validate:"gte=0"`
		Local     LocalHostConfig `yaml:"local"`
		SMMS      SMMSHostConfig  `yaml:"smms"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Assets    AssetsConfig   `yaml:"assets"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	OutputNameTemplateFieldName   TemplateFieldName = "output_name_template"
	PreviewTitleTemplateFieldName TemplateFieldName = "title_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(OutputNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(PreviewTitleTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		// sanitize and validate what has been loaded
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, fmt.Errorf("configuration is not valid: %w", err)
		}
		if !cfg.Assets.Host.IsValid() {
			return nil, fmt.Errorf("configuration is not valid: unknown assets host %d", cfg.Assets.Host)
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration tamplate to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	// overwrite cfg values with values from the file
	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
