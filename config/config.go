package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ismaeljda/big-brain/model"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Port     int    `envconfig:"API_PORT" default:"5000"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	Youtube struct {
		ClientID     string `envconfig:"YOUTUBE_CLIENT_ID"`
		ClientSecret string `envconfig:"YOUTUBE_CLIENT_SECRET"`
		RedirectURI  string `envconfig:"YOUTUBE_REDIRECT_URI" default:"http://localhost:5000/oauth/callback"`
		MaxResults   int64  `envconfig:"SYNC_MAX_RESULTS" default:"50"`
	} `envconfig:""`

	LLM struct {
		Provider     string `envconfig:"LLM_PROVIDER" default:"gemini"`
		Model        string `envconfig:"LLM_MODEL"`
		GeminiAPIKey string `envconfig:"GOOGLE_AI_API_KEY"`
		OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`
	} `envconfig:""`

	VaultPath      string `envconfig:"OBSIDIAN_VAULT_PATH" default:"./vault"`
	DataDir        string `envconfig:"DATA_DIR" default:"youtube_data"`
	CategoriesFile string `envconfig:"CATEGORIES_FILE"`

	Categories model.Categories `ignored:"true"`
}

type categoriesFile struct {
	Categories []model.Category `yaml:"categories"`
}

// Load reads .env (if present), the environment and the optional categories
// file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	cfg.Categories = model.DefaultCategories()
	if cfg.CategoriesFile != "" {
		cats, err := LoadCategories(cfg.CategoriesFile)
		if err != nil {
			return nil, err
		}
		cfg.Categories = cats
	}

	cfg.setDefaults()

	return &cfg, nil
}

// LoadCategories parses a YAML category table. Environment variables in the
// file are expanded.
func LoadCategories(path string) (model.Categories, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories file: %w", err)
	}

	var file categoriesFile
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &file); err != nil {
		return nil, fmt.Errorf("parse categories file: %w", err)
	}
	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("categories file %s defines no categories", path)
	}

	cats := make(model.Categories, len(file.Categories))
	for _, cat := range file.Categories {
		if cat.Key == "" || cat.Folder == "" {
			return nil, fmt.Errorf("category %q: key and folder are required", cat.Key)
		}
		if !cat.Mode.Valid() {
			return nil, fmt.Errorf("category %q: unknown type %q", cat.Key, cat.Mode)
		}
		if cat.Key == model.CategorySkip || cat.Key == model.CategorySkipped {
			return nil, fmt.Errorf("category %q is reserved", cat.Key)
		}
		if cat.Name == "" {
			cat.Name = cat.Folder
		}
		if cat.MOC == "" {
			cat.MOC = cat.Folder + " MOC"
		}
		cats[cat.Key] = cat
	}

	return cats, nil
}

func (c *Config) setDefaults() {
	c.LLM.Provider = strings.ToLower(c.LLM.Provider)
	if c.LLM.Model == "" {
		switch c.LLM.Provider {
		case ProviderOpenAI:
			c.LLM.Model = "gpt-4o-mini"
		default:
			c.LLM.Model = "gemini-2.5-flash"
		}
	}
	if c.Youtube.MaxResults <= 0 {
		c.Youtube.MaxResults = 50
	}
}

// Validate returns the names of the required settings that are missing.
func (c *Config) Validate() []string {
	var missing []string
	if c.Youtube.ClientID == "" {
		missing = append(missing, "YOUTUBE_CLIENT_ID")
	}
	if c.Youtube.ClientSecret == "" {
		missing = append(missing, "YOUTUBE_CLIENT_SECRET")
	}
	switch c.LLM.Provider {
	case ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			missing = append(missing, "OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			missing = append(missing, "GOOGLE_AI_API_KEY")
		}
	default:
		missing = append(missing, "LLM_PROVIDER")
	}
	return missing
}

func (c *Config) NotesDir() string {
	return filepath.Join(c.VaultPath, "YouTube Knowledge")
}
