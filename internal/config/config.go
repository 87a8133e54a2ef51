// Package config loads application settings from defaults, an optional
// YAML file, a .env file and PMOQUIZ_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/pmoquiz/internal/llm"
	"github.com/abhisek/pmoquiz/internal/logger"
)

// EnvPrefix prefixes every environment override, e.g. PMOQUIZ_LLM_PROVIDER.
const EnvPrefix = "PMOQUIZ"

// Config is the full application configuration.
type Config struct {
	LLM    llm.Config    `mapstructure:"llm"`
	DB     string        `mapstructure:"db"`
	Log    logger.Config `mapstructure:"log"`
	Export ExportConfig  `mapstructure:"export"`

	// File is the config file that was read, empty when none was.
	File string `mapstructure:"-"`

	// Discovered is set when the LLM credential came from a standard
	// provider variable rather than PMOQUIZ_* settings.
	Discovered bool `mapstructure:"-"`
}

// ExportConfig controls PDF export.
type ExportConfig struct {
	// Dir is where exported reports are written. Empty means the working
	// directory.
	Dir string `mapstructure:"dir"`
}

// Options tells Load where to look.
type Options struct {
	// ConfigFile overrides the default config search. A missing explicit
	// file is an error.
	ConfigFile string

	// EnvFile is loaded before reading the environment. Defaults to ".env";
	// a missing file is ignored.
	EnvFile string
}

// Load reads the configuration. Variables already set in the environment
// win over those in the .env file.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := configDir(); dir != "" {
			v.AddConfigPath(dir)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.LLM.Provider != "mock" && !cfg.LLM.HasCredentials() {
		cfg.LLM, cfg.Discovered = cfg.LLM.Discover()
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.gemini.api_key", "")
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openai.api_key", "")
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", "")
	v.SetDefault("llm.anthropic.api_key", "")
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.openrouter.api_key", "")
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", "")

	v.SetDefault("db", "")
	v.SetDefault("log.file", logger.DefaultPath())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("export.dir", "")
}

// configDir returns $XDG_CONFIG_HOME/pmoquiz, falling back to ~/.config.
func configDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "pmoquiz")
}
