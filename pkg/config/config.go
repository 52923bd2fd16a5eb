/*
Package config manages the TOML config for the trigram services.

Values are read from a TOML file, then overridden by environment variables
(optionally loaded from a .env file). Anything missing or invalid falls back
to the built-in defaults.
*/
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/bastiangx/trigram/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// Environment variables that override file values.
const (
	EnvThreshold  = "TRIGRAM_THRESHOLD"
	EnvLexicon    = "TRIGRAM_LEXICON"
	EnvMaxResults = "TRIGRAM_MAX_RESULTS"
)

// Config holds the entire config structure
type Config struct {
	Match   MatchConfig   `toml:"match"`
	Server  ServerConfig  `toml:"server"`
	Lexicon LexiconConfig `toml:"lexicon"`
}

// MatchConfig has the fuzzy matching options.
type MatchConfig struct {
	Threshold float64 `toml:"threshold"`
	MaxNeedle int     `toml:"max_needle"`
}

// ServerConfig has IPC server options.
type ServerConfig struct {
	MaxHaystack  int  `toml:"max_haystack"`
	MaxResults   int  `toml:"max_results"`
	ReadyMessage bool `toml:"ready_message"`
}

// LexiconConfig holds word list options.
type LexiconConfig struct {
	Path       string `toml:"path"`
	MinWordLen int    `toml:"min_word_len"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Match: MatchConfig{
			Threshold: 0.3,
			MaxNeedle: 256,
		},
		Server: ServerConfig{
			MaxHaystack:  1 << 20,
			MaxResults:   256,
			ReadyMessage: true,
		},
		Lexicon: LexiconConfig{
			Path:       "",
			MinWordLen: 1,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(fs afero.Fs, configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(fs, configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return withEnv(DefaultConfig()), nil
	}

	if !utils.FileExists(fs, configPath) {
		config := DefaultConfig()
		if err := SaveConfig(fs, config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return withEnv(DefaultConfig()), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return withEnv(config), nil
	}

	return LoadConfig(fs, configPath)
}

// LoadConfig loads from a TOML file and applies environment overrides
func LoadConfig(fs afero.Fs, configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(fs, configPath, config); err != nil {
		config = tryPartialParse(fs, configPath)
	}
	config.validate()
	return withEnv(config), nil
}

// tryPartialParse keeps every section that still decodes
func tryPartialParse(fs afero.Fs, configPath string) *Config {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(fs, configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config
	}

	if section, ok := utils.ExtractSection(tempConfig, "match"); ok {
		extractMatchConfig(section, &config.Match)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "lexicon"); ok {
		extractLexiconConfig(section, &config.Lexicon)
	}
	return config
}

func extractMatchConfig(data map[string]any, match *MatchConfig) {
	if val, ok := utils.ExtractFloat(data, "threshold"); ok {
		match.Threshold = val
	}
	if val, ok := utils.ExtractInt64(data, "max_needle"); ok {
		match.MaxNeedle = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_haystack"); ok {
		server.MaxHaystack = val
	}
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		server.MaxResults = val
	}
	if val, ok := utils.ExtractBool(data, "ready_message"); ok {
		server.ReadyMessage = val
	}
}

func extractLexiconConfig(data map[string]any, lexicon *LexiconConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		lexicon.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "min_word_len"); ok {
		lexicon.MinWordLen = val
	}
}

// validate resets out of range values to their defaults
func (c *Config) validate() {
	def := DefaultConfig()
	if c.Match.Threshold < 0 || c.Match.Threshold > 1 {
		log.Warnf("threshold %v is outside [0, 1], using %v", c.Match.Threshold, def.Match.Threshold)
		c.Match.Threshold = def.Match.Threshold
	}
	if c.Match.MaxNeedle <= 0 {
		log.Warnf("max_needle must be positive, using %d", def.Match.MaxNeedle)
		c.Match.MaxNeedle = def.Match.MaxNeedle
	}
	if c.Server.MaxHaystack <= 0 {
		log.Warnf("max_haystack must be positive, using %d", def.Server.MaxHaystack)
		c.Server.MaxHaystack = def.Server.MaxHaystack
	}
	if c.Server.MaxResults <= 0 {
		log.Warnf("max_results must be positive, using %d", def.Server.MaxResults)
		c.Server.MaxResults = def.Server.MaxResults
	}
	if c.Lexicon.MinWordLen < 1 {
		c.Lexicon.MinWordLen = def.Lexicon.MinWordLen
	}
}

// LoadDotEnv loads a .env file into the process environment. A missing file
// is not an error.
func LoadDotEnv(fs afero.Fs, path string) error {
	f, err := fs.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return err
	}
	for k, v := range vars {
		if _, exists := os.LookupEnv(k); exists {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return err
		}
	}
	return nil
}

// withEnv applies environment overrides on top of c
func withEnv(c *Config) *Config {
	if v, ok := os.LookupEnv(EnvThreshold); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			c.Match.Threshold = f
		} else {
			log.Warnf("Ignoring invalid %s=%q", EnvThreshold, v)
		}
	}
	if v, ok := os.LookupEnv(EnvLexicon); ok {
		c.Lexicon.Path = v
	}
	if v, ok := os.LookupEnv(EnvMaxResults); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Server.MaxResults = n
		} else {
			log.Warnf("Ignoring invalid %s=%q", EnvMaxResults, v)
		}
	}
	return c
}

// SaveConfig saves into a TOML file
func SaveConfig(fs afero.Fs, config *Config, configPath string) error {
	return utils.SaveTOMLFile(fs, config, configPath)
}

// Update changes the match settings and saves to file
func (c *Config) Update(fs afero.Fs, configPath string, threshold *float64, maxResults *int) error {
	if threshold != nil {
		c.Match.Threshold = *threshold
	}
	if maxResults != nil {
		c.Server.MaxResults = *maxResults
	}
	c.validate()
	return SaveConfig(fs, c, configPath)
}
