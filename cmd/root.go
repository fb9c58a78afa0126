package cmd

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/studentos/internal/ai/gemini"
	"github.com/spigell/studentos/internal/explain"
	"github.com/spigell/studentos/internal/storage"
)

const (
	app = "studentos"

	defaultRequestsPerMinute = 10
	dismissedFileName        = "dismissed.json"
)

type Config struct {
	DataDir       string          `mapstructure:"data-dir"`
	CatalogFile   string          `mapstructure:"catalog-file"`
	DismissedFile string          `mapstructure:"dismissed-file"`
	Storage       storage.Options `mapstructure:"storage"`
	Exclude       *struct {
		Companies []string `mapstructure:"companies"`
	} `mapstructure:"exclude"`
	AI *AIConfig `mapstructure:"ai"`
}

type AIConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	Provider           string        `mapstructure:"provider"`
	ExplanationTimeout time.Duration `mapstructure:"explanation-timeout"`
	Gemini             *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKey            string `mapstructure:"api-key"`
	APIKeyFile        string `mapstructure:"api-key-file"`
	Model             string `mapstructure:"model"`
	MaxRetries        int    `mapstructure:"max-retries"`
	MaxLogLength      int    `mapstructure:"max-log-length"`
	RequestsPerMinute int    `mapstructure:"requests-per-minute"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "studentos surfaces the one job worth a student's attention and keeps a daily study plan",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("data-dir", "STUDENTOS_DATA_DIR"); err != nil {
		log.Fatalf("binding STUDENTOS_DATA_DIR environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	setDefaults(viper.GetViper())

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is studentos.yaml in current directory or ~/.studentos)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "." + app
	}
	return filepath.Join(home, "."+app)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data-dir", defaultDataDir())
	v.SetDefault("storage.backend", storage.BackendFile)
	v.SetDefault("storage.redis.key-prefix", app+":")
	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.explanation-timeout", explain.DefaultTimeout)
	v.SetDefault("ai.gemini.model", gemini.DefaultModel)
	v.SetDefault("ai.gemini.max-retries", gemini.DefaultMaxRetries)
	v.SetDefault("ai.gemini.max-log-length", gemini.DefaultMaxLogLength)
	v.SetDefault("ai.gemini.requests-per-minute", defaultRequestsPerMinute)
}

// initConfig reads the config file when there is one. Every key has a
// default, so a missing file is fine unless it was asked for explicitly.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, "."+app))
		}
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	return decodeConfig(viper.GetViper())
}

func decodeConfig(v *viper.Viper) (*Config, error) {
	var config *Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config == nil {
		config = &Config{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}
	if config.DataDir == "" {
		config.DataDir = defaultDataDir()
	}
	if config.DismissedFile == "" {
		config.DismissedFile = filepath.Join(config.DataDir, dismissedFileName)
	}
	return config, nil
}

func (c *Config) excludedCompanies() []string {
	if c.Exclude == nil {
		return nil
	}
	return c.Exclude.Companies
}
