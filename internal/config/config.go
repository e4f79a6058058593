package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string   `mapstructure:"env"` // current application environment (local, dev, prod etc)
	TelegramAPIToken string   `mapstructure:"-"`   // Telegram API token loaded from environment
	Data             Data     `mapstructure:"data"`
	Quiz             Quiz     `mapstructure:"quiz"`
	Reminder         Reminder `mapstructure:"reminder"`
}

// Data describes where catalog content and local persistence live.
type Data struct {
	ManifestPath    string `mapstructure:"manifest_path"`    // path to the year/module/topic manifest JSON
	Dir             string `mapstructure:"dir"`              // directory bank references are resolved against
	BookmarksPath   string `mapstructure:"bookmarks_path"`   // file holding the persisted bookmark set
	SubscribersPath string `mapstructure:"subscribers_path"` // file holding daily-reminder subscriber chat IDs
}

// Quiz contains session behavior settings.
type Quiz struct {
	DailyCount       int  `mapstructure:"daily_count"`        // number of questions in a daily challenge
	QuestionSeconds  int  `mapstructure:"question_seconds"`   // countdown per question when the timer is on
	TimeBonusEnabled bool `mapstructure:"time_bonus_enabled"` // add 10 * remaining seconds to correct answers
}

// Reminder configures the daily challenge reminder job.
type Reminder struct {
	Enabled bool `mapstructure:"enabled"`
	Hour    int  `mapstructure:"hour"` // UTC hour the reminder fires at
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("data.manifest_path", "data/manifest.json")
	v.SetDefault("data.dir", "data")
	v.SetDefault("data.bookmarks_path", "data/bookmarks.json")
	v.SetDefault("data.subscribers_path", "data/subscribers.json")
	v.SetDefault("quiz.daily_count", 10)
	v.SetDefault("quiz.question_seconds", 10)
	v.SetDefault("quiz.time_bonus_enabled", false)
	v.SetDefault("reminder.enabled", false)
	v.SetDefault("reminder.hour", 9)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	return &cfg, nil
}
