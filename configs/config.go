package configs

import (
	"errors"
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App       `mapstructure:"app"`
	Postgres  `mapstructure:"postgres"`
	Redis     `mapstructure:"redis"`
	Line      `mapstructure:"line"`
	Processor `mapstructure:"processor"`
	Webhook   `mapstructure:"webhook"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Redis struct
type Redis struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Line struct
type Line struct {
	ChannelSecret string `mapstructure:"channel_secret"`
}

// Processor struct - Downstream processor contract
// DebounceDelay and Timeout are in seconds.
type Processor struct {
	URL           string `mapstructure:"url"`
	APIKey        string `mapstructure:"api_key"`
	Channel       string `mapstructure:"channel"`
	BatchLimit    int    `mapstructure:"batch_limit"`
	DebounceDelay int    `mapstructure:"debounce_delay"`
	Timeout       int    `mapstructure:"timeout"`
}

// Webhook struct - Capability flags for the ingestion endpoint
type Webhook struct {
	Persist       bool `mapstructure:"persist"`
	CacheValidate bool `mapstructure:"cache_validate"`
	Notify        bool `mapstructure:"notify"`
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()
	err := viper.ReadInConfig()
	if err != nil {
		// Env-only deployments carry no config file
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(err)
		}
		log.Println("No config file found, using environment variables only")
	} else {
		viper.WatchConfig()
		viper.OnConfigChange(func(e fsnotify.Event) {
			log.Println("Config file has changed: ", e.Name)
		})
	}
	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
}

// setDefaults registers every key so AutomaticEnv can bind it, with safe
// defaults for non-production use only. Secrets default to empty on purpose.
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.port", "9089")

	viper.SetDefault("postgres.host", "localhost")
	viper.SetDefault("postgres.port", "5432")
	viper.SetDefault("postgres.username", "")
	viper.SetDefault("postgres.password", "")
	viper.SetDefault("postgres.database", "")
	viper.SetDefault("postgres.sslmode", false)

	viper.SetDefault("redis.host", "")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	viper.SetDefault("line.channel_secret", "")

	viper.SetDefault("processor.url", "")
	viper.SetDefault("processor.api_key", "")
	viper.SetDefault("processor.channel", "line")
	viper.SetDefault("processor.batch_limit", 50)
	viper.SetDefault("processor.debounce_delay", 5)
	viper.SetDefault("processor.timeout", 30)

	viper.SetDefault("webhook.persist", true)
	viper.SetDefault("webhook.cache_validate", true)
	viper.SetDefault("webhook.notify", true)
}

// ValidateProductionSecrets func - Fails fast when a production deployment is
// missing a secret. There is no embedded fallback secret anywhere.
func (c *Config) ValidateProductionSecrets() error {
	if c.App.Env != "production" {
		return nil
	}
	if c.Line.ChannelSecret == "" {
		return errors.New("LINE_CHANNEL_SECRET must be set in production")
	}
	if c.Webhook.Notify && c.Processor.APIKey == "" {
		return errors.New("PROCESSOR_API_KEY must be set in production when notification is enabled")
	}
	return nil
}
