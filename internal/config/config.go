package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Lessons   LessonsConfig   `mapstructure:"lessons"`
	Study     StudyConfig     `mapstructure:"study"`
	Review    ReviewConfig    `mapstructure:"review"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Log       LogConfig       `mapstructure:"log"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
}

type LessonsConfig struct {
	Directories     []string `mapstructure:"directories"`
	CustomDecksFile string   `mapstructure:"custom_decks_file"`
}

type StudyConfig struct {
	ShowTransliteration bool   `mapstructure:"show_transliteration"`
	Shuffle             bool   `mapstructure:"shuffle"`
	IncludeOptional     bool   `mapstructure:"include_optional"`
	Reverse             bool   `mapstructure:"reverse"`
	AudioCommand        string `mapstructure:"audio_command"`
}

const (
	ReviewBackendFile   = "file"
	ReviewBackendSQLite = "sqlite"
	ReviewBackendRemote = "remote"
)

type ReviewConfig struct {
	Backend     string `mapstructure:"backend" validate:"oneof=file sqlite remote"`
	File        string `mapstructure:"file"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	RemoteURL   string `mapstructure:"remote_url" validate:"required_if=Backend remote,omitempty,url"`
	RemoteToken string `mapstructure:"remote_token"`
}

type ServerConfig struct {
	Port          int        `mapstructure:"port" validate:"min=1,max=65535"`
	BasePath      string     `mapstructure:"base_path"`
	Environment   string     `mapstructure:"environment"`
	JWTSecret     string     `mapstructure:"jwt_secret"`
	TokenTTLHours int        `mapstructure:"token_ttl_hours" validate:"min=1"`
	AdminToken    string     `mapstructure:"admin_token"`
	CORS          CORSConfig `mapstructure:"cors"`
}

// IsLocal reports whether the server runs in the local development environment.
func (c ServerConfig) IsLocal() bool {
	return c.Environment == "local" || c.Environment == "development"
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	ConnectAttempts uint              `mapstructure:"connect_attempts"`
}

type LogConfig struct {
	Level       string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

type TemplatesConfig struct {
	DeckTemplate string `mapstructure:"deck_template" validate:"omitempty,template"`
}

type OutputsConfig struct {
	PrintDirectory string `mapstructure:"print_directory"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/shokyuu")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("lessons.directories", []string{"lessons"})
	v.SetDefault("lessons.custom_decks_file", filepath.Join("data", "custom_decks.yml"))
	v.SetDefault("study.show_transliteration", true)
	v.SetDefault("study.shuffle", true)
	v.SetDefault("review.backend", ReviewBackendFile)
	v.SetDefault("review.file", filepath.Join("data", "review_decks.yml"))
	v.SetDefault("review.sqlite_path", filepath.Join("data", "shokyuu.db"))
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.base_path", "/shokyuucards")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.token_ttl_hours", 24)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "shokyuu")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.connect_attempts", 5)
	v.SetDefault("log.level", "info")
	// Template is optional - if not specified, will use embedded fallback template
	v.SetDefault("templates.deck_template", "")
	v.SetDefault("outputs.print_directory", filepath.Join("outputs", "print"))

	// Secrets are bound to environment variables so they don't have to live in the config file
	for key, env := range map[string]string{
		"server.jwt_secret":   "SHOKYUU_JWT_SECRET",
		"server.admin_token":  "SHOKYUU_ADMIN_TOKEN",
		"server.environment":  "SHOKYUU_ENV",
		"review.remote_token": "SHOKYUU_REMOTE_TOKEN",
		"database.password":   "DB_PASSWORD",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
