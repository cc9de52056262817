// Package config loads the application configuration from YAML with
// reflective struct-tag defaults.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var configLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	configLogger = l
}

// Config represents the complete configuration structure
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Editor   EditorConfig   `yaml:"editor"`
	AI       AIConfig       `yaml:"ai"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type SiteConfig struct {
	Name        string `yaml:"name" default:"Inkhorn"`
	Description string `yaml:"description" default:"A personal writing desk and publishing pipeline"`
}

type ServerConfig struct {
	Host string `yaml:"host" default:"0.0.0.0"`
	Port string `yaml:"port" default:"12700"`
}

type DatabaseConfig struct {
	Path string `yaml:"path" default:"./inkhorn.db"`
}

type AutosaveConfig struct {
	Enabled         bool `yaml:"enabled" default:"true"`
	IntervalSeconds int  `yaml:"interval_seconds" default:"30"`
}

// EditorConfig carries editor session preferences. These used to live in
// browser-local storage; they are explicit configuration now.
type EditorConfig struct {
	FontSize       int `yaml:"font_size" default:"16"`
	DailyGoalWords int `yaml:"daily_goal_words" default:"500"`
}

type AIConfig struct {
	Enabled   bool   `yaml:"enabled" default:"true"`
	Model     string `yaml:"model" default:"claude-sonnet-4-0"`
	MaxTokens int    `yaml:"max_tokens" default:"2048"`
}

type StorageConfig struct {
	// Backend selects the image store: "fs" or "s3".
	Backend string   `yaml:"backend" default:"fs"`
	Dir     string   `yaml:"dir" default:"./uploads"`
	BaseURL string   `yaml:"base_url" default:"/uploads/"`
	S3      S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket    string `yaml:"bucket"`
	Endpoint  string `yaml:"endpoint"`
	PublicURL string `yaml:"public_url"`
}

type LoggingConfig struct {
	Level string `yaml:"level" default:"info"`
}

// AppConfig is the loaded application configuration.
var AppConfig *Config

// LoadConfig reads the config file at path, falling back to defaults when
// the file does not exist.
func LoadConfig(path string) error {
	config := &Config{}

	// Apply default values first
	applyDefaults(config)

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, just use defaults
		configLogger.Info().Str("path", path).Msg("Config file not found, using defaults")
		AppConfig = config
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	AppConfig = config
	return nil
}

func ApplyDefaults(config interface{}) {
	applyDefaults(config)
}

func applyDefaults(config interface{}) {
	v := reflect.ValueOf(config)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return
	}

	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.IsValid() || !field.CanSet() {
			continue
		}

		// Recursively apply defaults to nested structs
		if field.Kind() == reflect.Struct {
			applyDefaults(field.Addr().Interface())
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		if defaultValue == "" {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(defaultValue)
		case reflect.Bool:
			if val, err := strconv.ParseBool(defaultValue); err == nil {
				field.SetBool(val)
			}
		case reflect.Int:
			if val, err := strconv.ParseInt(defaultValue, 10, 64); err == nil {
				field.SetInt(val)
			}
		case reflect.Float64:
			if val, err := strconv.ParseFloat(defaultValue, 64); err == nil {
				field.SetFloat(val)
			}
		case reflect.Slice:
			if field.Len() == 0 && field.Type().Elem().Kind() == reflect.String {
				parts := strings.Split(defaultValue, ",")
				slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
				for j, part := range parts {
					slice.Index(j).SetString(strings.TrimSpace(part))
				}
				field.Set(slice)
			}
		default:
			configLogger.Warn().
				Str("field_name", fieldType.Name).
				Str("field_type", field.Kind().String()).
				Msg("Unsupported field type for default value")
		}
	}
}
