package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// RenderConfig holds configuration for the render command. The
// artifact comes from the In file, or from postgres when PGDSN is
// set.
type RenderConfig struct {
	In       string
	Dot      string
	Image    string
	Format   string
	PGDSN    string
	TraceID  string
	LogLevel string
}

// LoadRender merges config file, environment variables, and flags
// into RenderConfig.
func LoadRender(cfgFile string, flags *pflag.FlagSet) (RenderConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("TRACEGRAPH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("dot", "./data/graph.dot")
	v.SetDefault("format", "png")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return RenderConfig{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return RenderConfig{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return RenderConfig{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := RenderConfig{
		In:       v.GetString("in"),
		Dot:      v.GetString("dot"),
		Image:    v.GetString("image"),
		Format:   v.GetString("format"),
		PGDSN:    v.GetString("pg-dsn"),
		TraceID:  v.GetString("trace-id"),
		LogLevel: v.GetString("log-level"),
	}

	return cfg, nil
}
