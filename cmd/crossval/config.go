package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type config struct {
	Config     string  `mapstructure:"config"`
	Data       string  `mapstructure:"data"`
	Cost       float64 `mapstructure:"cost"`
	Seed       int64   `mapstructure:"seed"`
	LogLevel   string  `mapstructure:"log-level"`
	TestSize   float64 `mapstructure:"test-size"`
	Folds      int     `mapstructure:"folds"`
	Stratified bool    `mapstructure:"stratified"`
	Workers    int     `mapstructure:"workers"`
	Samples    int     `mapstructure:"samples"`
}

// loadConfig merges, from highest precedence, the command line flags,
// CROSSVAL_* environment variables and the config file.
func loadConfig(cmd *cobra.Command) (*config, error) {
	v := viper.New()
	v.SetEnvPrefix("crossval")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, errors.Wrap(err, "bind flags")
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "read config")
		}
	}
	cfg := new(config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return cfg, nil
}
