//
//  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fogfish/rn"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config of the command line tool. Values come from flags, RN_* environment
// variables and rn.yaml, in that order of precedence.
type Config struct {
	Authority int    `mapstructure:"authority"`
	Instance  int    `mapstructure:"instance"`
	Type      int    `mapstructure:"type"`
	Version   int    `mapstructure:"version"`
	LockDir   string `mapstructure:"lock_dir"`
	NoLock    bool   `mapstructure:"no_lock"`
	Legacy    bool   `mapstructure:"legacy"`
	Log       struct {
		Level  string `mapstructure:"level"`
		Pretty bool   `mapstructure:"pretty"`
	} `mapstructure:"log"`
}

// config keys and flags they are bound to
var flagKeys = map[string]string{
	"authority":  "authority",
	"instance":   "instance",
	"type":       "type",
	"version":    "version",
	"lock_dir":   "lock-dir",
	"no_lock":    "no-lock",
	"legacy":     "legacy",
	"log.level":  "log-level",
	"log.pretty": "log-pretty",
}

func setFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "directory of rn.yaml")
	fs.Int("authority", 0, "issuing authority (1000..9999)")
	fs.Int("instance", 0, "deployment instance (0..999)")
	fs.Int("type", 0, "type of referenced entity (0..99)")
	fs.Int("version", 0, "version digit of issued numbers (0..9)")
	fs.String("lock-dir", os.TempDir(), "directory of host lock files")
	fs.Bool("no-lock", false, "disable host lock")
	fs.Bool("legacy", false, "use calendar layout with legacy alphabet")
	fs.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	fs.Bool("log-pretty", false, "human readable logs")
}

/*

loadConfig reads configuration from rn.yaml, environment and flags
*/
func loadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetConfigName("rn")
	v.SetConfigType("yaml")
	if dir, _ := fs.GetString("config"); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("RN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, flag := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// layout of reference numbers selected by configuration
func (cfg *Config) layout() *rn.Layout {
	if cfg.Legacy {
		return rn.Calendar.WithCodec(rn.LegacyCodec)
	}
	return rn.Canonical
}

// tuple of reference numbers issued by the tool
func (cfg *Config) tuple() (rn.Authority, rn.Instance, rn.Type, rn.Version, error) {
	a, err := rn.NewAuthority(cfg.Authority)
	if err != nil {
		return rn.Authority{}, rn.Instance{}, rn.Type{}, rn.Version{}, err
	}

	i, err := rn.NewInstance(cfg.Instance)
	if err != nil {
		return rn.Authority{}, rn.Instance{}, rn.Type{}, rn.Version{}, err
	}

	t, err := rn.NewType(cfg.Type)
	if err != nil {
		return rn.Authority{}, rn.Instance{}, rn.Type{}, rn.Version{}, err
	}

	v, err := rn.NewVersion(cfg.Version)
	if err != nil {
		return rn.Authority{}, rn.Instance{}, rn.Type{}, rn.Version{}, err
	}

	return a, i, t, v, nil
}
