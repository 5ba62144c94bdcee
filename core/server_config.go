/*
 * Copyright (C) 2025 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// ServerConfig has global server settings.
type ServerConfig struct {
	Verbosity    string     `koanf:"verbosity"`
	LoggerFormat string     `koanf:"loggerformat"`
	Strictmode   bool       `koanf:"strictmode"`
	HTTP         HTTPConfig `koanf:"http"`
	configMap    *koanf.Koanf
}

// HTTPConfig contains configuration for the HTTP interface.
type HTTPConfig struct {
	// Address holds the interface address the HTTP service must be bound to, in the format of `interface:port` (e.g. localhost:8080).
	Address string `koanf:"address"`
	// RateLimit is the number of internal API calls per second that may reach the issuer. Zero disables rate limiting.
	RateLimit float64 `koanf:"ratelimit"`
	// RateLimitBurst is the number of calls allowed in a burst before RateLimit applies.
	RateLimitBurst int `koanf:"ratelimitburst"`
}

// NewServerConfig creates an initialized empty server config
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		configMap: koanf.New(defaultDelimiter),
	}
}

// Load loads the server config following the load order of flag defaults, .env file, config file, env vars and then commandline params.
// It also configures logging.
func (ngc *ServerConfig) Load(flags *pflag.FlagSet) error {
	if err := ngc.loadConfigMap(flags); err != nil {
		return err
	}

	if err := ngc.configMap.UnmarshalWithConf("", ngc, koanf.UnmarshalConf{
		FlatPaths: false,
	}); err != nil {
		return err
	}

	return configureLogging(ngc.Verbosity, ngc.LoggerFormat)
}

// loadConfigMap populates the configMap with values from the config file, environment and pFlags
func (ngc *ServerConfig) loadConfigMap(flags *pflag.FlagSet) error {
	ngc.configMap = koanf.New(defaultDelimiter)

	if err := loadDotEnv(resolveFilePath(flags, dotEnvFileFlag)); err != nil {
		return err
	}

	if err := loadFromFile(ngc.configMap, resolveFilePath(flags, configFileFlag)); err != nil {
		return err
	}

	if err := loadFromEnv(ngc.configMap); err != nil {
		return err
	}

	return loadFromFlagSet(ngc.configMap, flags)
}

// FlagSet returns the default server flags
func FlagSet() *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flagSet.String(configFileFlag, defaultConfigFile, "Config file (YAML). A missing file is ignored.")
	flagSet.String(dotEnvFileFlag, ".env", "File with environment variables to load before reading the environment. Variables already set in the environment take precedence.")
	flagSet.String("verbosity", "info", "Log level (trace, debug, info, warn, error)")
	flagSet.String("loggerformat", "text", "Log format (text, json)")
	flagSet.String("http.address", ":8080", "Address and port the server will be listening to")
	flagSet.Float64("http.ratelimit", 10, "Maximum number of nonce API requests per second forwarded to the issuer, 0 disables the limit.")
	flagSet.Int("http.ratelimitburst", 20, "Number of nonce API requests allowed in a burst.")
	flagSet.Bool("strictmode", true, "When set, insecure settings are forbidden (e.g. plain HTTP issuer URLs).")
	return flagSet
}

// PrintConfig returns the current config in YAML form.
func (ngc *ServerConfig) PrintConfig() string {
	data, err := yaml.Marshal(ngc.configMap.Raw())
	if err != nil {
		return err.Error()
	}
	return string(data)
}

// InjectIntoEngine takes the loaded config and sets the engine's config struct.
// An empty ConfigKey means the engine reads its properties from the root of the config.
func (ngc *ServerConfig) InjectIntoEngine(e Injectable) error {
	return ngc.configMap.UnmarshalWithConf(e.ConfigKey(), e.Config(), koanf.UnmarshalConf{
		FlatPaths: false,
	})
}
