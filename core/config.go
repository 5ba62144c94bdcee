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
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const defaultConfigFile = "identus.yaml"
const configFileFlag = "configfile"
const dotEnvFileFlag = "dotenvfile"

const defaultPrefix = "IDENTUS_"
const defaultDelimiter = "."
const configValueListSeparator = ","

// scalarKeys are never split into lists: URLs and file paths may contain the list separator.
var scalarKeys = map[string]bool{
	"url":          true,
	"http.address": true,
	configFileFlag: true,
	dotEnvFileFlag: true,
}

func loadFromFile(configMap *koanf.Koanf, filepath string) error {
	if filepath == "" {
		return nil
	}
	configFileProvider := file.Provider(filepath)
	// load file
	if err := configMap.Load(configFileProvider, yaml.Parser()); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// loadDotEnv loads variables from the given .env file into the process environment.
// Variables that are already set take precedence, and a missing file is not an error.
func loadDotEnv(filepath string) error {
	if filepath == "" {
		return nil
	}
	if err := godotenv.Load(filepath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func envKey(rawKey string) string {
	return strings.Replace(strings.ToLower(strings.TrimPrefix(rawKey, defaultPrefix)), "_", defaultDelimiter, -1)
}

func loadFromEnv(configMap *koanf.Koanf) error {
	e := env.ProviderWithValue(defaultPrefix, defaultDelimiter, func(rawKey string, rawValue string) (string, interface{}) {
		key := envKey(rawKey)

		// Support multiple values separated by a comma
		if !scalarKeys[key] && strings.Contains(rawValue, configValueListSeparator) {
			values := strings.Split(rawValue, configValueListSeparator)
			for i, value := range values {
				values[i] = strings.TrimSpace(value)
			}
			return key, values
		}

		// Just a single value
		return key, rawValue
	})
	// errors can't occur for this provider
	return configMap.Load(e, nil)
}

// loadFromFlagSet loads the flags into the config map. Defaults are only applied for keys that don't exist yet,
// changed flags always override.
func loadFromFlagSet(configMap *koanf.Koanf, flags *pflag.FlagSet) error {
	return configMap.Load(posflag.Provider(flags, defaultDelimiter, configMap), nil)
}

// resolveFilePath resolves the value of a file path flag (config file, .env file) using the following sources:
// 1. commandline params (using the given flags)
// 2. environment vars,
// 3. default location.
func resolveFilePath(flags *pflag.FlagSet, key string) string {
	k := koanf.New(defaultDelimiter)

	// load env flags, can't return error
	_ = k.Load(env.Provider(defaultPrefix, defaultDelimiter, envKey), nil)

	// load cmd flags, without a parser no error can be returned.
	// Flag defaults don't override values from the environment, changed flags do.
	_ = k.Load(posflag.Provider(flags, defaultDelimiter, k), nil)

	return k.String(key)
}
