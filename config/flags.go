// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFlagName    = "config"
	ConfigURLFlagName = "config-url"
)

// BindFlags registers the configuration source flags of cmd. A config value
// of "env" loads the configuration from OMNI prefixed environment variables.
func BindFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(ConfigFlagName, ".", "Path to JSON configuration file or 'env'")
	_ = viper.BindPFlag(ConfigFlagName, cmd.PersistentFlags().Lookup(ConfigFlagName))

	cmd.PersistentFlags().String(ConfigURLFlagName, "", "URL of shared foreign contract configuration")
	_ = viper.BindPFlag(ConfigURLFlagName, cmd.PersistentFlags().Lookup(ConfigURLFlagName))
}

// Load reads the configuration selected by the bound flags.
func Load() (*Config, error) {
	var err error
	configuration := &Config{}

	if url := viper.GetString(ConfigURLFlagName); url != "" {
		configuration, err = GetSharedConfigFromNetwork(url, configuration)
		if err != nil {
			return nil, err
		}
	}

	path := viper.GetString(ConfigFlagName)
	if path == "env" {
		return GetConfigFromENV(configuration)
	}
	return GetConfigFromFile(path, configuration)
}
