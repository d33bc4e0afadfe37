package cmd

import (
	"fmt"
	"strings"

	devConfig "github.com/Daskott/contactbook/dev/config"
	"github.com/Daskott/contactbook/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serverConfigFile string

func createServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start a contactbook server",
		Long: `Start the contactbook HTTP API.

Settings are read from the file given with --sconfig & can be overridden by
environment variables, e.g. CONTACTBOOK_LISTENER_PORT=8080.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := serverConfig(serverConfigFile, isDevEnv)
			if err != nil {
				return err
			}

			server.Start(config, isDevEnv)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverConfigFile, "sconfig", "", "config file for the server (required unless --dev)")

	return cmd
}

// serverConfig reads the server config from 'configFile', or from the built-in dev config in dev mode
func serverConfig(configFile string, devMode bool) (*viper.Viper, error) {
	config := viper.New()
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv() // read in environment variables that match

	if devMode && configFile == "" {
		config.SetConfigType("yaml")
		if err := config.ReadConfig(strings.NewReader(devConfig.SERVER_YML)); err != nil {
			return nil, fmt.Errorf("error reading dev server config: %v", err)
		}
		return config, nil
	}

	if configFile == "" {
		return nil, fmt.Errorf("%s a server config file is required, pass it with --sconfig", warningLabel)
	}

	config.SetConfigFile(configFile)
	if err := config.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading server config file: %v", err)
	}

	return config, nil
}
