package main

import (
	"os"

	"github.com/portwarden/portwarden/app"
	"github.com/portwarden/portwarden/pkg/logger"
	"github.com/spf13/cobra"
)

func main() {
	var (
		configName string
		configDir  string
		logLevel   string
		logConsole bool
	)

	rootCmd := &cobra.Command{
		Use:   "portwarden",
		Short: "Observe, filter and terminate processes and containers holding network ports",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.InitLogger(logLevel, logConsole)
			restApp, err := app.NewRestApp(configName, configDir)
			if err != nil {
				return err
			}
			restApp.Run()
			return nil
		},
	}

	rootCmd.Flags().StringVar(&configName, "config", "", "config file name without extension (default \"portwarden\")")
	rootCmd.Flags().StringVar(&configDir, "config-dir", "", "directory searched for the config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&logConsole, "log-console", true, "human-readable console output instead of JSON")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
