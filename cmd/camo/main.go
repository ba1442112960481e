package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackcoderx/camo/pkg/core"
	"github.com/blackcoderx/camo/pkg/core/tools"
	"github.com/blackcoderx/camo/pkg/logger"
)

var version = "dev"

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "camo",
		Short: "Camo - browser-impersonated HTTP requests over MCP",
		Long: `Camo is an MCP server that lets AI assistants make HTTP requests carrying
a real browser TLS fingerprint. It exposes two tools: "request" for single
HTTP requests and "upload" for multipart file uploads. Run it from your MCP
client configuration; it speaks the protocol over stdin/stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if it exists (optional, warn if malformed)
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load .env file: %v\n", err)
			}

			log := logger.New(logger.Config{
				Level: viper.GetString("log_level"),
				JSON:  viper.GetBool("log_json"),
			})

			registry := core.NewRegistry(
				tools.NewRequestTool(),
				tools.NewUploadTool(),
			)
			srv := core.NewServer(version, registry, log)

			log.Info("starting camo MCP server", "version", version, "tools", len(registry.Tools()))
			return srv.ServeStdio()
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .camo/config.json)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "log in JSON format")
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".camo")
		viper.SetConfigType("json")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("camo")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
