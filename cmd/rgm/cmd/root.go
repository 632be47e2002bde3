// Package cmd implements the rgm CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/rocketgrowth-margin/internal/api/client"
	"github.com/donaldgifford/rocketgrowth-margin/internal/config"
	"github.com/donaldgifford/rocketgrowth-margin/internal/engine"
)

var (
	cfgFile string
	envFile string
	rootCmd = &cobra.Command{
		Use:   "rgm",
		Short: "Rocket Growth fee and margin calculator",
		Long: "rgm computes Coupang Rocket Growth sales commission, VAT, logistics fees,\n" +
			"net profit and margin for a product. It runs calculations locally or\n" +
			"against a running rgm API server, and can serve that API itself.",
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return config.LoadEnv(envFile)
		},
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "application config file (defaults apply when empty)")
	rootCmd.PersistentFlags().
		StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config is parsed")
	rootCmd.PersistentFlags().
		String("api-url", "http://localhost:8080", "API server URL used with --remote")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		Bool("remote", false, "compute through the API server instead of locally")

	cobra.CheckErr(viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("remote", rootCmd.PersistentFlags().Lookup("remote")))

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(calcCommand())
	rootCmd.AddCommand(analyzeCommand())
	rootCmd.AddCommand(feesCommand())
	rootCmd.AddCommand(categoryCommand())
	rootCmd.AddCommand(versionCommand())
}

// initConfig reads CLI settings (api_url, output, remote) from ~/.rgm.yaml and
// RGM_* environment variables.
func initConfig() {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(home)
	}
	viper.SetConfigType("yaml")
	viper.SetConfigName(".rgm")

	viper.SetEnvPrefix("RGM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig returns the application config named by --config, or the
// defaults when none is given.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newEngine builds a local engine from the application config.
func newEngine() (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return engine.NewEngine(cfg.Fees.Schedule(), engine.WithPreferences(cfg.Preferences)), nil
}

func newClient() *apiclient.Client {
	return apiclient.New(viper.GetString("api_url"), apiclient.WithUserAgent("rgm/"+Version))
}

func remote() bool {
	return viper.GetBool("remote")
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
