/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suderio/bloodline/internal/data"
	"github.com/suderio/bloodline/internal/engine"
	"github.com/suderio/bloodline/internal/persistence"
	"github.com/suderio/bloodline/internal/platform/logger"
	"github.com/suderio/bloodline/internal/rules"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bloodline",
	Short: "Build and track Vampire: The Masquerade (V20) character sheets",
	Long: `bloodline walks a character through the V20 creation phases, enforcing
priority budgets, freebie points and experience costs, and keeps the sheet
up to date during play.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Setup(viper.GetString("log_level"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bloodline.yaml)")
	rootCmd.PersistentFlags().StringP("library_dir", "l", "", "directory holding the character library (default ./library)")
	rootCmd.PersistentFlags().String("store", persistence.KindFile, "storage backend: file, bolt or sqlite")
	rootCmd.PersistentFlags().StringSlice("data_dir", nil, "directories searched for catalog.yaml, in order")
	rootCmd.PersistentFlags().String("log_level", "", "log level: debug, info, notice, warning, error")

	viper.BindPFlag("library_dir", rootCmd.PersistentFlags().Lookup("library_dir"))
	viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	viper.BindPFlag("data_dirs", rootCmd.PersistentFlags().Lookup("data_dir"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))

	viper.SetDefault("library_dir", "./library")
	viper.SetDefault("store", persistence.KindFile)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bloodline")
	}

	viper.SetEnvPrefix("BLOODLINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// dataDirs is the catalog search path: configured directories first, then
// the library's own data folder.
func dataDirs() []string {
	dirs := viper.GetStringSlice("data_dirs")
	return append(dirs, filepath.Join(viper.GetString("library_dir"), "data"))
}

func loadCatalog() (*data.Catalog, error) {
	return data.NewLoader(dataDirs()).LoadCatalog()
}

// newEngine builds the rules engine from the active catalog, pricing
// experience with its xp_costs formulas where present.
func newEngine() (*engine.Engine, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	table, err := rules.NewCostTable(cat.XPCosts)
	if err != nil {
		return nil, fmt.Errorf("failed to compile xp_costs: %w", err)
	}
	for _, o := range table.Overrides() {
		logger.Log.Infof("house rule: %s", o)
	}
	return engine.New(cat, engine.WithPricer(table))
}

func openStore() (persistence.Store, error) {
	return persistence.Open(viper.GetString("store"), viper.GetString("library_dir"))
}
