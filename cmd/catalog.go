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
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the active trait catalog",
	Long: `Prints the catalog bloodline is using as YAML: the first catalog.yaml
found in the data directories, or the built-in V20 catalog.

With --init the catalog is written to <library_dir>/data/catalog.yaml so it
can be edited as house rules.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		initialize, _ := cmd.Flags().GetBool("init")
		force, _ := cmd.Flags().GetBool("force")

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		if !initialize {
			return data.Dump(os.Stdout, cat)
		}

		dir := filepath.Join(viper.GetString("library_dir"), "data")
		path := filepath.Join(dir, data.CatalogFile)
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists; use --force to overwrite it", path)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := data.Dump(f, cat); err != nil {
			return err
		}
		fmt.Printf("Catalog written to %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().Bool("init", false, "write the catalog into the library for editing")
	catalogCmd.Flags().Bool("force", false, "overwrite an existing catalog.yaml")
}
