/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a character sheet",
	Long: `Prints a saved character. The text format lays the sheet out for a
terminal; yaml and json print the stored document.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		c, err := store.Load(strings.Join(args, " "))
		if err != nil {
			return err
		}

		switch output {
		case "json":
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		case "yaml":
			enc := yaml.NewEncoder(os.Stdout)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(c)
		case "text", "":
			eng, err := newEngine()
			if err != nil {
				return err
			}
			fmt.Println(renderSheet(eng, c))
			return nil
		}
		return fmt.Errorf("unknown output %q (want text, yaml or json)", output)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringP("output", "o", "text", "output format: text, yaml or json")
}
