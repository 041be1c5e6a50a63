/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/suderio/bloodline/internal/session"
)

var editCmd = &cobra.Command{
	Use:   "edit [name]",
	Short: "Open the interactive sheet editor",
	Long: `Starts the editor for a saved character. Every accepted command is saved
immediately.
Usage:
	> priority attr Physical 7
	> set attr Strength 3
	> next`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		app, err := session.Open(eng, store, strings.Join(args, " "))
		if err != nil {
			store.Close()
			return err
		}
		defer app.Close()

		return RunTUI(app)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
