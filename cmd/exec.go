/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suderio/bloodline/internal/session"
)

var execCmd = &cobra.Command{
	Use:   "exec [name] [command...]",
	Short: "Run one editor command against a character",
	Long: `Runs a single editor command and saves the result, for scripting.
Usage:
	bloodline exec Ash set attr Strength 3
	bloodline exec Ash priority abil Talents 13`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		s, err := session.Open(eng, store, args[0])
		if err != nil {
			store.Close()
			return err
		}
		defer s.Close()

		lines, err := s.Execute(strings.Join(args[1:], " "))
		for _, l := range lines {
			fmt.Println(l)
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
}
