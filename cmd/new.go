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

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a blank character in the library",
	Long: `Creates a fresh sheet at phase 1 (Concept) with attributes at their clan
floors, virtues at 1 and the freebie limit of the active catalog, and saves it
to the library.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		clan, _ := cmd.Flags().GetString("clan")

		eng, err := newEngine()
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		s, err := session.Create(eng, store, name)
		if err != nil {
			store.Close()
			return err
		}
		defer s.Close()

		if clan != "" {
			if _, err := s.Execute("concept clan " + clan); err != nil {
				return err
			}
		}
		fmt.Printf("Created %s (%s).\n", s.Character().Concept.Name, s.Character().ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
	newCmd.Flags().StringP("clan", "c", "", "clan to start with")
}
