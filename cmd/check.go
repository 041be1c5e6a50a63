/*
Copyright © 2026 Paulo Suderio
*/
package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/suderio/bloodline/internal/engine"
)

type checkReport struct {
	name     string
	progress engine.Progress
	problems []string
}

// audit flags sheets whose ledgers disagree with the active rules. These
// only arise from documents edited outside bloodline or from catalog changes.
func audit(e *engine.Engine, c *engine.Character) []string {
	var problems []string
	if b := e.FreebieBreakdown(c); b.Remaining() < 0 {
		problems = append(problems, fmt.Sprintf("freebies overspent: %d of %d", b.Spent, b.Available))
	}
	if c.XPBalance() < 0 {
		problems = append(problems, fmt.Sprintf("experience overspent: %d of %d", c.SpentXP(), c.XPEarned))
	}
	if c.Status.TempWillpower > c.Status.Willpower {
		problems = append(problems, "temporary Willpower above permanent")
	}
	if limit := e.BloodLimits(c).MaxBlood; c.Status.BloodPool > limit {
		problems = append(problems, fmt.Sprintf("blood pool %d above the generation maximum %d", c.Status.BloodPool, limit))
	}
	return problems
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every character in the library",
	Long: `Loads every saved character, runs the phase checker and audits the
freebie and experience ledgers against the active catalog.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		names, err := store.List()
		if err != nil {
			return err
		}

		bar := progressbar.Default(int64(len(names)), "Checking characters")
		reports := make([]checkReport, 0, len(names))
		for _, name := range names {
			c, err := store.Load(name)
			if err != nil {
				reports = append(reports, checkReport{name: name, problems: []string{err.Error()}})
				bar.Add(1)
				continue
			}
			reports = append(reports, checkReport{
				name:     name,
				progress: eng.EvaluateProgress(c),
				problems: audit(eng, c),
			})
			bar.Add(1)
		}
		fmt.Println()

		failed := 0
		for _, r := range reports {
			status := fmt.Sprintf("phase %d (%s)", r.progress.Current, engine.PhaseName(r.progress.Current))
			switch {
			case r.progress.Ready:
				status += ", ready for play"
			case r.progress.NextIncomplete > 0:
				status += fmt.Sprintf(", %s incomplete", engine.PhaseName(r.progress.NextIncomplete))
			}
			fmt.Printf("%s: %s\n", r.name, status)
			for _, p := range r.problems {
				fmt.Println("  " + errorStyle.Render(p))
			}
			if len(r.problems) > 0 {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d characters have problems", failed, len(reports))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
