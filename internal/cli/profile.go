package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"deriverse-cli/internal/analytics/profile"
)

// newProfileCmd creates the trader profile command.
func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the behavioral trader profile",
		Long: `Classify your trading style from hold durations and frequency, run the
behavioral pattern checks (revenge trading, overtrading, cutting winners,
holding losers and more), and summarize strengths, weaknesses and how your
style evolved over the history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.applyFilter(cmd); err != nil {
				return err
			}
			output := NewOutput(cmd)
			p := profile.GenerateWithConfig(app.Session.Trades(), app.Session.Metrics(), app.Config.Profile)

			if output.IsJSON() {
				return output.JSON(p)
			}
			return showProfile(output, p)
		},
	}
	addFilterFlags(cmd)
	return cmd
}

func showProfile(output *Output, p profile.Profile) error {
	output.Box(fmt.Sprintf("Style: %s (%s confidence)", p.Style, FormatConfidence(p.StyleConfidence)),
		[]string{p.StyleDescription})
	output.Println()

	if len(p.Patterns) > 0 {
		output.Bold("Behavioral Patterns")
		for _, pat := range p.Patterns {
			marker := output.DimText("·")
			if pat.Detected {
				switch pat.Severity {
				case profile.SeverityWarning:
					marker = output.Yellow("⚠")
				case profile.SeverityPositive:
					marker = output.Green("✓")
				default:
					marker = output.Cyan("•")
				}
			}
			output.Printf("  %s %s\n", marker, pat.Label)
			if pat.Detected && pat.Description != "" {
				output.Printf("    %s\n", output.DimText(pat.Description))
			}
		}
		output.Println()
	}

	if len(p.Strengths) > 0 {
		output.Bold("Strengths")
		for _, s := range p.Strengths {
			output.Printf("  %s %s\n", output.Green("+"), s)
		}
		output.Println()
	}

	if len(p.Weaknesses) > 0 {
		output.Bold("Weaknesses")
		for _, w := range p.Weaknesses {
			output.Printf("  %s %s\n", output.Red("-"), w)
		}
		output.Println()
	}

	if len(p.OptimalConditions) > 0 {
		output.Bold("Optimal Conditions")
		for _, c := range p.OptimalConditions {
			output.Printf("  %s %s\n", output.Cyan("»"), c)
		}
		output.Println()
	}

	if len(p.Evolution) > 0 {
		output.Bold("Evolution")
		table := NewTable(output, "Period", "Style", "Win Rate", "PnL")
		for _, e := range p.Evolution {
			table.AddRow(
				e.Period,
				string(e.Style),
				fmt.Sprintf("%.2f%%", e.WinRate),
				output.FormatPnL(e.PnL),
			)
		}
		table.Render()
	}

	return nil
}
