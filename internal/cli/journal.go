package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "deriverse-cli/internal/errors"
	"deriverse-cli/internal/journal"
	"deriverse-cli/internal/models"
)

// newJournalCmd creates the trade journal command group.
func newJournalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "View and annotate trades",
		Long: `Inspect individual trades and annotate them with emotion, setup,
execution grade and notes. Annotations feed the behavioral profile and the
emotion and setup insights.`,
	}

	cmd.AddCommand(newJournalListCmd(app))
	cmd.AddCommand(newJournalShowCmd(app))
	cmd.AddCommand(newJournalSetCmd(app))

	return cmd
}

func newJournalListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades in the selected period",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.applyFilter(cmd); err != nil {
				return err
			}
			output := NewOutput(cmd)
			trades := app.Session.Trades()

			limit, _ := cmd.Flags().GetInt("limit")
			if limit > 0 && len(trades) > limit {
				trades = trades[len(trades)-limit:]
			}

			if output.IsJSON() {
				return output.JSON(trades)
			}

			if len(trades) == 0 {
				output.Warning("No trades in the selected period.")
				return nil
			}

			table := NewTable(output, "ID", "Open", "Symbol", "Side", "Size", "PnL", "Emotion", "Grade")
			for _, t := range trades {
				emotion, grade := "", ""
				if t.Journal != nil {
					emotion = string(t.Journal.Emotion)
					grade = string(t.Journal.Grade)
				}
				table.AddRow(
					t.ID,
					FormatDateTime(t.OpenTime),
					t.Symbol,
					string(t.Side),
					fmt.Sprintf("%.4f", t.Size),
					output.FormatPnL(t.PnL),
					emotion,
					grade,
				)
			}
			table.Render()
			return nil
		},
	}
	addFilterFlags(cmd)
	cmd.Flags().Int("limit", 20, "show at most this many most recent trades (0 for all)")
	return cmd
}

func newJournalShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show one trade in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			t, err := findTrade(app, args[0])
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(t)
			}

			output.Bold("Trade %s", t.ID)
			output.Printf("  %s %s %s @ %.4f → %.4f\n", t.Symbol, t.Side, t.Instrument, t.EntryPrice, t.ExitPrice)
			output.Printf("  Open:     %s\n", FormatDateTime(t.OpenTime))
			output.Printf("  Close:    %s (%s)\n", FormatDateTime(t.CloseTime), FormatDuration(t.Duration()))
			output.Printf("  Size:     %.4f  (%.0fx leverage)\n", t.Size, t.Leverage)
			output.Printf("  PnL:      %s\n", output.FormatPnL(t.PnL))
			output.Printf("  Fees:     %s (entry %.2f, exit %.2f, funding %.2f)\n",
				FormatCurrency(t.Fees.Total), t.Fees.Entry, t.Fees.Exit, t.Fees.Funding)
			output.Printf("  Order:    %s\n", t.OrderType)

			if t.Options != nil {
				output.Println()
				output.Bold("Options")
				output.Printf("  %s %.0f exp %s, IV %.1f%%\n",
					t.Options.Type, t.Options.Strike, FormatDate(t.Options.Expiry), t.Options.IV*100)
				output.Printf("  %s\n", FormatGreeks(t.Options.Greeks.Delta, t.Options.Greeks.Gamma, t.Options.Greeks.Theta, t.Options.Greeks.Vega))
			}

			if t.Journal != nil {
				output.Println()
				output.Bold("Journal")
				output.Printf("  Emotion:  %s\n", t.Journal.Emotion)
				output.Printf("  Setup:    %s\n", t.Journal.Setup)
				output.Printf("  Grade:    %s\n", t.Journal.Grade)
				if t.Journal.PreTradeNote != "" {
					output.Printf("  Pre:      %s\n", t.Journal.PreTradeNote)
				}
				if t.Journal.PostTradeNote != "" {
					output.Printf("  Post:     %s\n", t.Journal.PostTradeNote)
				}
			} else {
				output.Println()
				output.Dim("No journal entry. Use 'deriverse journal set %s' to annotate.", t.ID)
			}
			return nil
		},
	}
}

func newJournalSetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <trade-id>",
		Short: "Annotate a trade",
		Long: `Merge journal fields into a trade. Only the flags you pass change;
an unannotated trade starts from neutral/other/C defaults. The edit applies
to the in-memory session: pipe 'deriverse export' afterwards to persist.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if _, err := findTrade(app, args[0]); err != nil {
				return err
			}

			var patch journal.Patch
			if v, _ := cmd.Flags().GetString("emotion"); v != "" {
				e, err := parseEmotion(v)
				if err != nil {
					return err
				}
				patch.Emotion = &e
			}
			if v, _ := cmd.Flags().GetString("setup"); v != "" {
				s, err := parseSetup(v)
				if err != nil {
					return err
				}
				patch.Setup = &s
			}
			if v, _ := cmd.Flags().GetString("grade"); v != "" {
				g, err := parseGrade(v)
				if err != nil {
					return err
				}
				patch.Grade = &g
			}
			if cmd.Flags().Changed("pre") {
				v, _ := cmd.Flags().GetString("pre")
				patch.PreTradeNote = &v
			}
			if cmd.Flags().Changed("post") {
				v, _ := cmd.Flags().GetString("post")
				patch.PostTradeNote = &v
			}

			app.Session.UpdateJournal(args[0], patch)

			t, err := findTrade(app, args[0])
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(t)
			}
			output.Success("✓ Journal updated for %s", args[0])
			return nil
		},
	}

	cmd.Flags().String("emotion", "", "emotion tag (disciplined, fomo, revenge, fearful, greedy, neutral)")
	cmd.Flags().String("setup", "", "setup tag (breakout, mean-reversion, trend, range, news, other)")
	cmd.Flags().String("grade", "", "execution grade (A, B, C, D)")
	cmd.Flags().String("pre", "", "pre-trade note")
	cmd.Flags().String("post", "", "post-trade note")
	return cmd
}

// findTrade looks a trade up by ID in the unfiltered history.
func findTrade(app *App, id string) (models.Trade, error) {
	for _, t := range app.Session.AllTrades() {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Trade{}, apperrors.Wrapf(apperrors.ErrTradeNotFound, "%q", id)
}

func parseEmotion(v string) (models.Emotion, error) {
	switch e := models.Emotion(v); e {
	case models.EmotionDisciplined, models.EmotionFOMO, models.EmotionRevenge,
		models.EmotionFearful, models.EmotionGreedy, models.EmotionNeutral:
		return e, nil
	}
	return "", apperrors.NewValidationError("emotion", v, "unknown emotion tag")
}

func parseSetup(v string) (models.Setup, error) {
	switch s := models.Setup(v); s {
	case models.SetupBreakout, models.SetupMeanReversion, models.SetupTrend,
		models.SetupRange, models.SetupNews, models.SetupOther:
		return s, nil
	}
	return "", apperrors.NewValidationError("setup", v, "unknown setup tag")
}

func parseGrade(v string) (models.Grade, error) {
	switch g := models.Grade(v); g {
	case models.GradeA, models.GradeB, models.GradeC, models.GradeD:
		return g, nil
	}
	return "", apperrors.NewValidationError("grade", v, "grade must be A, B, C or D")
}
