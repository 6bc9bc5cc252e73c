package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apperrors "tradetrackr/internal/errors"
	"tradetrackr/internal/models"
	"tradetrackr/internal/store"
)

// addNoteCommands adds journal note commands.
func addNoteCommands(rootCmd *cobra.Command, app *App) {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Journal notes and reflections",
	}

	cmd.AddCommand(newNoteAddCmd(app))
	cmd.AddCommand(newNoteListCmd(app))
	cmd.AddCommand(newNoteDeleteCmd(app))

	rootCmd.AddCommand(cmd)
}

func newNoteAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Add a journal note",
		Example: `  tradetrackr note add "Forced the entry before confirmation." --trade AAPL-1741014000 --mood frustrated
  tradetrackr note add "Patience paid off today." --tags discipline`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.Wrap(apperrors.ErrDatabaseError, "store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			tradeID, _ := cmd.Flags().GetString("trade")
			mood, _ := cmd.Flags().GetString("mood")
			tagsFlag, _ := cmd.Flags().GetString("tags")

			var tags []string
			if tagsFlag != "" {
				tags = strings.Split(tagsFlag, ",")
			}

			now := time.Now()
			entry := models.JournalEntry{
				ID:      fmt.Sprintf("note-%d", now.UnixNano()),
				TradeID: tradeID,
				Date:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
				Content: args[0],
				Tags:    tags,
				Mood:    mood,
			}

			if err := app.Store.SaveJournalEntry(ctx, &entry); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(entry)
			}
			output.Success("Note added: %s", entry.ID)
			return nil
		},
	}

	cmd.Flags().String("trade", "", "trade ID this note refers to")
	cmd.Flags().String("mood", "", "mood label (e.g. calm, frustrated)")
	cmd.Flags().String("tags", "", "comma-separated tags")

	return cmd
}

func newNoteListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.Wrap(apperrors.ErrDatabaseError, "store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			filter := store.JournalFilter{}
			filter.TradeID, _ = cmd.Flags().GetString("trade")
			filter.Limit, _ = cmd.Flags().GetInt("limit")
			if v, _ := cmd.Flags().GetString("tag"); v != "" {
				filter.Tags = []string{v}
			}

			entries, err := app.Store.GetJournal(ctx, filter)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(entries)
			}
			if len(entries) == 0 {
				output.Info("No notes found.")
				return nil
			}

			for _, e := range entries {
				header := FormatDate(e.Date)
				if e.TradeID != "" {
					header += "  " + output.Cyan(e.TradeID)
				}
				if e.Mood != "" {
					header += "  " + output.DimText("("+e.Mood+")")
				}
				output.Bold("%s", header)
				output.Printf("  %s\n", e.Content)
				if len(e.Tags) > 0 {
					output.Dim("  tags: %s", strings.Join(e.Tags, ", "))
				}
				output.Println()
			}
			return nil
		},
	}

	cmd.Flags().String("trade", "", "filter by trade ID")
	cmd.Flags().String("tag", "", "filter by tag")
	cmd.Flags().Int("limit", 0, "maximum number of notes")

	return cmd
}

func newNoteDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <note-id>",
		Short: "Delete a journal note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.Store == nil {
				return apperrors.Wrap(apperrors.ErrDatabaseError, "store not initialized")
			}
			ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
			defer cancel()

			if err := app.Store.DeleteJournalEntry(ctx, args[0]); err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]string{"deleted": args[0]})
			}
			output.Success("Deleted note %s", args[0])
			return nil
		},
	}
}
