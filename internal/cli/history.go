package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kephothoX/SokoAnalyst/internal/config"
	"github.com/kephothoX/SokoAnalyst/internal/display"
	"github.com/kephothoX/SokoAnalyst/internal/models"
	"github.com/kephothoX/SokoAnalyst/internal/storage"
)

// newHistoryCmd creates the analysis history command
func newHistoryCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [ID]",
		Short: "List or replay stored analyses",
		Long: `Without arguments, lists recent analyses. With an id, replays that
analysis in full.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := storage.GetHistoryStore(cfg)
			if err != nil {
				return fmt.Errorf("history unavailable: %w", err)
			}

			if len(args) == 1 {
				id, err := strconv.ParseInt(args[0], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid analysis id %q", args[0])
				}
				record, err := store.Get(context.Background(), id)
				if err != nil {
					return err
				}
				display.Print(record.Response)
				return nil
			}

			limit, _ := cmd.Flags().GetInt("limit")
			records, err := store.ListRecent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println("No stored analyses yet.")
				return nil
			}

			fmt.Println("📚 Recent analyses:")
			for _, record := range records {
				symbols := ""
				if len(record.Symbols) > 0 {
					symbols = " [" + strings.Join(record.Symbols, ", ") + "]"
				}
				fmt.Printf("  %4d  %s  %s%s\n",
					record.ID, record.CreatedAt.Format("2006-01-02 15:04"), record.Title, symbols)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum number of entries to list")
	return cmd
}

// saveToHistory is best-effort persistence of a formatted response
func saveToHistory(cfg *config.Config, toolType models.ToolType, symbols []string, resp models.FormattedResponse) {
	if !resp.Success {
		return
	}
	store, err := storage.GetHistoryStore(cfg)
	if err != nil {
		if err != storage.ErrDataDirNotConfigured {
			log.Printf("History store unavailable: %v", err)
		}
		return
	}
	if _, err := store.SaveAnalysis(context.Background(), toolType, symbols, resp); err != nil {
		log.Printf("Failed to save analysis to history: %v", err)
	}
}
