// ABOUTME: Notify command feeding a raw push payload through the dispatch pipeline
// ABOUTME: Renders accepted notifications to the terminal for inspection

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nvdw/otacheck/internal/obs"
	"github.com/nvdw/otacheck/internal/push"
)

// terminalNotifier prints notifications to stdout, standing in for the OS
// notification surface when exercising the pipeline from the CLI.
type terminalNotifier struct{}

func (terminalNotifier) Notify(n push.Notification) error {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Printf("[%d] %s\n", n.ID, bold(n.Title))
	fmt.Printf("    %s\n", n.Body)
	if n.Target.Kind == push.TargetNewsItem {
		fmt.Printf("    opens news item %d\n", n.Target.NewsItemID)
	}
	return nil
}

var notifyCmd = &cobra.Command{
	Use:   "notify [payload.json]",
	Short: "Run a push payload through the notification pipeline",
	Long: `Reads a flat JSON object of string key/value pairs (the deferred push
payload) from the given file, or stdin when no file is given, and runs it
through the same decode and gating pipeline a real push delivery uses.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw []byte
		var err error
		if len(args) == 1 {
			raw, err = os.ReadFile(args[0])
		} else {
			raw, err = io.ReadAll(os.Stdin)
		}
		if err != nil {
			return fmt.Errorf("failed to read payload: %w", err)
		}

		var payload map[string]string
		if err := json.Unmarshal(raw, &payload); err != nil {
			return fmt.Errorf("payload is not a flat JSON string map: %w", err)
		}

		dispatcher := push.NewDispatcher(prefsStore, newsStore, terminalNotifier{}, obs.NewLogger())
		outcome := dispatcher.Dispatch(payload)
		if outcome != push.Rendered {
			fmt.Printf("Not rendered: %s\n", outcome)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}
