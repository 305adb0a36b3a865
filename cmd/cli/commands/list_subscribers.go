package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/db"
)

// ListSubscribersCmd creates the listSubscribers command
func ListSubscribersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listSubscribers <newsletter|trash>",
		Short: "List the broadcast recipients for a subscriber list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var store db.SubscriberStore
			switch args[0] {
			case "newsletter":
				store = app.Newsletter
			case "trash":
				store = app.Trash
			default:
				return fmt.Errorf("unknown list %q: expected newsletter or trash", args[0])
			}

			subscribers, err := store.ListRecipients(app.Ctx)
			if err != nil {
				return err
			}

			if len(subscribers) == 0 {
				fmt.Printf("No active subscribers on the %s list.\n", args[0])
				return nil
			}

			fmt.Printf("\n%d active subscribers on the %s list:\n\n", len(subscribers), args[0])
			for _, sub := range subscribers {
				if sub.Name != "" {
					fmt.Printf("  %s (%s)\n", sub.Email, sub.Name)
				} else {
					fmt.Printf("  %s\n", sub.Email)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
