package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/services"
)

// SendTrashRemindersCmd creates the sendTrashReminders command
func SendTrashRemindersCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sendTrashReminders",
		Short: "Send trash pickup reminders to active subscribers",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.SendTrashReminders(
				app.Ctx,
				app.Trash,
				app.GmailClient,
				app.Cfg,
				app.Logger,
			)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Trash reminders completed!\n\n")

			if len(result.Sent) > 0 {
				fmt.Printf("Reminders sent to %d subscribers:\n", len(result.Sent))
				for _, email := range result.Sent {
					fmt.Printf("  ✓ %s\n", email)
				}
				fmt.Println()
			}

			if len(result.Failed) > 0 {
				fmt.Printf("⚠️  Failed to send %d reminders:\n", len(result.Failed))
				for _, fe := range result.Failed {
					fmt.Printf("  ✗ %s: %s\n", fe.Email, fe.Error)
				}
				fmt.Println()
			}

			if len(result.Sent) == 0 && len(result.Failed) == 0 {
				fmt.Println("No active trash reminder subscribers.")
			}

			return nil
		},
	}
}
