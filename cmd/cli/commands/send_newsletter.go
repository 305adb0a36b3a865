package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jking7988/Cypressdale-HOA-sub000/pkg/core/services"
)

// SendNewsletterCmd creates the sendNewsletter command
func SendNewsletterCmd(app *AppContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sendNewsletter",
		Short: "Send the newsletter to active verified subscribers if there are new posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := services.SendNewsletter(
				app.Ctx,
				app.Newsletter,
				app.Runs,
				app.Content,
				app.GmailClient,
				app.Cfg,
				app.Logger,
				force,
			)
			if err != nil {
				return err
			}

			if result.Skipped {
				fmt.Printf("\nNewsletter not sent: %s\n", result.SkipReason)
				return nil
			}

			fmt.Printf("\n✓ Newsletter sent!\n\n")
			fmt.Printf("Sent to %d subscribers:\n", len(result.Sent))
			for _, email := range result.Sent {
				fmt.Printf("  ✓ %s\n", email)
			}
			fmt.Println()

			if len(result.Failed) > 0 {
				fmt.Printf("⚠️  Failed to send %d emails:\n", len(result.Failed))
				for _, fe := range result.Failed {
					fmt.Printf("  ✗ %s: %s\n", fe.Email, fe.Error)
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Send even if no posts are newer than the last run")

	return cmd
}
