package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gabrielmiguelok/livefolio/internal/portfolio"
)

var mailtoForm portfolio.ContactForm

var mailtoCmd = &cobra.Command{
	Use:   "mailto",
	Short: "Print the mail link the contact form would open",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		composer := portfolio.Composer{Recipient: cfg.Site.Recipient}
		fmt.Fprintln(cmd.OutOrStdout(), composer.Compose(mailtoForm))
		return nil
	},
}

func init() {
	mailtoCmd.Flags().StringVar(&mailtoForm.Name, "name", "", "sender name")
	mailtoCmd.Flags().StringVar(&mailtoForm.Email, "email", "", "sender email")
	mailtoCmd.Flags().StringVar(&mailtoForm.Message, "message", "", "message body")
	rootCmd.AddCommand(mailtoCmd)
}
