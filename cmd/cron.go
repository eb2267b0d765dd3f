package cmd

import (
	"adaptivequiz/internal/app"
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "Run the cron hook once and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		timeout, _ := cmd.Flags().GetDuration("timeout")

		application, err := app.NewApp(cfg)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()
		defer application.Close(context.Background())

		worked := application.RunCron(ctx)
		fmt.Fprintf(cmd.OutOrStdout(), "cron finished, work done: %t\n", worked)
		return nil
	},
}

func init() {
	cronCmd.Flags().Duration("timeout", 5*time.Minute, "Upper bound for the run")
}
