package cmd

import (
	"adaptivequiz/internal/app"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and run the cron hook on schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg.ForceMigrate, _ = cmd.Flags().GetBool("migrate")

		application, err := app.NewApp(cfg)
		if err != nil {
			return err
		}
		return application.Run()
	},
}

func init() {
	serveCmd.Flags().Bool("migrate", false, "Migrate the database on startup even in release mode")
}
