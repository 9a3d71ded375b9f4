package cmd

import (
	"github.com/joho/godotenv"
	"github.com/jsphweid/voicelead/constants"
	"github.com/jsphweid/voicelead/logger"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "voicelead",
	Short:   "Voice-leads chord progressions",
	Long:    `Turns timed chord symbols or pitch-class sets into smoothly voice-led notes and MIDI files.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// a missing .env is fine, the environment may already be set
		_ = godotenv.Load()
		if err := logger.Init(constants.GetSentryDSN(), constants.GetEnvironment(), version); err != nil {
			logger.Warn("sentry disabled", logger.Fields{"error": err.Error()})
		}
	},
}

func Execute() {
	defer logger.Flush()
	cobra.CheckErr(rootCmd.Execute())
}
