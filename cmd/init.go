package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd opens the backing key store (creating it only when --create is
// set and no file exists at --location) and, when
// --location is set, flushes it immediately so an empty file exists on
// disk for later invocations to find.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or open the credential store",
	Run: func(cmd *cobra.Command, args []string) {
		viper.Unmarshal(c)
		s, err := openStore()
		if err != nil {
			logger.Fatal().Err(err).Msg("init")
		}
		if err := s.Flush(); err != nil {
			logger.Fatal().Err(err).Msg("init: flush")
		}
		fmt.Println("credential store ready")
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
