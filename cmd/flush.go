package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// flushCmd forces a persistence pass without otherwise mutating the store.
// Useful to confirm a file is writable before scripting further commands
// against it. Without --location the flush is a no-op.
var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Flush the store to its backing file",
	Run: func(cmd *cobra.Command, args []string) {
		viper.Unmarshal(c)

		s, err := openStore()
		if err != nil {
			logger.Fatal().Err(err).Msg("flush")
		}
		if err := s.Flush(); err != nil {
			logger.Fatal().Err(err).Msg("flush")
		}
		fmt.Println("flushed")
	},
}

func init() {
	rootCmd.AddCommand(flushCmd)
}
