package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listCmd prints every alias currently indexed.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List every alias in the store",
	Run: func(cmd *cobra.Command, args []string) {
		viper.Unmarshal(c)

		s, err := openStore()
		if err != nil {
			logger.Fatal().Err(err).Msg("list")
		}

		aliases, err := s.Aliases()
		if err != nil {
			logger.Fatal().Err(err).Msg("list")
		}
		for _, a := range aliases {
			fmt.Println(a)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
