package cmd

import (
	"fmt"

	"github.com/go-i2p/credstore/credstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// removeCmd deletes every credential matching (--alias, --type, and
// optionally --algorithm/--params), then flushes the change to disk.
var removeCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a credential by alias",
	Run: func(cmd *cobra.Command, args []string) {
		viper.Unmarshal(c)

		s, err := openStore()
		if err != nil {
			logger.Fatal().Err(err).Msg("remove")
		}

		params, err := decodeParamsFlag(c.Params)
		if err != nil {
			logger.Fatal().Err(err).Msg("remove: --params")
		}

		if err := s.Remove(c.Alias, credstore.CredentialType(c.Type), c.Algorithm, params); err != nil {
			logger.Fatal().Err(err).Msg("remove")
		}
		if err := s.Flush(); err != nil {
			logger.Fatal().Err(err).Msg("remove: flush")
		}
		fmt.Printf("removed %s/%s\n", c.Alias, c.Type)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)

	removeCmd.Flags().String("alias", "", "credential alias")
	removeCmd.Flags().String("type", "", "credential type")
	removeCmd.Flags().String("algorithm", "", "credential algorithm (omit to match any)")
	removeCmd.Flags().String("params", "", "base64-encoded DER parameter blob (omit to match any)")
	removeCmd.MarkFlagRequired("alias")
	removeCmd.MarkFlagRequired("type")

	viper.BindPFlags(removeCmd.Flags())
}
