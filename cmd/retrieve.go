package cmd

import (
	"fmt"

	"github.com/go-i2p/credstore/credstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// retrieveCmd looks up one credential by (--alias, --type, --algorithm,
// --params). A miss prints a message and exits 0; it is not an error
// condition (spec: retrieval misses are never errors).
var retrieveCmd = &cobra.Command{
	Use:   "retrieve",
	Short: "Retrieve a credential by alias",
	Run: func(cmd *cobra.Command, args []string) {
		viper.Unmarshal(c)

		s, err := openStore()
		if err != nil {
			logger.Fatal().Err(err).Msg("retrieve")
		}

		params, err := decodeParamsFlag(c.Params)
		if err != nil {
			logger.Fatal().Err(err).Msg("retrieve: --params")
		}

		cred, err := s.Retrieve(c.Alias, credstore.CredentialType(c.Type), c.Algorithm, params, nil)
		if err != nil {
			logger.Fatal().Err(err).Msg("retrieve")
		}
		if cred == nil {
			fmt.Println("no matching credential")
			return
		}
		fmt.Println(describeCredential(cred))
	},
}

func init() {
	rootCmd.AddCommand(retrieveCmd)

	retrieveCmd.Flags().String("alias", "", "credential alias")
	retrieveCmd.Flags().String("type", "", "credential type")
	retrieveCmd.Flags().String("algorithm", "", "credential algorithm (omit to accept any)")
	retrieveCmd.Flags().String("params", "", "base64-encoded DER parameter blob (omit to accept any)")
	retrieveCmd.MarkFlagRequired("alias")
	retrieveCmd.MarkFlagRequired("type")

	viper.BindPFlags(retrieveCmd.Flags())
}
