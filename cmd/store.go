package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeCmd files one credential under (--alias, --type, --algorithm,
// --params), then flushes the store so the change survives process exit.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Store a credential under an alias",
	Run: func(cmd *cobra.Command, args []string) {
		viper.Unmarshal(c)

		s, err := openStore()
		if err != nil {
			logger.Fatal().Err(err).Msg("store")
		}

		params, err := decodeParamsFlag(c.Params)
		if err != nil {
			logger.Fatal().Err(err).Msg("store: --params")
		}

		cred, err := buildCredentialFromFlags(params)
		if err != nil {
			logger.Fatal().Err(err).Msg("store")
		}

		if err := s.Store(c.Alias, cred, nil); err != nil {
			logger.Fatal().Err(err).Msg("store")
		}
		if err := s.Flush(); err != nil {
			logger.Fatal().Err(err).Msg("store: flush")
		}
		fmt.Printf("stored %s/%s/%s\n", c.Alias, c.Type, c.Algorithm)
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)

	storeCmd.Flags().String("alias", "", "credential alias")
	storeCmd.Flags().String("type", "", "credential type: secretkey, password, or bearertoken")
	storeCmd.Flags().String("algorithm", "", "credential algorithm")
	storeCmd.Flags().String("params", "", "base64-encoded DER parameter blob")
	storeCmd.Flags().String("token", "", "bearer token value (--type=bearertoken)")
	storeCmd.Flags().String("clearpassword", "", "clear password value (--type=password --algorithm=clear)")
	storeCmd.Flags().String("secrethex", "", "hex-encoded secret key material (--type=secretkey)")
	storeCmd.MarkFlagRequired("alias")
	storeCmd.MarkFlagRequired("type")

	viper.BindPFlags(storeCmd.Flags())
}
