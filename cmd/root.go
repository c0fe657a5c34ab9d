// Package cmd wires the credstore façade up to a Cobra/Viper command-line
// tool: init, store, retrieve, remove, list, flush.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-i2p/credstore/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	c       *config.Conf = &config.Conf{}
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "credstore",
	Short: "Credential store CLI, backed by a conventional key store file",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// ExecuteWithArgs runs the command tree with the provided argument list
// instead of os.Args. It is intended for use in tests where invoking
// specific sub-commands without modifying os.Args is required.
func ExecuteWithArgs(args []string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// LookupFlag looks up a flag on the named sub-command. commandName must be
// one of "init", "store", "retrieve", "remove", "list", or "flush"; use ""
// to look up a persistent root flag. Returns nil when the command or flag
// is not found.
func LookupFlag(commandName, flagName string) *pflag.Flag {
	if commandName == "" {
		return rootCmd.PersistentFlags().Lookup(flagName)
	}
	sub, _, err := rootCmd.Find([]string{commandName})
	if err != nil || sub == nil {
		return nil
	}
	return sub.Flags().Lookup(flagName)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.credstore.yaml)")

	rootCmd.PersistentFlags().String("location", "", "path to the backing key store file (empty means in-memory only)")
	rootCmd.PersistentFlags().Bool("modifiable", true, "allow store/remove against this key store")
	rootCmd.PersistentFlags().Bool("create", false, "create an empty key store when --location does not yet exist")
	rootCmd.PersistentFlags().String("keystoretype", "", "underlying container engine (default jceks)")
	rootCmd.PersistentFlags().String("password", "", "store protection password, used both to unlock the file and to guard individual entries")

	viper.BindPFlags(rootCmd.PersistentFlags())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".credstore")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	// SetEnvPrefix ensures that only CREDSTORE_* variables are mapped,
	// matching the documented interface ("CREDSTORE_LOCATION",
	// "CREDSTORE_PASSWORD", etc). Without this call viper reads bare
	// names like LOCATION, which collides with variables set by
	// container runtimes and shell environments.
	viper.SetEnvPrefix("credstore")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
