package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	// Global flags
	configFile string
	verbose    bool

	log *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "middleman",
	Short: "Middleman NFT escrow contract management tool",
	Long: `middleman deploys and queries the Middleman contract, an escrow registry
of NFT sale offers. A holder escrows a NEP-11 item for a named spender who
can buy it out for a fixed amount of GAS; the contract keeps a 2% fee that
the owner recovers with the withdraw command.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringP("endpoint", "r", "", "network address of the Neo RPC server")
	rootCmd.PersistentFlags().String("contract", "", "hash of the deployed Middleman contract")
	rootCmd.PersistentFlags().StringP("wallet", "w", "", "path to the NEP-6 wallet")

	_ = viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	_ = viper.BindPFlag("contract", rootCmd.PersistentFlags().Lookup("contract"))
	_ = viper.BindPFlag("wallet", rootCmd.PersistentFlags().Lookup("wallet"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("endpoint", "http://localhost:20332")

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("middleman")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.config/middleman")
	}

	viper.SetEnvPrefix("middleman")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// missing config file is fine, flags and env are enough
	_ = viper.ReadInConfig()
}

func initLogger() error {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}

	var err error
	log, err = cfg.Build()
	return err
}
