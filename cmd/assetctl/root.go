package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "assetctl",
	Short: "CLI for the asset library server",
	Long: `assetctl interacts with an asset library server: browse and filter the
catalog, inspect individual assets, record QC decisions, manage the master
lists, and request AI scores for a piece of content.

The server address can be set with --server, the ASSETCTL_SERVER environment
variable, or an assetctl.yaml config file in the working directory.`,
}

func init() {
	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "Asset library server URL")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format: table, json, yaml")
	rootCmd.PersistentFlags().String("as-user", "", "Act as the given user (sent as X-Remote-User)")

	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("as-user", rootCmd.PersistentFlags().Lookup("as-user"))

	viper.SetEnvPrefix("assetctl")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("assetctl")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()

	rootCmd.AddCommand(assetsCmd)
	rootCmd.AddCommand(mastersCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(healthCmd)
}

func serverURL() string {
	return viper.GetString("server")
}

func outputFmt() string {
	return viper.GetString("output")
}

func asUser() string {
	return viper.GetString("as-user")
}
