package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"mock-crm/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

var v = config.New()

var rootCmd = &cobra.Command{
	Use:   "crm",
	Short: "Mock CRM API serving in-memory customer records",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("schema", "lifetime-health-cover", "customer sub-record schema: certificate or lifetime-health-cover")
	flags.String("seed-file", "", "YAML file with additional seed customers")
	flags.String("seed-csv", "", "CSV member export imported after startup")
	flags.Bool("seed-defaults", true, "load the built-in demo customers")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "json", "log format: json or console")

	mustBind(v, "schema", config.KeySchema)
	mustBind(v, "seed-file", config.KeySeedFile)
	mustBind(v, "seed-csv", config.KeySeedCSV)
	mustBind(v, "seed-defaults", config.KeySeedDefaults)
	mustBind(v, "log-level", config.KeyLogLevel)
	mustBind(v, "log-format", config.KeyLogFormat)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.Version = version
}

func mustBind(v *viper.Viper, flag, key string) {
	f := rootCmd.PersistentFlags().Lookup(flag)
	if f == nil {
		f = serveCmd.Flags().Lookup(flag)
	}
	if err := v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", flag, err))
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
