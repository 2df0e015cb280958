package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"ideaforge/internal/bootstrap"
)

var rootCmd = &cobra.Command{
	Use:   "ideaforge",
	Short: "Research, scope and rank innovation ideas",
	Long: `ideaforge turns a company name and an idea into a research package:
company research, idea research, a resource plan and follow-up questions.
Saved ideas are rolled up into portfolio analytics with budget and ROI projections.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path := viper.GetString("env-file"); path != "" {
			if err := godotenv.Load(path); err != nil {
				return fmt.Errorf("load env file %s: %w", path, err)
			}
		}
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("IDEAFORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().String("env-file", "", "load environment from this file before reading config")
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("env-file", rootCmd.PersistentFlags().Lookup("env-file"))
}

func registerCommands() {
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(workflowCmd())
}

// withContainer builds the full dependency graph for a one-shot command and
// tears it down afterwards
func withContainer(ctx context.Context, fn func(ctx context.Context, c *bootstrap.Container) error) error {
	c := bootstrap.NewContainer()
	c.MustInit()
	defer c.Shutdown()

	if ctx == nil {
		ctx = c.Context
	}
	return fn(ctx, c)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
