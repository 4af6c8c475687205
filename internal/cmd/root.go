package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quorumhq/quorum/internal/capability"
	"github.com/quorumhq/quorum/internal/config"
	"github.com/quorumhq/quorum/internal/logging"
	"github.com/quorumhq/quorum/internal/research"
)

var rootCmd = &cobra.Command{
	Use:   "quorum",
	Short: "Multi-engine research orchestrator",
	Long: `Quorum answers a free-form research question by decomposing it into
sub-questions, querying several research engine personas concurrently
through one shared language-model backend, and synthesizing the answers
into a single report that calls out consensus and disagreement.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/quorum/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/quorum")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("QUORUM")
	// Replace dots with underscores for nested keys in env vars
	// e.g., QUORUM_CAPABILITY_API_KEY for capability.api_key
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// buildPipeline wires the capability client and engine set from config.
func buildPipeline(cfg *config.Config, logger *logging.Logger) (*research.Pipeline, error) {
	client := capability.NewClient(cfg.Capability)
	if !client.Configured() {
		logger.Warn("capability credential missing; every engine will return a configuration notice")
	}

	return research.NewPipeline(research.PipelineConfig{
		Client:  client,
		Engines: research.EnginesFromConfig(cfg.Engines),
		Logger:  logger,
	})
}
