package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "career-compass"
)

type Config struct {
	Questionnaire *QuestionnaireConfig `mapstructure:"questionnaire"`
	Catalog       *CatalogConfig       `mapstructure:"catalog"`
	Projector     *ProjectorConfig     `mapstructure:"projector"`
	Recommend     *RecommendConfig     `mapstructure:"recommend"`
	AI            *AIConfig            `mapstructure:"ai"`
	Report        *ReportConfig        `mapstructure:"report"`
}

type QuestionnaireConfig struct {
	// File is a yaml questionnaire overriding the built-in one.
	File  string `mapstructure:"file"`
	Scale string `mapstructure:"scale"`
}

type CatalogConfig struct {
	File            string   `mapstructure:"file"`
	ExcludeFamilies []string `mapstructure:"exclude-families"`
}

type ProjectorConfig struct {
	// Type selects the embedding backend: "onnx" or "identity".
	Type          string `mapstructure:"type"`
	Model         string `mapstructure:"model"`
	Scaler        string `mapstructure:"scaler"`
	SharedLibrary string `mapstructure:"shared-library"`
	InputName     string `mapstructure:"input-name"`
	OutputName    string `mapstructure:"output-name"`
}

type RecommendConfig struct {
	TopN int `mapstructure:"top-n"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type ReportConfig struct {
	Dir string `mapstructure:"dir"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-compass scores a RIASEC interest questionnaire and recommends matching occupations",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-compass.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for run command now. If there is no config, we can skip initialization
	if runCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		// The run command works with built-in defaults, so a missing
		// default config is fine. An explicit one must parse.
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && cfgFile == "" {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
