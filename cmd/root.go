package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "talentsift"
)

type Config struct {
	ResumesDir         string `mapstructure:"resumes-dir"`
	JobDescriptionFile string `mapstructure:"job-description"`
	OutputDir          string `mapstructure:"output-dir"`
	MaskPII            bool   `mapstructure:"mask-pii"`

	Screening  *ScreeningConfig  `mapstructure:"screening"`
	Ranking    *RankingConfig    `mapstructure:"ranking"`
	AI         *AIConfig         `mapstructure:"ai"`
	SharePoint *SharePointConfig `mapstructure:"sharepoint"`
}

type ScreeningConfig struct {
	SkillMatchRatio float64 `mapstructure:"skill-match-ratio"`
}

type RankingConfig struct {
	TopN int `mapstructure:"top-n"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type SharePointConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	TenantID         string `mapstructure:"tenant-id"`
	ClientID         string `mapstructure:"client-id"`
	ClientSecretFile string `mapstructure:"client-secret-file"`
	DriveID          string `mapstructure:"drive-id"`
	ResumesFolder    string `mapstructure:"resumes-folder"`
	ReportsFolder    string `mapstructure:"reports-folder"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "talentsift is a cli for screening and ranking resumes against a job description",
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

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talentsift.yaml in current directory)")
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

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
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
