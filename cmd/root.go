package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/molbal/cozyui-docs/internal/config"
	xlog "github.com/molbal/cozyui-docs/internal/log"
)

var cfgFile string
var appConfig = config.Defaults()

var rootCmd = &cobra.Command{
	Use:   "cozydocs",
	Short: "Manage the CozyUI documentation site configuration",
	Long: `cozydocs holds the navigation and metadata configuration of the CozyUI
documentation site. It lints the configuration, exports it in the shape the
site generator reads, compares revisions, and generates sidebars from the
Markdown sources.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "tool config file (default is ./cozydocs.yaml)")
	rootCmd.PersistentFlags().String("site", "", "site config file (default is the embedded configuration)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
}

// flagKeys maps configuration keys to the flags that may override them.
var flagKeys = map[string]string{
	"site":       "site",
	"outputDir":  "output",
	"format":     "format",
	"contentDir": "content",
	"strict":     "strict",
	"port":       "port",
	"logLevel":   "log-level",
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	d := config.Defaults()
	v.SetDefault("site", d.Site)
	v.SetDefault("outputDir", d.OutputDir)
	v.SetDefault("format", d.Format)
	v.SetDefault("contentDir", d.ContentDir)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("port", d.Port)
	v.SetDefault("logLevel", d.LogLevel)
	v.SetDefault("logJSON", d.LogJSON)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("cozydocs")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("COZYDOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	configFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		configFound = false
	}

	var cfg config.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	appConfig = cfg

	xlog.Configure(xlog.Config{Level: cfg.LogLevel, JSON: cfg.LogJSON})
	logger := xlog.WithComponent("config")
	if configFound {
		logger.Debug().Str("file", v.ConfigFileUsed()).Msg("using config file")
	} else {
		logger.Debug().Msg("no config file found, using defaults and environment")
	}
	return nil
}
