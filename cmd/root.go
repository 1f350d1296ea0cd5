package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pders01/formtree/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var cfgFile string

// logger is replaced in initConfig once the log level is known
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "formtree",
	Short: "Fetch and display questionnaire form trees, online or off",
	Long: `formtree retrieves a hierarchical questionnaire (pages, sections and
questions) from a remote endpoint and prints it.

When the endpoint cannot be reached it falls back to:
  - the last form fetched successfully (kept in the user cache directory)
  - the form bundled with the binary

A simulation mode can force a cached, normal or failing load for demos
and testing.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/formtree/config.toml)")
	rootCmd.SilenceErrors = true
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(config.DefaultConfigDir())
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("FORMTREE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	config.SetDefaults(viper.GetViper())

	readErr := viper.ReadInConfig()
	logger = newLogger(config.GetLogLevel())

	if readErr == nil {
		logger.Debug("using config file", zap.String("path", viper.ConfigFileUsed()))
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Warning: failed to read config %s: %v\n", cfgFile, readErr)
	}
}

func newLogger(level zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to build logger: %v\n", err)
		return zap.NewNop()
	}
	return l
}

// stdout and stderr return the command's writers; commands run directly from
// tests may pass a nil command
func stdout(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}

func stderr(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stderr
	}
	return cmd.ErrOrStderr()
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd == nil || cmd.Context() == nil {
		return context.Background()
	}
	return cmd.Context()
}
