package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/deploymenttheory/go-api-contagem-client/httpclient"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg        string
	logLevel   string
	logFormat  string
	iterations int
	interval   time.Duration
	skipAuth   bool
)

var rootCmd = &cobra.Command{
	Use:          "contagem-client",
	Short:        "Counting API client",
	Long:         "Authenticates against the counting API and reads the current counter value, refreshing the access token when the API rejects it",
	RunE:         runClient,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfg, "config", "c", "appsettings.json", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override, e.g. LogLevelDebug")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log output format override: json or console")
	rootCmd.PersistentFlags().IntVarP(&iterations, "iterations", "n", 1, "Number of counter reads")
	rootCmd.PersistentFlags().DurationVar(&interval, "interval", 0, "Delay between counter reads")
	rootCmd.PersistentFlags().BoolVar(&skipAuth, "skip-auth", false, "Start without a token; the first read authenticates through the retry policy")

	// Bind flags to viper
	for _, name := range []string{"config", "log-level", "log-format", "iterations", "interval", "skip-auth"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			log.Printf("Failed to bind %s flag: %v", name, err)
		}
	}

	viper.SetEnvPrefix("CONTAGEM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// loadConfig reads the appsettings file, overlays environment variables and applies flag overrides.
func loadConfig(path string) (*httpclient.ClientConfig, error) {
	config, err := httpclient.LoadConfigFromFile(path)
	if err != nil {
		log.Printf("Failed to load config from %s, trying environment variables: %v", path, err)
		config = nil
	}

	config, err = httpclient.LoadConfigFromEnv(config)
	if err != nil {
		return nil, err
	}

	if level := viper.GetString("log-level"); level != "" {
		config.LogLevel = level
	}
	if format := viper.GetString("log-format"); format != "" {
		config.LogOutputFormat = format
	}
	return config, nil
}

func runClient(cmd *cobra.Command, args []string) error {
	config, err := loadConfig(viper.GetString("config"))
	if err != nil {
		return err
	}

	client, err := httpclient.BuildClient(*config, true)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	if !viper.GetBool("skip-auth") {
		// A failed login is logged; the first read then goes through the retry policy.
		client.Authenticate(ctx)
	}

	reads := viper.GetInt("iterations")
	delay := viper.GetDuration("interval")
	for i := 0; i < reads; i++ {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if err := client.ShowCounterResult(ctx); err != nil {
			return fmt.Errorf("reading counter (%d/%d): %w", i+1, reads, err)
		}
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Println(err)
		stop()
		os.Exit(1)
	}
}
