// Command mnist-fetch downloads the MNIST dataset into a local directory
// and prints a short summary with the first training image.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	mnist "github.com/kujirahand/mnist-reader"
)

// fileConfig is the in-memory representation of the optional YAML config.
// Flags take precedence over config values.
type fileConfig struct {
	Dir     string `yaml:"dir,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Verify  bool   `yaml:"verify,omitempty"`
}

func main() {
	var (
		dir        string
		baseURL    string
		verify     bool
		verbose    bool
		configPath string
	)

	rootCmd := &cobra.Command{
		Use:          "mnist-fetch",
		Short:        "Download and inspect the MNIST handwritten-digit dataset",
		SilenceUsage: true, // don't print usage on operational errors
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := fileConfig{Dir: "mnist-data", BaseURL: mnist.DefaultBaseURL}
			if configPath != "" {
				if err := loadConfig(configPath, &cfg); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("dir") {
				cfg.Dir = dir
			}
			if cmd.Flags().Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if cmd.Flags().Changed("verify") {
				cfg.Verify = verify
			}

			opts := []mnist.Option{
				mnist.WithBaseURL(cfg.BaseURL),
				mnist.WithVerify(cfg.Verify),
			}
			if verbose {
				logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
				opts = append(opts, mnist.WithLogger(logger))
			}

			r, err := mnist.New(cfg.Dir, opts...)
			if err != nil {
				return err
			}
			if err := r.Load(cmd.Context()); err != nil {
				return err
			}

			fmt.Printf("Train data size: %d\n", len(r.TrainData))
			fmt.Printf("Test data size: %d\n", len(r.TestData))
			fmt.Printf("Train labels size: %d\n", len(r.TrainLabels))
			fmt.Printf("Test labels size: %d\n", len(r.TestLabels))
			if len(r.TrainData) > 0 {
				mnist.PrintImage(r.TrainData[0], r.Cols())
				fmt.Printf("labels[0]=%d\n", r.TrainLabels[0])
			}
			return nil
		},
	}

	rootCmd.Flags().StringVar(&dir, "dir", "mnist-data", "directory the archives are cached under")
	rootCmd.Flags().StringVar(&baseURL, "base-url", mnist.DefaultBaseURL, "mirror serving the gzip archives")
	rootCmd.Flags().BoolVar(&verify, "verify", false, "verify archives against the published SHA-256 digests")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log download progress")
	rootCmd.Flags().StringVar(&configPath, "config", "", "optional YAML config file (dir, base_url, verify)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig merges the YAML file at path into cfg. Absent keys keep their
// current values.
func loadConfig(path string, cfg *fileConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
