package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthaplan/engine/internal/api"
	"github.com/arthaplan/engine/internal/calculation"
	"github.com/arthaplan/engine/internal/config"
	"github.com/arthaplan/engine/internal/logging"
	"github.com/arthaplan/engine/internal/output"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "arthaplan",
		Short:        "Deterministic financial planning engine",
		Long:         "arthaplan analyzes a household financial snapshot: net worth, cash flow, retirement corpus, goal feasibility and the funding gaps in between.",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "settings file (YAML); defaults apply when omitted")

	cmd.AddCommand(newAnalyzeCmd(&configFile))
	cmd.AddCommand(newServeCmd(&configFile))
	cmd.AddCommand(newExampleCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func buildEngine(configFile string) (*calculation.Engine, *config.Settings, error) {
	settings, err := config.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.Setup(settings.LogLevel, settings.LogFormat)
	engine, err := calculation.NewEngine(settings.EngineOptions(), logging.EngineAdapter{L: logger})
	if err != nil {
		return nil, nil, err
	}
	return engine, settings, nil
}

func newAnalyzeCmd(configFile *string) *cobra.Command {
	var format string
	var asOf string
	var outFile string

	cmd := &cobra.Command{
		Use:   "analyze <snapshot-file>",
		Short: "Analyze a household snapshot (YAML or JSON)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, _, err := buildEngine(*configFile)
			if err != nil {
				return err
			}

			snap, err := config.NewSnapshotLoader().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			reference := time.Now()
			if asOf != "" {
				reference, err = time.Parse("2006-01-02", asOf)
				if err != nil {
					return fmt.Errorf("--as-of must be YYYY-MM-DD: %w", err)
				}
			}

			result, err := engine.Analyze(cmd.Context(), snap, reference)
			if err != nil {
				return err
			}

			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown output format %q", format)
			}
			data, err := formatter.Format(result)
			if err != nil {
				return err
			}

			if outFile != "" {
				return os.WriteFile(outFile, data, 0644)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json)")
	cmd.Flags().StringVar(&asOf, "as-of", "", "reference date YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write the report to a file instead of stdout")
	return cmd
}

func newServeCmd(configFile *string) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, settings, err := buildEngine(*configFile)
			if err != nil {
				return err
			}
			if listen == "" {
				listen = settings.ListenAddr
			}
			logger := logging.Setup(settings.LogLevel, settings.LogFormat)
			return api.NewServer(engine, logger, nil).ListenAndServe(listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides settings)")
	return cmd
}

func newExampleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Print a complete example snapshot as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := yaml.Marshal(config.ExampleSnapshot())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "arthaplan %s\n", version)
		},
	}
}
