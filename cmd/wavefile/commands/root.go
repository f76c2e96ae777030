package commands

import (
	"fmt"

	"github.com/pion/logging"
	"github.com/spf13/cobra"

	ilog "github.com/cwbudde/wavefile/internal/logging"
)

var logger = ilog.NewLogger("wavefile/cli")

// rootOptions holds the global flags and the loaded config file.
type rootOptions struct {
	configPath string
	verbose    bool
	cfg        Config
}

// NewRootCmd builds the command tree. Every call returns a fresh tree so
// flag values never leak between runs.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "wavefile",
		Short: "Inspect and convert WAVE files",
		Long: `wavefile - inspect and convert RIFF, RIFX and RF64 WAVE files.

Defaults for the conversion commands can be kept in a YAML file passed
with --config:

  bit_depth: "24"
  container: rifx
  output_format: text
  verbose: true

Flags given on the command line win over the file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output to stderr")

	cmd.AddCommand(
		newInfoCmd(opts),
		newChunksCmd(opts),
		newConvertCmd(opts),
		newEncodeCmd(opts),
		newDecodeCmd(opts),
		newAIFFCmd(opts),
	)

	return cmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

func (o *rootOptions) load() error {
	if o.configPath != "" {
		cfg, err := loadConfig(o.configPath)
		if err != nil {
			return err
		}

		o.cfg = cfg
	}

	switch o.cfg.OutputFormat {
	case "", formatYAML, formatText:
	default:
		return fmt.Errorf("unknown output_format %q, want %s or %s", o.cfg.OutputFormat, formatYAML, formatText)
	}

	if o.verbose || o.cfg.Verbose {
		ilog.SetLevel(logging.LogLevelDebug)
		logger.Debugf("config loaded from %q", o.configPath)
	}

	return nil
}

// stringFlag returns the flag value when it was set on the command line,
// otherwise fallback when that is non-empty, otherwise the flag default.
func stringFlag(cmd *cobra.Command, name, fallback string) (string, error) {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to read '%s' flag: %w", name, err)
	}

	if !cmd.Flags().Changed(name) && fallback != "" {
		return fallback, nil
	}

	return v, nil
}
