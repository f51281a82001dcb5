package onnxmeta

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Console colors, matching the established terminal output of the
// metadata tooling.
var (
	errColor     = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
	pathColor    = color.New(color.FgCyan)
	hintColor    = color.New(color.FgYellow)
)

// NewCommand creates the Cobra command tree for ONNX interface and
// metadata tooling. The returned command can be executed directly or
// added to a parent CLI's root command.
//
// Commands provided:
//   - diff <model_a> <model_b> [--layer-type] [--indent] [--output]
//   - meta [--config] [--output] [--make-config]
func NewCommand(opts ...Option) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onnxmeta",
		Short: "Compare ONNX model interfaces and manage model metadata",
		Long: "Compare the input and output layers of two ONNX models to decide whether\n" +
			"they can be hot swapped without changing pre and post processing routines,\n" +
			"and write validated key-value metadata records into ONNX models.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(diffCmd(opts))
	cmd.AddCommand(metaCmd(opts))

	return cmd
}

func diffCmd(opts []Option) *cobra.Command {
	var (
		layerType string
		indent    int
		outputURI string
	)

	cmd := &cobra.Command{
		Use:   "diff <model_a> <model_b>",
		Short: "Compare the interfaces of two ONNX models",
		Long: "Compare the input and output layers of two ONNX models and write a JSON\n" +
			"report of the differences. Exits 0 if the models are compatible, 1 otherwise.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modelA, modelB := args[0], args[1]
			for _, path := range []string{modelA, modelB} {
				if err := CheckModelPath(path); err != nil {
					return err
				}
			}

			sel, err := ParseLayerSelector(layerType)
			if err != nil {
				return err
			}

			outputPath := outputURI
			if !cmd.Flags().Changed("output") {
				outputPath = DefaultReportPath(modelA, modelB)
			}

			report, err := NewDiffer(opts...).Diff(modelA, modelB, sel)
			if err != nil {
				return err
			}

			written, err := report.WriteFile(outputPath, indent)
			if err != nil {
				return err
			}
			if report.ExitStatus != ExitStatusSuccess {
				// A mismatch is report content, not a tool failure;
				// the sentinel only carries the exit code.
				return fmt.Errorf("%w: see %s", ErrIncompatible, written)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&layerType, "layer-type", "l", string(SelectBoth),
		"Compare only inputs, only outputs, or both")
	cmd.Flags().IntVarP(&indent, "indent", "i", 0,
		"Report indentation in spaces (0 for compact)")
	cmd.Flags().StringVarP(&outputURI, "output", "o", "",
		"Report file path (defaults to <model_a>_vs_<model_b>.json alongside model A)")
	return cmd
}

func metaCmd(opts []Option) *cobra.Command {
	var (
		configURI string
		outputURI string
		makeURI   string
	)

	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Write validated metadata into an ONNX model",
		Long: "Validate a JSON metadata configuration and write its key-value pairs into\n" +
			"an ONNX model. All existing metadata is cleared before the new record is\n" +
			"written. Use --make-config to generate a configuration template instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline := NewPipeline(opts...)

			if makeURI != "" {
				return writeConfigTemplate(cmd, pipeline.Schema(), makeURI)
			}

			if configURI == "" {
				// Usage plus a non-zero exit, so scripted callers
				// notice the missing configuration.
				_ = cmd.Help()
				return fmt.Errorf("%w: no configuration provided, use --config or --make-config", ErrInvalidConfig)
			}

			cfg, err := LoadMetadataConfig(configURI)
			if err != nil {
				return err
			}

			written, err := pipeline.Commit(cfg, outputURI)
			if err != nil {
				return err
			}
			successColor.Fprintf(cmd.OutOrStdout(), "Successfully wrote metadata: %s\n", written)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configURI, "config", "c", "",
		"JSON file providing the model URI and associated metadata")
	cmd.Flags().StringVarP(&outputURI, "output", "o", "",
		"Optional output model path (defaults to the configured model_uri)")
	cmd.Flags().StringVarP(&makeURI, "make-config", "m", "",
		"Generate a configuration template at the given path and exit")
	return cmd
}

// writeConfigTemplate emits the schema-shaped placeholder configuration
// and prints follow-up instructions. No artifact is touched.
func writeConfigTemplate(cmd *cobra.Command, schema Schema, path string) error {
	doc, err := schema.TemplateConfig()
	if err != nil {
		return fmt.Errorf("encoding template: %w", err)
	}

	path = TemplatePath(path)
	if err := os.WriteFile(path, doc, 0644); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	out := cmd.OutOrStdout()
	pathColor.Fprintf(out, "Generated configuration template:\n\t%s\n\n", abs)
	hintColor.Fprintf(out, "Update the configuration and run the following:\n\t%s meta -c %s\n",
		cmd.Root().Name(), abs)
	return nil
}

// PrintError writes an error message to w in the tool's console style.
// ErrIncompatible is deliberately silent: an incompatible pair is a
// reported result, not a failure.
func PrintError(w io.Writer, err error) {
	if err == nil || errors.Is(err, ErrIncompatible) {
		return
	}
	errColor.Fprintf(w, "Error: %v\n", err)
}
