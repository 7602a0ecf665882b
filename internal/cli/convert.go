package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen11/numeral-service/internal/adapters/clients/numeralapi"
	"github.com/jsamuelsen11/numeral-service/internal/app"
	"github.com/jsamuelsen11/numeral-service/internal/platform/config"
	"github.com/jsamuelsen11/numeral-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/numeral-service/internal/ports"
)

// Output formats accepted by --output.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// batchConverter is satisfied by both ports.ConverterService and
// ports.NumeralClient.
type batchConverter interface {
	ConvertBatch(ctx context.Context, values []int) (*ports.BatchResult, error)
}

// outcome is one converted argument as printed by the convert command.
type outcome struct {
	Input   string `json:"input" yaml:"input"`
	Value   *int   `json:"value,omitempty" yaml:"value,omitempty"`
	Numeral string `json:"numeral,omitempty" yaml:"numeral,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

func (o outcome) failed() bool { return o.Error != "" }

func convertCmd(root *rootOptions) *cobra.Command {
	var remote bool
	var baseURL string
	var output string

	c := &cobra.Command{
		Use:   "convert VALUE...",
		Short: "Convert one or more integers between 1 and 3999",
		Example: `  numeralctl convert 1994 2024
  numeralctl convert --output json 4 9 14
  numeralctl convert --remote --base-url http://localhost:8080 3999`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}

			cfg, err := root.load()
			if err != nil {
				return err
			}
			logger := root.logger(cfg, cmd.ErrOrStderr())

			var conv batchConverter
			if remote {
				clientCfg := cfg.Client
				if baseURL != "" {
					clientCfg.BaseURL = baseURL
				}
				conv = numeralapi.NewClient(httpclient.New(&clientCfg, numeralapi.ServiceName, nil, logger), logger)
			} else {
				conv = app.NewConverterService(cfg.Converter, nil, logger)
			}

			results := convertAll(cmd.Context(), conv, args, batchSize(cfg.Converter))
			if err := printOutcomes(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, output); err != nil {
				return err
			}

			if failed := countFailed(results); failed > 0 {
				return fmt.Errorf("%d of %d values failed", failed, len(results))
			}
			return nil
		},
	}

	c.Flags().BoolVar(&remote, "remote", false, "convert through a running numeral service")
	c.Flags().StringVar(&baseURL, "base-url", "", "service URL for --remote (default client.base_url from config)")
	c.Flags().StringVarP(&output, "output", "o", formatText, "output format: text|json|yaml")
	return c
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output %q (expected text|json|yaml)", format)
	}
}

func batchSize(cfg config.ConverterConfig) int {
	if cfg.BatchMaxItems > 0 {
		return cfg.BatchMaxItems
	}
	return app.DefaultBatchMaxItems
}

// convertAll converts every argument, sending integers in batches of at most
// size values. Results keep argument order; arguments that are not integers
// fail without reaching the converter.
func convertAll(ctx context.Context, conv batchConverter, args []string, size int) []outcome {
	results := make([]outcome, len(args))
	values := make([]int, 0, len(args))
	positions := make([]int, 0, len(args))

	for i, arg := range args {
		results[i].Input = arg
		v, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			results[i].Error = fmt.Sprintf("%q is not an integer", arg)
			continue
		}
		results[i].Value = &v
		values = append(values, v)
		positions = append(positions, i)
	}

	for start := 0; start < len(values); start += size {
		end := min(start+size, len(values))

		batch, err := conv.ConvertBatch(ctx, values[start:end])
		if err != nil {
			for _, pos := range positions[start:end] {
				results[pos].Error = err.Error()
			}
			continue
		}
		for _, c := range batch.Converted {
			results[positions[start+c.Index]].Numeral = c.Numeral.String()
		}
		for _, e := range batch.Errors {
			results[positions[start+e.Index]].Error = e.Err.Error()
		}
		for _, pos := range positions[start:end] {
			if r := &results[pos]; r.Numeral == "" && r.Error == "" {
				r.Error = "no result from converter"
			}
		}
	}
	return results
}

// printOutcomes writes results in the requested format. In text mode failures
// go to errOut, one line each.
func printOutcomes(out, errOut io.Writer, results []outcome, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, r := range results {
			if r.failed() {
				fmt.Fprintf(errOut, "%s: %s\n", r.Input, r.Error)
				continue
			}
			fmt.Fprintf(out, "%d\t%s\n", *r.Value, r.Numeral)
		}
		return nil
	}
}

func countFailed(results []outcome) int {
	n := 0
	for _, r := range results {
		if r.failed() {
			n++
		}
	}
	return n
}
