package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the lendcalc command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "lendcalc",
		Short:         "Loan band, amortization and return calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		serveCommand(),
		amortizeCommand(),
		projectCommand(),
		bandCommand(),
		scheduleCommand(),
	)
	return root
}

func Execute() error {
	return NewRootCommand().Execute()
}

func parseDecimalFlag(name, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, fmt.Errorf("--%s is required", name)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return d, nil
}

func writeOutput(w io.Writer, v any, pretty bool) error {
	var (
		out []byte
		err error
	)
	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	_, err = w.Write(append(out, '\n'))
	return err
}
