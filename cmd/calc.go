package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lending-core/domain"
	"lending-core/finance"
)

type loanFlags struct {
	amount string
	rate   string
	term   int
	pretty bool
}

func (f *loanFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.amount, "amount", "", "Principal in currency units")
	cmd.Flags().StringVar(&f.rate, "rate", "", "Annual interest rate in percent")
	cmd.Flags().IntVar(&f.term, "term", 12, "Term in months")
	cmd.Flags().BoolVar(&f.pretty, "pretty", true, "Pretty-print JSON output")
}

func (f *loanFlags) terms() (domain.LoanTerms, error) {
	amount, err := parseDecimalFlag("amount", f.amount)
	if err != nil {
		return domain.LoanTerms{}, err
	}
	rate, err := parseDecimalFlag("rate", f.rate)
	if err != nil {
		return domain.LoanTerms{}, err
	}
	if !amount.IsPositive() {
		return domain.LoanTerms{}, fmt.Errorf("--amount must be positive")
	}
	if f.term <= 0 {
		return domain.LoanTerms{}, fmt.Errorf("--term must be positive")
	}
	if longest := finance.LoanTermOptions[len(finance.LoanTermOptions)-1]; f.term > longest {
		return domain.LoanTerms{}, fmt.Errorf("--term must be at most %d months, got %d", longest, f.term)
	}
	return domain.LoanTerms{
		Amount:            finance.RoundMoney(amount),
		AnnualRatePercent: rate,
		TermMonths:        f.term,
	}, nil
}

type amortizeOutput struct {
	Terms       domain.LoanTerms           `json:"terms"`
	Result      domain.AmortizationResult  `json:"result"`
	Raw         *domain.AmortizationResult `json:"raw,omitempty"`
	Adjustments []domain.Adjustment        `json:"adjustments,omitempty"`
}

func amortizeCommand() *cobra.Command {
	var (
		flags loanFlags
		clamp bool
		raw   bool
	)

	cmd := &cobra.Command{
		Use:   "amortize",
		Short: "Compute the monthly installment, total interest and total repayment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			terms, err := flags.terms()
			if err != nil {
				return err
			}

			out := amortizeOutput{Terms: terms}
			if clamp {
				out.Terms, out.Adjustments = finance.Clamp(finance.ResolveBand(nil, nil), terms)
			}
			result := finance.Amortize(out.Terms.Amount, out.Terms.AnnualRatePercent, out.Terms.TermMonths)
			out.Result = finance.Round(result, out.Terms.Amount, out.Terms.TermMonths)
			if raw {
				out.Raw = &result
			}
			return writeOutput(cmd.OutOrStdout(), out, flags.pretty)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&clamp, "clamp", false, "Clamp the terms into the default band first")
	cmd.Flags().BoolVar(&raw, "raw", false, "Also print the unrounded figures")
	return cmd
}

func projectCommand() *cobra.Command {
	var flags loanFlags

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a lender's simple-interest return",
		RunE: func(cmd *cobra.Command, _ []string) error {
			terms, err := flags.terms()
			if err != nil {
				return err
			}
			projection := finance.RoundProjection(
				finance.ProjectReturn(terms.Amount, terms.AnnualRatePercent, terms.TermMonths),
				terms.Amount,
			)
			return writeOutput(cmd.OutOrStdout(), projection, flags.pretty)
		},
	}

	flags.register(cmd)
	return cmd
}

func bandCommand() *cobra.Command {
	var (
		snapshotFile string
		legacyScore  int
		pretty       bool
	)

	cmd := &cobra.Command{
		Use:   "band",
		Short: "Resolve the permitted amount, rate and term band",
		Long: `Resolve the band from a credit score snapshot or a legacy score.

The snapshot file must be JSON in the platform's credit score shape
(totalScore, minInterestRate, maxInterestRate, maxLoanAmount, ...).
Without either input the system defaults are printed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var snap *domain.CreditScoreSnapshot
			if snapshotFile != "" {
				payload, err := os.ReadFile(snapshotFile)
				if err != nil {
					return fmt.Errorf("read snapshot file: %w", err)
				}
				snap = &domain.CreditScoreSnapshot{}
				if err := json.Unmarshal(payload, snap); err != nil {
					return fmt.Errorf("parse snapshot JSON: %w", err)
				}
			}

			var legacy *int
			if cmd.Flags().Changed("legacy-score") {
				legacy = &legacyScore
			}
			return writeOutput(cmd.OutOrStdout(), finance.ResolveBand(snap, legacy), pretty)
		},
	}

	cmd.Flags().StringVar(&snapshotFile, "snapshot-file", "", "Path to a credit score snapshot JSON")
	cmd.Flags().IntVar(&legacyScore, "legacy-score", 0, "Legacy credit score used for the default rate")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "Pretty-print JSON output")
	return cmd
}

func scheduleCommand() *cobra.Command {
	var (
		flags loanFlags
		start string
	)

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the installment schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			terms, err := flags.terms()
			if err != nil {
				return err
			}
			startDate := time.Now().UTC()
			if start != "" {
				startDate, err = time.Parse(time.DateOnly, start)
				if err != nil {
					return fmt.Errorf("invalid --start %q: %w", start, err)
				}
			}
			installments := finance.Schedule(terms.Amount, terms.AnnualRatePercent, terms.TermMonths, startDate)
			return writeOutput(cmd.OutOrStdout(), installments, flags.pretty)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&start, "start", "", "Disbursement date (YYYY-MM-DD), defaults to today")
	return cmd
}
