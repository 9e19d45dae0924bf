package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/gopawn/internal/adapter/http/dto"
	"github.com/iho/gopawn/internal/domain"
)

func interestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interest",
		Short: "Offline interest calculations",
	}

	cmd.AddCommand(interestCalcCmd(), dailyRateCmd())
	return cmd
}

func interestCalcCmd() *cobra.Command {
	var (
		principal, dailyRate, annualRate string
		from, to                         string
		asJSON                           bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculate interest on a principal between two dates",
		Example: `  gopawn-cli interest calc --principal 100000 --from 2024-01-01 --to 2024-01-10 --daily-rate 0.0329
  gopawn-cli interest calc --principal 100000 --from 2024-01-01 --annual-rate 12`,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(principal)
			if err != nil {
				return fmt.Errorf("invalid principal %q: %w", principal, err)
			}

			rate, err := rateFromFlags(dailyRate, annualRate)
			if err != nil {
				return err
			}

			fromDate, err := time.Parse(time.DateOnly, from)
			if err != nil {
				return fmt.Errorf("invalid --from: %w", err)
			}
			toDate := domain.DateOf(time.Now().UTC())
			if to != "" {
				if toDate, err = time.Parse(time.DateOnly, to); err != nil {
					return fmt.Errorf("invalid --to: %w", err)
				}
			}

			calc, err := domain.CalculateInterest(amount, fromDate, toDate, rate)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, dto.QuoteFromCalculation(calc))
			}

			fmt.Fprintf(out, "Principal:      %s\n", calc.Principal.StringFixed(2))
			fmt.Fprintf(out, "Daily rate:     %s%%\n", calc.DailyRate.StringFixed(4))
			fmt.Fprintf(out, "Period:         %s to %s (%d days, %d charged)\n",
				calc.FromDate.Format(time.DateOnly), calc.ToDate.Format(time.DateOnly), calc.Days, calc.EffectiveDays)
			fmt.Fprintf(out, "Method:         %s\n", calc.Method)
			fmt.Fprintf(out, "Interest:       %s\n", calc.Amount.StringFixed(2))
			fmt.Fprintf(out, "Total:          %s\n", calc.Total().StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&principal, "principal", "", "Principal amount")
	cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&dailyRate, "daily-rate", "", "Daily rate in percent")
	cmd.Flags().StringVar(&annualRate, "annual-rate", "", "Annual rate in percent, converted to a daily rate")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	_ = cmd.MarkFlagRequired("principal")
	_ = cmd.MarkFlagRequired("from")
	cmd.MarkFlagsMutuallyExclusive("daily-rate", "annual-rate")
	cmd.MarkFlagsOneRequired("daily-rate", "annual-rate")

	return cmd
}

func dailyRateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily-rate [annual-rate...]",
		Short: "Convert annual percentage rates to daily rates",
		Long:  "Convert annual percentage rates to daily rates. Without arguments the preset rates are shown.",
		RunE: func(cmd *cobra.Command, args []string) error {
			rates := []decimal.Decimal{domain.AnnualRateStandard, domain.AnnualRatePremium}
			if len(args) > 0 {
				rates = rates[:0]
				for _, a := range args {
					r, err := decimal.NewFromString(a)
					if err != nil {
						return fmt.Errorf("invalid annual rate %q: %w", a, err)
					}
					rates = append(rates, r)
				}
			}

			for _, r := range rates {
				fmt.Fprintf(cmd.OutOrStdout(), "%s%% per year = %s%% per day\n", r.String(), domain.DailyRateFromAnnual(r).StringFixed(4))
			}
			return nil
		},
	}
}

func rateFromFlags(daily, annual string) (decimal.Decimal, error) {
	if daily != "" {
		r, err := decimal.NewFromString(daily)
		if err != nil {
			return decimal.Zero, fmt.Errorf("invalid --daily-rate %q: %w", daily, err)
		}
		return r, nil
	}

	r, err := decimal.NewFromString(annual)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --annual-rate %q: %w", annual, err)
	}
	return domain.DailyRateFromAnnual(r), nil
}
