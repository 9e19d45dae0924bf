package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/gopawn/internal/adapter/http/dto"
)

func entriesCmd(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entries",
		Aliases: []string{"entry"},
		Short:   "Manage your entries through the API",
	}

	cmd.AddCommand(
		entriesListCmd(opts),
		entriesGetCmd(opts),
		entriesCreateCmd(opts),
		entriesInterestCmd(opts),
		entriesReleaseCmd(opts),
		entriesHistoryCmd(opts),
	)
	return cmd
}

func entriesListCmd(opts *clientOptions) *cobra.Command {
	var (
		limit, offset int
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your active entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			var page dto.ListEntriesResponse
			err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/entries", paginationQuery(limit, offset), nil, &page, "")
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), page)
			}
			printEntryTable(cmd.OutOrStdout(), page.Entries)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func entriesGetCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry dto.EntryResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/entries/"+url.PathEscape(args[0]), nil, nil, &entry, ""); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}
}

func entriesCreateCmd(opts *clientOptions) *cobra.Command {
	var (
		req            dto.CreateEntryRequest
		amount, weight string
		idempotencyKey string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a new entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if req.Amount, err = decimal.NewFromString(amount); err != nil {
				return fmt.Errorf("invalid --amount %q: %w", amount, err)
			}
			if req.Weight, err = decimal.NewFromString(weight); err != nil {
				return fmt.Errorf("invalid --weight %q: %w", weight, err)
			}
			if req.Date == "" {
				req.Date = time.Now().Format(dto.DateLayout)
			}

			var entry dto.EntryResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, "/entries", nil, &req, &entry, idempotencyKey); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}

	cmd.Flags().StringVar(&req.Date, "date", "", "Entry date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&req.SerialNumber, "serial", "", "Serial number")
	cmd.Flags().StringVar(&req.CustomerName, "customer", "", "Customer name")
	cmd.Flags().StringVar(&req.GivenBy, "given-by", "", "Who handed over the item")
	cmd.Flags().StringVar(&amount, "amount", "", "Principal amount")
	cmd.Flags().StringVar(&weight, "weight", "0", "Weight in grams")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key for safe retries")
	_ = cmd.MarkFlagRequired("serial")
	_ = cmd.MarkFlagRequired("customer")
	_ = cmd.MarkFlagRequired("given-by")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func entriesInterestCmd(opts *clientOptions) *cobra.Command {
	var dailyRate, annualRate, toDate string

	cmd := &cobra.Command{
		Use:   "interest <id>",
		Short: "Calculate and store interest for an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.ApplyInterestRequest
			if dailyRate != "" {
				r, err := decimal.NewFromString(dailyRate)
				if err != nil {
					return fmt.Errorf("invalid --daily-rate %q: %w", dailyRate, err)
				}
				req.DailyRate = &r
			}
			if annualRate != "" {
				r, err := decimal.NewFromString(annualRate)
				if err != nil {
					return fmt.Errorf("invalid --annual-rate %q: %w", annualRate, err)
				}
				req.AnnualRate = &r
			}
			if toDate != "" {
				req.ToDate = &toDate
			}

			var result dto.InterestResponse
			path := "/entries/" + url.PathEscape(args[0]) + "/interest"
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, path, nil, &req, &result, ""); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().StringVar(&dailyRate, "daily-rate", "", "Daily rate in percent")
	cmd.Flags().StringVar(&annualRate, "annual-rate", "", "Annual rate in percent")
	cmd.Flags().StringVar(&toDate, "to", "", "End date (YYYY-MM-DD), defaults to today on the server")
	cmd.MarkFlagsMutuallyExclusive("daily-rate", "annual-rate")
	cmd.MarkFlagsOneRequired("daily-rate", "annual-rate")
	return cmd
}

func entriesReleaseCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "release <id>",
		Short: "Release an entry back to the customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry dto.EntryResponse
			path := "/entries/" + url.PathEscape(args[0]) + "/release"
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodPost, path, nil, nil, &entry, ""); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "entry %s released\n", entry.ID)
			return nil
		},
	}
}

func entriesHistoryCmd(opts *clientOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <id>",
		Short: "Show the audit trail of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var logs []*dto.AuditLogResponse
			path := "/entries/" + url.PathEscape(args[0]) + "/audit"
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path, nil, nil, &logs, ""); err != nil {
				return err
			}
			printAuditTable(cmd.OutOrStdout(), logs)
			return nil
		},
	}
}

func printEntryTable(out io.Writer, entries []*dto.EntryResponse) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tSERIAL\tCUSTOMER\tAMOUNT\tINTEREST\tTOTAL\tSTATUS")
	for _, e := range entries {
		interest := "-"
		if e.InterestAmount != nil {
			interest = e.InterestAmount.StringFixed(2)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Date, truncate(e.SerialNumber, 20), truncate(e.CustomerName, 24),
			e.Amount.StringFixed(2), interest, e.TotalAmount.StringFixed(2), e.Status)
	}
	w.Flush()
}

func printAuditTable(out io.Writer, logs []*dto.AuditLogResponse) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tENTRY\tUSER\tACTION\tDETAILS")
	for _, l := range logs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			l.CreatedAt.Format(time.RFC3339), l.EntryID, l.UserID, l.Action, truncate(l.Details, 60))
	}
	w.Flush()
}
