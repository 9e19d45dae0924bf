package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/iho/gopawn/internal/adapter/http/dto"
	"github.com/iho/gopawn/internal/usecase"
)

func adminCmd(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Staff reports",
	}

	cmd.AddCommand(adminDashboardCmd(opts), adminEntriesCmd(opts), adminAuditCmd(opts))
	return cmd
}

func adminDashboardCmd(opts *clientOptions) *cobra.Command {
	var (
		status, customer, from, to string
		asJSON                     bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show entry counts and totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			setIf(q, "status", status)
			setIf(q, "customer_name", customer)
			setIf(q, "date_from", from)
			setIf(q, "date_to", to)

			var d usecase.Dashboard
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/admin/dashboard", q, nil, &d, ""); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, d)
			}
			fmt.Fprintf(out, "Total entries:    %d\n", d.TotalEntries)
			fmt.Fprintf(out, "Active entries:   %d\n", d.ActiveEntries)
			fmt.Fprintf(out, "Released entries: %d\n", d.ReleasedEntries)
			fmt.Fprintf(out, "Total principal:  %s\n", d.TotalPrincipal.StringFixed(2))
			fmt.Fprintf(out, "Total interest:   %s\n", d.TotalInterest.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only count entries with this status")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer name contains")
	cmd.Flags().StringVar(&from, "from", "", "Entries dated on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Entries dated on or before (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func adminEntriesCmd(opts *clientOptions) *cobra.Command {
	var (
		status, customer, search string
		from, to                 string
		released, asJSON         bool
		limit, offset            int
	)

	cmd := &cobra.Command{
		Use:   "entries",
		Short: "List all entries with filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := paginationQuery(limit, offset)
			path := "/admin/entries"
			if released {
				path = "/admin/entries/released"
			} else {
				setIf(q, "status", status)
				setIf(q, "customer_name", customer)
				setIf(q, "date_from", from)
				setIf(q, "date_to", to)
			}
			setIf(q, "search", search)

			var page dto.ListEntriesResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, path, q, nil, &page, ""); err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd.OutOrStdout(), page)
			}
			printEntryTable(cmd.OutOrStdout(), page.Entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (active, released, removed)")
	cmd.Flags().StringVar(&customer, "customer", "", "Customer name contains")
	cmd.Flags().StringVar(&search, "search", "", "Search serial, customer or owner")
	cmd.Flags().StringVar(&from, "from", "", "Entries dated on or after (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Entries dated on or before (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&released, "released", false, "Only released entries")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "Page offset")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")
	return cmd
}

func adminAuditCmd(opts *clientOptions) *cobra.Command {
	var (
		entryID, userID, action string
		limit                   int
	)

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent audit log rows, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			setIf(q, "entry_id", entryID)
			setIf(q, "user_id", userID)
			setIf(q, "action", action)
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}

			var logs []*dto.AuditLogResponse
			if err := newAPIClient(opts).do(cmd.Context(), http.MethodGet, "/admin/audit", q, nil, &logs, ""); err != nil {
				return err
			}
			printAuditTable(cmd.OutOrStdout(), logs)
			return nil
		},
	}

	cmd.Flags().StringVar(&entryID, "entry", "", "Filter by entry ID")
	cmd.Flags().StringVar(&userID, "user", "", "Filter by acting user")
	cmd.Flags().StringVar(&action, "action", "", "Filter by action")
	cmd.Flags().IntVar(&limit, "limit", 0, "Number of rows, defaults to 50")
	return cmd
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
