package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sobirin-dev/hendshake/internal/domain"
)

func addCmd(opts *rootOptions) *cobra.Command {
	var (
		label, price, category string
		booking                bool
		accessibility          float64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := domain.Draft{
				Label:           label,
				Price:           price,
				Category:        domain.ParseCategory(category),
				BookingRequired: booking,
			}
			if cmd.Flags().Changed("accessibility") {
				draft.Accessibility = domain.Accessibility(accessibility)
			}

			store, done, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			entry, err := store.Add(cmd.Context(), draft)
			if err != nil {
				var verr *domain.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("flag --%s: %w", verr.Field, err)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added entry %d\n\n", entry.ID)
			return writeCard(cmd.OutOrStdout(), entry)
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "activity description (required)")
	cmd.Flags().StringVarP(&price, "price", "p", "", "price as free text (required)")
	cmd.Flags().StringVarP(&category, "category", "c", string(domain.DefaultCategory), "activity category, see 'hendshake categories'")
	cmd.Flags().BoolVarP(&booking, "booking", "b", false, "booking is required")
	cmd.Flags().Float64VarP(&accessibility, "accessibility", "a", domain.DefaultAccessibility, "accessibility between 0 and 1")

	return cmd
}

func listCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show every activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, done, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			return writeList(cmd.OutOrStdout(), store.List())
		},
	}
}

func removeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}

			store, done, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			if store.Remove(cmd.Context(), id) {
				fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %d\n", id)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No entry with id %d\n", id)
			}
			return nil
		},
	}
}

func countCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, done, err := opts.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer done()

			fmt.Fprintln(cmd.OutOrStdout(), store.Count())
			return nil
		},
	}
}

func categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the activity categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range domain.Categories() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", c, c.DisplayName())
			}
			return nil
		},
	}
}
