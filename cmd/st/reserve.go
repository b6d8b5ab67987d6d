package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cfstools/schedtab/internal/reserve"
	"github.com/cfstools/schedtab/internal/store"
	"github.com/spf13/cobra"
)

func newReserveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Reserved message ID commands",
	}

	cmd.AddCommand(newReserveListCmd())
	cmd.AddCommand(newReserveAddCmd())
	cmd.AddCommand(newReserveCheckCmd())
	cmd.AddCommand(newReserveExpandCmd())
	return cmd
}

func newReserveListCmd() *cobra.Command {
	var (
		configPath string
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reserved message IDs and ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			set, bad, err := store.LoadReserved(gormDB, strict)
			if err != nil {
				return err
			}
			for _, b := range bad {
				warn(out, fmt.Sprintf("unparsable reserved ID row %q skipped", b))
			}

			if set.Len() == 0 {
				fmt.Fprintln(out, "No reserved message IDs")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MSG ID\tDESCRIPTION")
			for _, e := range set.Entries() {
				fmt.Fprintf(tw, "%s\t%s\n", e, e.Description)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on unparsable stored rows instead of skipping them")
	return cmd
}

func newReserveAddCmd() *cobra.Command {
	var (
		configPath  string
		description string
	)

	cmd := &cobra.Command{
		Use:   "add <id|low - high> ...",
		Short: "Reserve message IDs or ID ranges",
		Long:  "Reserves each given ID or range unless it overlaps an existing reservation; overlapping candidates are already covered and are skipped without error.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			var candidates []reserve.Entry
			for _, arg := range args {
				e, err := reserve.ParseEntry(arg)
				if err != nil {
					return err
				}
				e.Description = description
				candidates = append(candidates, e)
			}

			set, _, err := store.LoadReserved(gormDB, false)
			if err != nil {
				return err
			}
			added, err := store.AddReserved(gormDB, set, candidates)
			if err != nil {
				return err
			}

			skipped := len(candidates) - added
			fmt.Fprintf(cmd.OutOrStdout(), "Reserved %d, skipped %d already covered\n", added, skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	cmd.Flags().StringVar(&description, "description", "", "description stored with each new reservation")
	return cmd
}

func newReserveCheckCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check <id|low - high>",
		Short: "Check whether an ID or range collides with a reservation",
		Long:  "Exits non-zero when the given ID or range overlaps an existing reservation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			candidate, err := reserve.ParseEntry(args[0])
			if err != nil {
				return err
			}

			set, _, err := store.LoadReserved(gormDB, false)
			if err != nil {
				return err
			}

			if set.Contains(candidate) {
				return fmt.Errorf("%s overlaps an existing reservation", candidate)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is free\n", candidate)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	return cmd
}

func newReserveExpandCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "expand",
		Short: "List every individually reserved ID value",
		Long:  "Materializes all reservations, ranges included, into the flat list of reserved ID values.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			set, _, err := store.LoadReserved(gormDB, false)
			if err != nil {
				return err
			}

			ids := set.Expand()
			out := make([]string, len(ids))
			for i, id := range ids {
				out[i] = fmt.Sprintf("0x%04X", id)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	return cmd
}
