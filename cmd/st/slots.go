package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cfstools/schedtab/internal/store"
	"github.com/spf13/cobra"
)

func newSlotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Message definition (time slot) commands",
	}

	cmd.AddCommand(newSlotsListCmd())
	cmd.AddCommand(newSlotsSetCmd())
	return cmd
}

func newSlotsListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored message definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			defs, err := store.LoadDefinitions(gormDB)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(defs) == 0 {
				fmt.Fprintln(out, "No message definitions")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "MESSAGE\tAPPLICATIONS")
			for _, def := range defs {
				fmt.Fprintf(tw, "%s\t%s\n", def.Name, strings.Join(def.AppNames, ","))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	return cmd
}

func newSlotsSetCmd() *cobra.Command {
	var (
		configPath string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "set <position> <app1,app2,...>",
		Short: "Replace the applications assigned to a time slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.Atoi(args[0])
			if err != nil || position < 0 {
				return fmt.Errorf("slot position must be a non-negative integer, got %q", args[0])
			}

			var appNames []string
			for _, n := range strings.Split(args[1], ",") {
				if n = strings.TrimSpace(n); n != "" {
					appNames = append(appNames, n)
				}
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			// Unknown names are caught at compile time too, but failing
			// the edit is friendlier than storing a dead reference.
			cat, _, err := store.LoadCatalog(gormDB)
			if err != nil {
				return err
			}
			for _, n := range appNames {
				if _, ok := cat.ByName(n); !ok {
					return fmt.Errorf("application %q is not in the catalog", n)
				}
			}

			if err := store.SaveDefinition(gormDB, position, name, appNames); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored slot %d with %d applications\n", position, len(appNames))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	cmd.Flags().StringVar(&name, "name", "", "message name (defaults to slot_<position>)")
	return cmd
}
