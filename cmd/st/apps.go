package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cfstools/schedtab/internal/catalog"
	"github.com/cfstools/schedtab/internal/store"
	"github.com/spf13/cobra"
)

func newAppsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apps",
		Short: "Application catalog commands",
	}

	cmd.AddCommand(newAppsListCmd())
	cmd.AddCommand(newAppsAddCmd())
	cmd.AddCommand(newAppsRemoveCmd())
	cmd.AddCommand(newAppsGroupsCmd())
	return cmd
}

func newAppsListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedulable applications",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			cat, warnings, err := store.LoadCatalog(gormDB)
			if err != nil {
				return err
			}
			warn(out, warnings...)

			if cat.Len() == 0 {
				fmt.Fprintln(out, "No applications")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tWAKEUP ID\tPRIORITY\tGROUP")
			for _, app := range cat.Applications() {
				fmt.Fprintf(tw, "%s\t0x%04X\t%d\t%s\n", app.Name, app.WakeUpID, app.Priority, app.Group)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	return cmd
}

func newAppsAddCmd() *cobra.Command {
	var (
		configPath string
		name       string
		wakeup     string
		priority   int
		group      string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add or update an application",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			id, err := strconv.ParseInt(strings.TrimSpace(wakeup), 0, 32)
			if err != nil {
				return fmt.Errorf("invalid wake-up ID %q: %w", wakeup, err)
			}

			app := catalog.Application{Name: name, WakeUpID: int(id), Priority: priority, Group: group}

			// Reject the write if it would alias an existing wake-up ID.
			cat, _, err := store.LoadCatalog(gormDB)
			if err != nil {
				return err
			}
			if existing, ok := cat.ByWakeUpID(app.WakeUpID); ok && existing.Name != app.Name {
				return &catalog.DuplicateWakeUpIDError{
					WakeUpID: app.WakeUpID, First: existing.Name, Second: app.Name,
				}
			}

			if err := store.SaveApplication(gormDB, app); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored application %s (%s = 0x%04X)\n", app.Name, app.Symbol(), app.WakeUpID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	cmd.Flags().StringVar(&name, "name", "", "application name (required)")
	cmd.Flags().StringVar(&wakeup, "wakeup", "", "wake-up message ID, decimal or 0x hex (required)")
	cmd.Flags().IntVar(&priority, "priority", 0, "execution priority (higher dispatches earlier)")
	cmd.Flags().StringVar(&group, "group", "SCH_GROUP_NONE", "scheduling group tag")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("wakeup")
	return cmd
}

func newAppsRemoveCmd() *cobra.Command {
	var (
		configPath string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an application",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := store.DeleteApplication(gormDB, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed application %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	cmd.Flags().StringVar(&name, "name", "", "application name (required)")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newAppsGroupsCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "groups",
		Short: "List the distinct scheduling groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			cat, warnings, err := store.LoadCatalog(gormDB)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			warn(out, warnings...)

			groups := cat.Groups()
			if len(groups) == 0 {
				fmt.Fprintln(out, "No groups")
				return nil
			}
			for _, g := range groups {
				fmt.Fprintln(out, g)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	return cmd
}
