package main

import (
	"fmt"

	"github.com/cfstools/schedtab/internal/params"
	"github.com/cfstools/schedtab/internal/store"
	"github.com/spf13/cobra"
)

func newParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Scheduler capacity parameter commands",
	}

	cmd.AddCommand(newParamsShowCmd())
	cmd.AddCommand(newParamsSetCmd())
	return cmd
}

func newParamsShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the scheduler capacity parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			p, err := store.LoadParams(gormDB)
			if err != nil {
				// Defaults remain usable; the operator just needs to know.
				warn(out, err.Error())
			}

			fmt.Fprintf(out, "Max messages per slot:   %d\n", p.MaxMsgsPerSlot)
			fmt.Fprintf(out, "Max messages per second: %d\n", p.MaxMsgsPerSecond)
			fmt.Fprintf(out, "Max messages per cycle:  %d\n", p.MaxMsgsPerCycle)
			fmt.Fprintf(out, "Time slots:              %d\n", p.SlotCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	return cmd
}

func newParamsSetCmd() *cobra.Command {
	var (
		configPath string
		perSlot    int
		perSecond  int
		perCycle   int
		slots      int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the scheduler capacity parameters",
		Long:  "Replaces all four capacity parameters at once. Values must be positive; there is no partial update.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			p := params.Params{
				MaxMsgsPerSlot:   perSlot,
				MaxMsgsPerSecond: perSecond,
				MaxMsgsPerCycle:  perCycle,
				SlotCount:        slots,
			}
			if err := store.SaveParams(gormDB, p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored parameters: %s\n", p)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	cmd.Flags().IntVar(&perSlot, "slot-max", 1, "max messages per time slot")
	cmd.Flags().IntVar(&perSecond, "per-second", 10, "max messages per second")
	cmd.Flags().IntVar(&perCycle, "per-cycle", 10, "max messages per cycle")
	cmd.Flags().IntVar(&slots, "slots", 128, "number of time slots")
	return cmd
}
