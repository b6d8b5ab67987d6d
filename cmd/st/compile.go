package main

import (
	"fmt"

	"github.com/cfstools/schedtab/internal/schedule"
	"github.com/cfstools/schedtab/internal/store"
	"github.com/cfstools/schedtab/internal/validator"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newCompileCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Validate and compile the schedule tables",
		Long:  "Runs one full compile pass: loads the catalog, parameters and message definitions, validates the definitions against the capacity caps, and compiles the schedule and definition tables. Nothing is written; use export for that.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			return runCompile(cmd, gormDB)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	return cmd
}

func runCompile(cmd *cobra.Command, gormDB *gorm.DB) error {
	out := cmd.OutOrStdout()

	p, err := store.LoadParams(gormDB)
	if err != nil {
		warn(out, err.Error())
	}

	cat, warnings, err := store.LoadCatalog(gormDB)
	if err != nil {
		return err
	}
	warn(out, warnings...)

	defs, err := store.LoadDefinitions(gormDB)
	if err != nil {
		return err
	}

	res := validator.Validate(cat, defs, p)
	warn(out, res.Warnings...)
	for _, rej := range res.Rejects {
		warn(out, fmt.Sprintf("message %q rejected: %s", rej.Message, rej.Reason))
	}

	table, err := schedule.Compile(cat, res.Valid, p.SlotCount)
	if err != nil {
		return err
	}
	if n := table.TruncatedTotal(); n > 0 {
		warn(out, fmt.Sprintf("%d application(s) truncated from overflowing messages", n))
	}

	_, skipped := schedule.BuildIndexTable(cat, p.SlotCount)
	for _, app := range skipped {
		warn(out, fmt.Sprintf("application %q wake-up ID 0x%04X outside message table, omitted",
			app.Name, app.WakeUpID))
	}

	fmt.Fprintf(out, "Compiled %d schedule row(s) of %d slots from %d application(s)\n",
		table.Len(), p.SlotCount, cat.Len())
	fmt.Fprintf(out, "Defines: %d, message table entries: %d\n", cat.Len(), p.SlotCount)
	return nil
}
