package main

import (
	"fmt"

	"github.com/cfstools/schedtab/internal/export"
	"github.com/cfstools/schedtab/internal/schedule"
	"github.com/cfstools/schedtab/internal/store"
	"github.com/cfstools/schedtab/internal/validator"
	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var (
		configPath string
		dir        string
		prefix     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Compile and write the generated table sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Export.Dir
			}
			if prefix == "" {
				prefix = cfg.Export.Prefix
			}

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
			index, skipped := schedule.BuildIndexTable(cat, p.SlotCount)
			for _, app := range skipped {
				warn(out, fmt.Sprintf("application %q omitted from message table", app.Name))
			}

			written, err := export.ExportAll(dir, prefix, export.Input{
				Project:    cfg.Project,
				Defines:    schedule.Defines(cat),
				Table:      table,
				IndexTable: index,
			}, nil)
			if err != nil {
				return err
			}

			for _, path := range written {
				fmt.Fprintf(out, "Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "schedtab.yaml", "path to schedtab config file")
	cmd.Flags().StringVar(&dir, "dir", "", "output directory (defaults to export.dir from config)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "output file prefix (defaults to export.prefix from config)")
	return cmd
}
