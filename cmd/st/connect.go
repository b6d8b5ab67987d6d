package main

import (
	"fmt"
	"io"

	"github.com/cfstools/schedtab/internal/config"
	"github.com/cfstools/schedtab/internal/db"
	"gorm.io/gorm"
)

// connectFromConfig loads the config file and opens the project database
// it points at.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	var gormDB *gorm.DB
	switch cfg.Database.Driver {
	case "mysql":
		gormDB, err = db.ConnectMySQL(cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)
	default:
		gormDB, err = db.ConnectSQLite(cfg.Database.Path)
	}
	if err != nil {
		return nil, nil, err
	}
	return cfg, gormDB, nil
}

// warn prints recoverable load conditions without failing the command.
func warn(out io.Writer, warnings ...string) {
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
}
