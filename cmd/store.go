package cmd

import (
	"fmt"

	"github.com/brk3/flexhabits/internal/config"
	"github.com/brk3/flexhabits/internal/storage"
	"github.com/brk3/flexhabits/internal/storage/bolt"
	"github.com/brk3/flexhabits/internal/storage/sqlite"
)

func openStore(c *config.Config) (storage.Store, error) {
	switch c.DBDriver {
	case "bolt":
		return bolt.Open(c.DBPath)
	case "sqlite":
		return sqlite.Open(c.DBPath)
	default:
		return nil, fmt.Errorf("unsupported db_driver %q", c.DBDriver)
	}
}
