package store

import (
	"context"
	"fmt"

	"github.com/tirecycle/feasibility/internal/config"
)

// Open selects the backend named by the settings.
func Open(ctx context.Context, settings config.DatabaseSettings) (Store, error) {
	var (
		s   *SQLStore
		err error
	)
	switch settings.Driver {
	case config.DriverSQLite:
		s, err = OpenSQLite(settings.Path)
	case config.DriverPostgres:
		s, err = OpenPostgres(ctx, settings.URL)
	default:
		return nil, fmt.Errorf("unknown database driver %q", settings.Driver)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
