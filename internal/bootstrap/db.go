package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/GoSim-25-26J-441/projects-miniapp/config"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/projects/repository"
	"github.com/GoSim-25-26J-441/projects-miniapp/internal/storage/postgres"
)

type DBOptions struct {
	Config    *config.DatabaseConfig
	ConnectTO time.Duration
}

// DB is the open database. SQL is always set; Pool only with the pgx driver.
type DB struct {
	SQL  *sql.DB
	Pool *pgxpool.Pool
}

// PingContext pings the pgx pool when there is one, the sql handle otherwise.
func (d *DB) PingContext(ctx context.Context) error {
	if d.Pool != nil {
		return d.Pool.Ping(ctx)
	}
	return d.SQL.PingContext(ctx)
}

func (d *DB) Close() {
	if d == nil {
		return
	}
	if d.SQL != nil {
		d.SQL.Close()
	}
	if d.Pool != nil {
		d.Pool.Close()
	}
}

// OpenDB connects to Postgres with the configured driver and makes sure the
// projects table exists.
func OpenDB(ctx context.Context, opt DBOptions) (*DB, error) {
	if opt.Config == nil || opt.Config.Host == "" {
		return nil, fmt.Errorf("DB_HOST is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	db := &DB{}
	switch opt.Config.Driver {
	case config.DriverPgx, "":
		pool, err := postgres.NewPool(cctx, opt.Config)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		db.Pool = pool
		db.SQL = stdlib.OpenDBFromPool(pool)
	case config.DriverPQ:
		sqlDB, err := postgres.NewConnection(cctx, opt.Config)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		db.SQL = sqlDB
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", opt.Config.Driver)
	}

	if err := repository.NewProjectRepository(db.SQL).EnsureSchema(cctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db schema: %w", err)
	}

	return db, nil
}
