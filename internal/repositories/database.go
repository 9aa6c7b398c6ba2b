package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/apparel-storefront/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB *sql.DB
}

type Repositories struct {
	Cart    CartRepository
	Coupon  CouponRepository
	Product ProductRepository
	Order   OrderRepository
}

// New opens the instrumented Postgres pool and builds every SQL-backed repository on it.
func New(ctx context.Context, cfg *config.Config) (*Repository, *Repositories, error) {
	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()

		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	postgresInstance := &Repository{DB: db}

	if cfg.Database.RunMigrations {
		if err := postgresInstance.RunMigrations(); err != nil {
			db.Close()

			return nil, nil, err
		}
	}

	repos := &Repositories{
		Cart:    NewCartRepo(db),
		Coupon:  NewCouponRepo(db),
		Product: NewProductRepo(db),
		Order:   NewOrderRepo(db),
	}

	return postgresInstance, repos, nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
