package listings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"dira-chat-backend/internal/bot"
)

// Repository is the Postgres listings backend behind bot.Searcher.
type Repository struct {
	db  *sqlx.DB
	log *slog.Logger
}

func NewRepository(dsn string, maxConns, maxIdle int, log *slog.Logger) (*Repository, error) {
	if dsn == "" {
		return nil, fmt.Errorf("listings database DSN is required")
	}
	if log == nil {
		log = slog.Default()
	}
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		// Local setups frequently run without SSL; retry once unless the
		// DSN already says otherwise.
		if !strings.Contains(strings.ToLower(dsn), "sslmode") {
			log.Warn("database connection failed, retrying with SSL disabled")
			sep := "?"
			if strings.Contains(dsn, "?") {
				sep = "&"
			}
			db, err = sqlx.Connect("postgres", dsn+sep+"sslmode=disable")
		}
		if err != nil {
			return nil, fmt.Errorf("connect to listings database: %w", err)
		}
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	return &Repository{db: db, log: log}, nil
}

func (r *Repository) Close() error { return r.db.Close() }

type listingRow struct {
	Zone    string `db:"zone"`
	City    string `db:"city"`
	Address string `db:"address"`
	Price   *int   `db:"price"`
	Floor   *int   `db:"floor"`
	Rooms   *int   `db:"rooms"`
	Size    *int   `db:"size"`
}

// Search runs the filtered apartment query and returns raw records.
func (r *Repository) Search(ctx context.Context, f bot.Filters) ([]bot.Listing, error) {
	query, args := buildSearchQuery(f)
	rows := []listingRow{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("search listings: %w", err)
	}
	out := make([]bot.Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, bot.Listing{
			Zone:    row.Zone,
			City:    row.City,
			Address: row.Address,
			Price:   row.Price,
			Floor:   row.Floor,
			Rooms:   row.Rooms,
			Size:    row.Size,
		})
	}
	return out, nil
}

func buildSearchQuery(f bot.Filters) (string, []interface{}) {
	where := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	add := func(clause string, v interface{}) {
		where = append(where, fmt.Sprintf(clause, argIndex))
		args = append(args, v)
		argIndex++
	}

	if f.City != "" {
		add("city = $%d", f.City)
	}
	if f.Zone != "" {
		add("zone = $%d", f.Zone)
	}
	if f.MinPrice != nil {
		add("price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("price <= $%d", *f.MaxPrice)
	}
	if f.Rooms != nil {
		add("rooms = $%d", *f.Rooms)
	}
	if f.Floor != nil {
		add("floor = $%d", *f.Floor)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(
		"SELECT zone, city, address, price, floor, rooms, size FROM apartments WHERE %s ORDER BY price ASC NULLS LAST LIMIT $%d",
		strings.Join(where, " AND "), argIndex,
	)
	args = append(args, limit)
	return query, args
}
