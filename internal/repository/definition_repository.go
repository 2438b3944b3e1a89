// Package repository provides the storage edges of the catalogue: a
// PostgreSQL source for stop and bus definitions and a Redis cache for
// computed route statistics.
//
// Tables are created by migrations/001_create_catalogue.up.sql.
package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiva/transit-catalogue/internal/model"
)

// DefinitionRepository reads a complete batch of definitions from PostgreSQL.
type DefinitionRepository struct {
	pool *pgxpool.Pool
}

// NewDefinitionRepository creates a repository backed by the given PG pool.
func NewDefinitionRepository(pool *pgxpool.Pool) *DefinitionRepository {
	return &DefinitionRepository{pool: pool}
}

// ─── Row types ──────────────────────────────────────────────

type stopRow struct {
	Name      string
	Latitude  float64
	Longitude float64
}

type distanceRow struct {
	FromStop string
	ToStop   string
	Meters   int
}

// busStopRow is one stop of one bus. StopName is nil for a bus with no
// bus_stops rows (LEFT JOIN).
type busStopRow struct {
	Number      string
	IsRoundtrip bool
	StopName    *string
}

// LoadBatch reads every stop, road distance and bus in insertion order.
//
// All three queries run in one REPEATABLE READ, read-only transaction so the
// batch is a consistent snapshot even if definitions are edited concurrently.
func (r *DefinitionRepository) LoadBatch(ctx context.Context) (*model.Batch, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("begin load tx: %w", err)
	}
	// Read-only: rollback is the normal end of the transaction.
	defer tx.Rollback(ctx) //nolint:errcheck

	stops, err := queryStops(ctx, tx)
	if err != nil {
		return nil, err
	}
	distances, err := queryDistances(ctx, tx)
	if err != nil {
		return nil, err
	}
	buses, err := queryBusStops(ctx, tx)
	if err != nil {
		return nil, err
	}

	return assembleBatch(stops, distances, buses)
}

func queryStops(ctx context.Context, tx pgx.Tx) ([]stopRow, error) {
	rows, err := tx.Query(ctx, `
		SELECT name, latitude, longitude
		FROM stops
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query stops: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[stopRow])
	if err != nil {
		return nil, fmt.Errorf("scan stops: %w", err)
	}
	return out, nil
}

func queryDistances(ctx context.Context, tx pgx.Tx) ([]distanceRow, error) {
	rows, err := tx.Query(ctx, `
		SELECT d.from_stop, d.to_stop, d.meters
		FROM road_distances d
		JOIN stops s ON s.name = d.from_stop
		ORDER BY s.id, d.position`)
	if err != nil {
		return nil, fmt.Errorf("query road distances: %w", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByPos[distanceRow])
	if err != nil {
		return nil, fmt.Errorf("scan road distances: %w", err)
	}
	return out, nil
}

func queryBusStops(ctx context.Context, tx pgx.Tx) ([]busStopRow, error) {
	rows, err := tx.Query(ctx, `
		SELECT b.number, b.is_roundtrip, bs.stop_name
		FROM buses b
		LEFT JOIN bus_stops bs ON bs.bus_number = b.number
		ORDER BY b.id, bs.position`)
	if err != nil {
		return nil, fmt.Errorf("query bus stops: %w", err)
	}
	defer rows.Close()

	var out []busStopRow
	for rows.Next() {
		var row busStopRow
		if err := rows.Scan(&row.Number, &row.IsRoundtrip, &row.StopName); err != nil {
			return nil, fmt.Errorf("scan bus stop: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// assembleBatch groups flat rows into a batch. Distances are attached to the
// stop they start from; bus rows must arrive grouped by bus.
func assembleBatch(stops []stopRow, distances []distanceRow, busStops []busStopRow) (*model.Batch, error) {
	batch := &model.Batch{Stops: make([]model.StopDefinition, 0, len(stops))}
	index := make(map[string]int, len(stops))

	for _, s := range stops {
		index[s.Name] = len(batch.Stops)
		batch.Stops = append(batch.Stops, model.StopDefinition{
			Name:        s.Name,
			Coordinates: model.Coordinates{Lat: s.Latitude, Lng: s.Longitude},
		})
	}

	for _, d := range distances {
		i, ok := index[d.FromStop]
		if !ok {
			return nil, fmt.Errorf("road distance from unknown stop %q", d.FromStop)
		}
		batch.Stops[i].Distances = append(batch.Stops[i].Distances, model.DistanceDefinition{
			To:     d.ToStop,
			Meters: d.Meters,
		})
	}

	for _, row := range busStops {
		n := len(batch.Buses)
		if n == 0 || batch.Buses[n-1].Number != row.Number {
			batch.Buses = append(batch.Buses, model.BusDefinition{
				Number:     row.Number,
				IsCircular: row.IsRoundtrip,
			})
			n++
		}
		if row.StopName != nil {
			batch.Buses[n-1].Stops = append(batch.Buses[n-1].Stops, *row.StopName)
		}
	}

	return batch, nil
}
