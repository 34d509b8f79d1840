package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthSnapshot is the last known health of a named entity.
type HealthSnapshot struct {
	Owner     string
	Current   int32
	Max       int32
	Dead      bool
	UpdatedAt time.Time
}

// DamageEvent is one applied hit.
type DamageEvent struct {
	Owner     string
	Amount    int32
	Remaining int32
	At        time.Time
}

// HealthRepository stores health snapshots and the damage log.
type HealthRepository struct {
	pool *pgxpool.Pool
}

// NewHealthRepository creates a new health repository.
func NewHealthRepository(pool *pgxpool.Pool) *HealthRepository {
	return &HealthRepository{pool: pool}
}

// SaveSnapshot upserts the snapshot of s.Owner.
func (r *HealthRepository) SaveSnapshot(ctx context.Context, s HealthSnapshot) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO health_snapshots (owner, current_hp, max_hp, dead, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (owner) DO UPDATE
		SET current_hp = EXCLUDED.current_hp,
		    max_hp     = EXCLUDED.max_hp,
		    dead       = EXCLUDED.dead,
		    updated_at = EXCLUDED.updated_at
	`, s.Owner, s.Current, s.Max, s.Dead)
	if err != nil {
		return fmt.Errorf("saving health snapshot of %q: %w", s.Owner, err)
	}
	return nil
}

// LoadSnapshot returns the snapshot of owner; false if none was saved.
func (r *HealthRepository) LoadSnapshot(ctx context.Context, owner string) (HealthSnapshot, bool, error) {
	s := HealthSnapshot{Owner: owner}
	err := r.pool.QueryRow(ctx, `
		SELECT current_hp, max_hp, dead, updated_at
		FROM health_snapshots
		WHERE owner = $1
	`, owner).Scan(&s.Current, &s.Max, &s.Dead, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return HealthSnapshot{}, false, nil
		}
		return HealthSnapshot{}, false, fmt.Errorf("loading health snapshot of %q: %w", owner, err)
	}
	return s, true, nil
}

// RecordDamage appends e to the damage log.
func (r *HealthRepository) RecordDamage(ctx context.Context, e DamageEvent) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO damage_events (owner, amount, remaining)
		VALUES ($1, $2, $3)
	`, e.Owner, e.Amount, e.Remaining)
	if err != nil {
		return fmt.Errorf("recording damage of %q: %w", e.Owner, err)
	}
	return nil
}

// DamageHistory returns up to limit most recent hits of owner, newest first.
func (r *HealthRepository) DamageHistory(ctx context.Context, owner string, limit int) ([]DamageEvent, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT amount, remaining, created_at
		FROM damage_events
		WHERE owner = $1
		ORDER BY id DESC
		LIMIT $2
	`, owner, limit)
	if err != nil {
		return nil, fmt.Errorf("querying damage history of %q: %w", owner, err)
	}
	defer rows.Close()

	var events []DamageEvent
	for rows.Next() {
		e := DamageEvent{Owner: owner}
		if err := rows.Scan(&e.Amount, &e.Remaining, &e.At); err != nil {
			return nil, fmt.Errorf("scanning damage event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating damage events: %w", err)
	}
	return events, nil
}
