package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS ragnarok_matches (
	id         UUID PRIMARY KEY,
	seed       BIGINT NOT NULL,
	rules      JSONB NOT NULL,
	seats      JSONB NOT NULL,
	players    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS ragnarok_actions (
	match_id   UUID NOT NULL REFERENCES ragnarok_matches (id) ON DELETE CASCADE,
	seq        INTEGER NOT NULL,
	action     JSONB NOT NULL,
	state_hash TEXT NOT NULL,
	success    BOOLEAN NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (match_id, seq)
);`

// PostgresJournal is a Journal backed by PostgreSQL.
type PostgresJournal struct {
	pool *pgxpool.Pool
}

// NewPostgresJournal connects to url and makes sure the tables exist.
func NewPostgresJournal(ctx context.Context, url string) (*PostgresJournal, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("creating journal tables: %w", err)
	}
	return &PostgresJournal{pool: pool}, nil
}

func (j *PostgresJournal) Close() { j.pool.Close() }

func (j *PostgresJournal) CreateMatch(ctx context.Context, rec MatchRecord) error {
	rules, err := json.Marshal(rec.Rules)
	if err != nil {
		return err
	}
	seats, err := json.Marshal(rec.Seats)
	if err != nil {
		return err
	}
	players, err := json.Marshal(rec.Players)
	if err != nil {
		return err
	}
	_, err = j.pool.Exec(ctx,
		`INSERT INTO ragnarok_matches (id, seed, rules, seats, players, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, int64(rec.Seed), rules, seats, players, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting match %s: %w", rec.ID, err)
	}
	return nil
}

func (j *PostgresJournal) Match(ctx context.Context, id uuid.UUID) (MatchRecord, error) {
	var (
		rec          MatchRecord
		seed         int64
		rules, seats []byte
		players      []byte
	)
	err := j.pool.QueryRow(ctx,
		`SELECT id, seed, rules, seats, players, created_at FROM ragnarok_matches WHERE id = $1`, id,
	).Scan(&rec.ID, &seed, &rules, &seats, &players, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return MatchRecord{}, ErrNotFound
	}
	if err != nil {
		return MatchRecord{}, fmt.Errorf("loading match %s: %w", id, err)
	}
	rec.Seed = uint32(seed)
	if err := json.Unmarshal(rules, &rec.Rules); err != nil {
		return MatchRecord{}, err
	}
	if err := json.Unmarshal(seats, &rec.Seats); err != nil {
		return MatchRecord{}, err
	}
	if err := json.Unmarshal(players, &rec.Players); err != nil {
		return MatchRecord{}, err
	}
	return rec, nil
}

func (j *PostgresJournal) Append(ctx context.Context, e Entry) error {
	action, err := json.Marshal(e.Action)
	if err != nil {
		return err
	}
	_, err = j.pool.Exec(ctx,
		`INSERT INTO ragnarok_actions (match_id, seq, action, state_hash, success, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.MatchID, e.Seq, action, e.Hash, e.Success, e.At)
	if err != nil {
		return fmt.Errorf("journaling match %s seq %d: %w", e.MatchID, e.Seq, err)
	}
	return nil
}

func (j *PostgresJournal) Entries(ctx context.Context, id uuid.UUID) ([]Entry, error) {
	if _, err := j.Match(ctx, id); err != nil {
		return nil, err
	}
	rows, err := j.pool.Query(ctx,
		`SELECT seq, action, state_hash, success, created_at FROM ragnarok_actions
		 WHERE match_id = $1 ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("reading journal of %s: %w", id, err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e := Entry{MatchID: id}
		var action []byte
		if err := rows.Scan(&e.Seq, &action, &e.Hash, &e.Success, &e.At); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(action, &e.Action); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
