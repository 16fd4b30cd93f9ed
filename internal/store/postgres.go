package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/nexus-group/quote-intel/internal/db"
	"github.com/nexus-group/quote-intel/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"insert_analysis": `INSERT INTO analyses (id, vendor_name, trust_score, payload, created_at) VALUES ($1, $2, $3, $4, $5)`,
	"get_analysis":    `SELECT payload FROM analyses WHERE id = $1`,
	"clear_analyses":  `DELETE FROM analyses`,
	"insert_audit":    `INSERT INTO audit_log (id, action, details, timestamp) VALUES ($1, $2, $3, $4)`,
	"list_audit":      `SELECT id, action, details, timestamp FROM audit_log ORDER BY timestamp DESC LIMIT $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS analyses (
	id          TEXT PRIMARY KEY,
	vendor_name TEXT NOT NULL,
	trust_score DOUBLE PRECISION NOT NULL,
	payload     JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS audit_log (
	id        TEXT PRIMARY KEY,
	action    TEXT NOT NULL,
	details   JSONB,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_analyses_vendor ON analyses(vendor_name);
CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_log(timestamp DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveAnalysis(ctx context.Context, a *model.VendorAnalysis) error {
	if a == nil {
		return eris.New("postgres: save nil analysis")
	}
	fillIdentity(a)

	payload, err := json.Marshal(a)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal analysis")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO analyses (id, vendor_name, trust_score, payload, created_at) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.VendorName, a.NexusTrustScore, payload, a.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: insert analysis %s", a.ID)
}

// SaveAnalyses bulk-inserts a batch of analyses over the COPY protocol.
func (s *PostgresStore) SaveAnalyses(ctx context.Context, batch []*model.VendorAnalysis) error {
	if len(batch) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(batch))
	for _, a := range batch {
		if a == nil {
			return eris.New("postgres: save nil analysis")
		}
		fillIdentity(a)
		payload, err := json.Marshal(a)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal analysis")
		}
		rows = append(rows, []any{a.ID, a.VendorName, a.NexusTrustScore, payload, a.CreatedAt})
	}

	_, err := db.CopyInto(ctx, s.pool, "analyses",
		[]string{"id", "vendor_name", "trust_score", "payload", "created_at"}, rows)
	return eris.Wrap(err, "postgres: batch insert analyses")
}

func (s *PostgresStore) GetAnalysis(ctx context.Context, id string) (*model.VendorAnalysis, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM analyses WHERE id = $1`, id,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrapf(err, "postgres: get analysis %s", id)
	}

	var a model.VendorAnalysis
	if err := json.Unmarshal(payload, &a); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal analysis")
	}
	return &a, nil
}

func (s *PostgresStore) ListAnalyses(ctx context.Context, filter ListFilter) ([]model.VendorAnalysis, error) {
	query := `SELECT payload FROM analyses WHERE true`
	args := []any{}
	argIdx := 1

	if filter.VendorName != "" {
		query += fmt.Sprintf(` AND lower(vendor_name) = lower($%d)`, argIdx)
		args = append(args, filter.VendorName)
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list analyses")
	}
	defer rows.Close()

	var out []model.VendorAnalysis
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan analysis")
		}
		var a model.VendorAnalysis
		if err := json.Unmarshal(payload, &a); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal analysis")
		}
		out = append(out, a)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list analyses iterate")
}

func (s *PostgresStore) ClearAnalyses(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM analyses`)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: clear analyses")
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) AppendAudit(ctx context.Context, entry model.AuditEntry) error {
	fillAuditIdentity(&entry)

	var details []byte
	if entry.Details != nil {
		b, err := json.Marshal(entry.Details)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal audit details")
		}
		details = b
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO audit_log (id, action, details, timestamp) VALUES ($1, $2, $3, $4)`,
		entry.ID, entry.Action, details, entry.Timestamp,
	)
	return eris.Wrap(err, "postgres: insert audit entry")
}

func (s *PostgresStore) ListAudit(ctx context.Context, limit int) ([]model.AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, action, details, timestamp FROM audit_log ORDER BY timestamp DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list audit")
	}
	defer rows.Close()

	var out []model.AuditEntry
	for rows.Next() {
		var e model.AuditEntry
		var details *[]byte
		if err := rows.Scan(&e.ID, &e.Action, &details, &e.Timestamp); err != nil {
			return nil, eris.Wrap(err, "postgres: scan audit entry")
		}
		if details != nil {
			if err := json.Unmarshal(*details, &e.Details); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal audit details")
			}
		}
		out = append(out, e)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list audit iterate")
}
