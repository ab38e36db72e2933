package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/claro-core/internal/core/domain"
	"github.com/custodia-labs/claro-core/internal/core/ports/driven"
	"github.com/lib/pq"
)

// Verify interface compliance
var _ driven.RecordStore = (*RecordStore)(nil)
var _ driven.ContentSource = (*RecordStore)(nil)

// RecordStore implements driven.RecordStore using PostgreSQL. The full
// record is stored as JSONB next to a few filterable columns; it also
// serves as a ContentSource so deployments can build the registry
// straight from the database.
type RecordStore struct {
	db *DB
}

// NewRecordStore creates a new RecordStore
func NewRecordStore(db *DB) *RecordStore {
	return &RecordStore{db: db}
}

// Name identifies the store when used as a content source.
func (s *RecordStore) Name() string {
	return "postgres:content_records"
}

// Save creates or updates a record
func (s *RecordStore) Save(ctx context.Context, rec *domain.ContentRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", rec.ID, err)
	}

	query := `
		INSERT INTO content_records (id, type, name, name_es, status, tags, body, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			type = EXCLUDED.type,
			name = EXCLUDED.name,
			name_es = EXCLUDED.name_es,
			status = EXCLUDED.status,
			tags = EXCLUDED.tags,
			body = EXCLUDED.body,
			version = EXCLUDED.version,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		rec.ID,
		string(rec.Type),
		rec.Name,
		rec.NameEs,
		string(rec.Status),
		pq.Array(rec.Tags),
		body,
		rec.Version,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

// SaveBatch saves multiple records in a transaction
func (s *RecordStore) SaveBatch(ctx context.Context, recs []*domain.ContentRecord) error {
	return s.db.Transaction(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO content_records (id, type, name, name_es, status, tags, body, version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				type = EXCLUDED.type,
				name = EXCLUDED.name,
				name_es = EXCLUDED.name_es,
				status = EXCLUDED.status,
				tags = EXCLUDED.tags,
				body = EXCLUDED.body,
				version = EXCLUDED.version,
				updated_at = EXCLUDED.updated_at
		`
		for _, rec := range recs {
			body, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshal record %s: %w", rec.ID, err)
			}
			if _, err := tx.ExecContext(ctx, query,
				rec.ID,
				string(rec.Type),
				rec.Name,
				rec.NameEs,
				string(rec.Status),
				pq.Array(rec.Tags),
				body,
				rec.Version,
				rec.CreatedAt,
				rec.UpdatedAt,
			); err != nil {
				return fmt.Errorf("save record %s: %w", rec.ID, err)
			}
		}
		return nil
	})
}

// Get retrieves a record by ID
func (s *RecordStore) Get(ctx context.Context, id string) (*domain.ContentRecord, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM content_records WHERE id = $1`, id,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec domain.ContentRecord
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record %s: %w", id, err)
	}
	return &rec, nil
}

// List retrieves records, optionally filtered by status
func (s *RecordStore) List(ctx context.Context, status domain.RecordStatus) ([]*domain.ContentRecord, error) {
	query := `SELECT body FROM content_records ORDER BY id`
	args := []interface{}{}
	if status != "" {
		query = `SELECT body FROM content_records WHERE status = $1 ORDER BY id`
		args = append(args, string(status))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*domain.ContentRecord
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var rec domain.ContentRecord
		if err := json.Unmarshal(body, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Load implements ContentSource: every record, regardless of status.
// The build's validator decides what is servable, not the loader.
func (s *RecordStore) Load(ctx context.Context) ([]*domain.ContentRecord, error) {
	return s.List(ctx, "")
}

// Delete deletes a record
func (s *RecordStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM content_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count returns total record count
func (s *RecordStore) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM content_records`).Scan(&count)
	return count, err
}
