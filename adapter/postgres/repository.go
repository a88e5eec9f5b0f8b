package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"hnsync/domain"
)

type Repository struct{ db *sql.DB }

func New(db *sql.DB) *Repository { return &Repository{db: db} }

// Ensure applies CurrentSchema and records its version. Safe to call on
// every start.
func (r *Repository) Ensure(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %w", domain.ErrStorage, err)
	}
	defer tx.Rollback()

	for _, stmt := range CurrentSchema.Statements() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%w: ensure schema: %w", domain.ErrStorage, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY, applied_at TIMESTAMP NOT NULL DEFAULT now())`); err != nil {
		return fmt.Errorf("%w: ensure schema_migrations: %w", domain.ErrStorage, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT (version) DO NOTHING`, CurrentSchema.Version); err != nil {
		return fmt.Errorf("%w: record schema version: %w", domain.ErrStorage, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit schema: %w", domain.ErrStorage, err)
	}
	return nil
}

func (r *Repository) SchemaVersion(ctx context.Context) (int, error) {
	var v sql.NullInt64
	if err := r.db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, err
	}
	return int(v.Int64), nil
}

// SaveStories checks each id and inserts it only when absent, all inside one
// transaction committed once. Existing rows are never touched.
func (r *Repository) SaveStories(ctx context.Context, stories []domain.Story) (map[int64]bool, error) {
	inserted := make(map[int64]bool, len(stories))
	if len(stories) == 0 {
		return inserted, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %w", domain.ErrStorage, err)
	}
	defer tx.Rollback()

	for _, s := range stories {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM stories WHERE id = $1)`, s.ID).Scan(&exists); err != nil {
			return nil, fmt.Errorf("%w: lookup story %d: %w", domain.ErrStorage, s.ID, err)
		}
		if exists {
			if _, seen := inserted[s.ID]; !seen {
				inserted[s.ID] = false
			}
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO stories (id, title, url, submitter, score, submitted_at) VALUES ($1,$2,$3,$4,$5,$6)`,
			s.ID, s.Title, s.URL, s.Submitter, s.Score, s.SubmittedAt)
		if err != nil {
			return nil, fmt.Errorf("%w: insert story %d: %w", domain.ErrStorage, s.ID, err)
		}
		inserted[s.ID] = true
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %w", domain.ErrStorage, err)
	}
	return inserted, nil
}

func (r *Repository) ListLatest(ctx context.Context, limit int) ([]domain.Story, error) {
	q := `SELECT id, title, url, submitter, score, submitted_at FROM stories ORDER BY submitted_at DESC, id DESC`
	if limit > 0 {
		q += ` LIMIT $1`
		return scanStories(r.db.QueryContext(ctx, q, limit))
	}
	return scanStories(r.db.QueryContext(ctx, q))
}

// GetStory returns sql.ErrNoRows when the id is unknown.
func (r *Repository) GetStory(ctx context.Context, id int64) (domain.Story, error) {
	var s domain.Story
	row := r.db.QueryRowContext(ctx, `SELECT id, title, url, submitter, score, submitted_at FROM stories WHERE id = $1`, id)
	if err := row.Scan(&s.ID, &s.Title, &s.URL, &s.Submitter, &s.Score, &s.SubmittedAt); err != nil {
		return domain.Story{}, err
	}
	return s, nil
}

// DeleteStory removes a story and its vote events. It returns the number of
// stories deleted.
func (r *Repository) DeleteStory(ctx context.Context, id int64) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM vote_events WHERE story_id = $1`, id); err != nil {
		return 0, err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return rows, nil
}

// VoteCounts returns likes and dislikes per story. Stories without votes are
// absent from the map.
func (r *Repository) VoteCounts(ctx context.Context, ids []int64) (map[int64]domain.VoteCounts, error) {
	out := make(map[int64]domain.VoteCounts, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT story_id,
       COALESCE(SUM(CASE WHEN is_like THEN 1 ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN is_like THEN 0 ELSE 1 END), 0)
FROM vote_events
WHERE story_id = ANY($1)
GROUP BY story_id`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id int64
		var c domain.VoteCounts
		if err := rows.Scan(&id, &c.Likes, &c.Dislikes); err != nil {
			return nil, err
		}
		out[id] = c
	}
	return out, rows.Err()
}

func scanStories(rows *sql.Rows, err error) ([]domain.Story, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Story
	for rows.Next() {
		var s domain.Story
		if err := rows.Scan(&s.ID, &s.Title, &s.URL, &s.Submitter, &s.Score, &s.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
