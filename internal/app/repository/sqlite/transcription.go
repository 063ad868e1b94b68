package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "stt-frontend/internal/app/errors"
	"stt-frontend/internal/app/model"
)

type SQLiteDB struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteDB opens the database file at dbFilePath.
func NewSQLiteDB(dbFilePath string) (*SQLiteDB, error) {
	db, err := Open(dbFilePath)
	if err != nil {
		return nil, err
	}
	return &SQLiteDB{db: db, now: time.Now}, nil
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) List(ctx context.Context) ([]model.Transcript, error) {
	sqlStr := `SELECT id, text, provider, created_at FROM transcriptions ORDER BY created_at DESC`
	rows, err := sdb.db.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	transcriptions := make([]model.Transcript, 0)
	for rows.Next() {
		var (
			t         model.Transcript
			createdMs int64
		)
		if err := rows.Scan(&t.ID, &t.Text, &t.Provider, &createdMs); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		t.CreatedAt = time.UnixMilli(createdMs).UTC()
		transcriptions = append(transcriptions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}
	return transcriptions, nil
}

func (sdb *SQLiteDB) Create(ctx context.Context, t model.Transcript) (model.Transcript, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = sdb.now().UTC()
	}
	t.CreatedAt = t.CreatedAt.Truncate(time.Millisecond)

	insertSQL := `INSERT INTO transcriptions (id, text, provider, created_at) VALUES (?, ?, ?, ?)`
	if _, err := sdb.db.ExecContext(ctx, insertSQL, t.ID, t.Text, t.Provider, t.CreatedAt.UnixMilli()); err != nil {
		return model.Transcript{}, fmt.Errorf("failed to insert transcription: %w", err)
	}
	return t, nil
}

func (sdb *SQLiteDB) Delete(ctx context.Context, id string) error {
	res, err := sdb.db.ExecContext(ctx, `DELETE FROM transcriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transcription: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.NotFound("transcription", id)
	}
	return nil
}
