package outbox

import (
	"context"
	"database/sql"
	"time"

	"github.com/felixgeelhaar/tribunal/internal/shared/infrastructure/database"
	"github.com/google/uuid"
)

// Timestamps are stored as fixed-width UTC text so they compare lexically.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000Z"

func sqliteTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseSQLiteTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t, err := time.Parse(sqliteTimeLayout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// SQLiteRepository implements Repository on SQLite for local mode.
type SQLiteRepository struct {
	conn database.Connection
	now  func() time.Time
}

// NewSQLiteRepository creates a new SQLite outbox repository.
func NewSQLiteRepository(conn database.Connection) *SQLiteRepository {
	return &SQLiteRepository{conn: conn, now: time.Now}
}

func (r *SQLiteRepository) Save(ctx context.Context, msg *Message) error {
	query := `
		INSERT INTO outbox (
			event_id, aggregate_type, aggregate_id, routing_key, payload, metadata, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`
	return database.ExecutorFromContext(ctx, r.conn).QueryRow(ctx, query,
		msg.EventID.String(),
		msg.AggregateType,
		msg.AggregateID,
		msg.RoutingKey,
		string(msg.Payload),
		string(msg.Metadata),
		sqliteTime(msg.CreatedAt),
	).Scan(&msg.ID)
}

func (r *SQLiteRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	query := `SELECT ` + selectColumns + `
		FROM outbox
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY created_at
		LIMIT ?
	`
	rows, err := r.conn.Query(ctx, query, sqliteTime(r.now()), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		var (
			msg                                      Message
			eventID, payload, createdAt              string
			metadata, publishedAt, nextRetry, deadAt sql.NullString
			lastError, deadReason                    sql.NullString
		)
		if err := rows.Scan(
			&msg.ID, &eventID, &msg.AggregateType, &msg.AggregateID, &msg.RoutingKey,
			&payload, &metadata, &createdAt, &publishedAt, &nextRetry, &msg.RetryCount,
			&lastError, &deadAt, &deadReason,
		); err != nil {
			return nil, err
		}
		msg.EventID, _ = uuid.Parse(eventID)
		msg.Payload = []byte(payload)
		if metadata.Valid {
			msg.Metadata = []byte(metadata.String)
		}
		if created := parseSQLiteTime(sql.NullString{String: createdAt, Valid: true}); created != nil {
			msg.CreatedAt = *created
		}
		msg.PublishedAt = parseSQLiteTime(publishedAt)
		msg.NextRetryAt = parseSQLiteTime(nextRetry)
		msg.DeadLetteredAt = parseSQLiteTime(deadAt)
		if lastError.Valid {
			msg.LastError = &lastError.String
		}
		if deadReason.Valid {
			msg.DeadLetterReason = &deadReason.String
		}
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}

func (r *SQLiteRepository) MarkPublished(ctx context.Context, id int64) error {
	_, err := r.conn.Exec(ctx, `UPDATE outbox SET published_at = ? WHERE id = ?`, sqliteTime(r.now()), id)
	return err
}

func (r *SQLiteRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	query := `
		UPDATE outbox
		SET retry_count = retry_count + 1,
			last_error = ?,
			next_retry_at = ?
		WHERE id = ?
	`
	_, err := r.conn.Exec(ctx, query, errMsg, sqliteTime(nextRetryAt), id)
	return err
}

func (r *SQLiteRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	query := `UPDATE outbox SET dead_lettered_at = ?, dead_letter_reason = ? WHERE id = ?`
	_, err := r.conn.Exec(ctx, query, sqliteTime(r.now()), reason, id)
	return err
}

func (r *SQLiteRepository) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := r.now().AddDate(0, 0, -olderThanDays)
	result, err := r.conn.Exec(ctx,
		`DELETE FROM outbox WHERE published_at IS NOT NULL AND published_at < ?`,
		sqliteTime(cutoff),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
