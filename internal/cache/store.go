package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	apperrors "github.com/yctseng/remindkit/internal/errors"
	"github.com/yctseng/remindkit/internal/models"
)

// stateKeyShouldRestore is the app_state key holding the restoration flag.
const stateKeyShouldRestore = "should_restore"

// Store provides the local cache operations consumed by the restore and
// workflow coordinators.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over an open database.
func NewStore(db *DB) *Store {
	return &Store{db: db.DB}
}

// =====================================================
// Cached Items
// =====================================================

// PutItem inserts or replaces a cached item.
func (s *Store) PutItem(ctx context.Context, item *models.Item) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO cached_items (id, name, deadline, category, note, image_ref, pinned, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.Deadline, item.Category, item.Note, item.ImageRef, item.Pinned, item.CreatedAt)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCache, "failed to cache item", err)
	}
	return nil
}

// GetItem returns the cached item with the given id, or NOT_FOUND.
func (s *Store) GetItem(ctx context.Context, id models.UUID) (*models.Item, error) {
	var item models.Item
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, deadline, category, note, image_ref, pinned, created_at
		FROM cached_items WHERE id = ?`, id).
		Scan(&item.ID, &item.Name, &item.Deadline, &item.Category, &item.Note,
			&item.ImageRef, &item.Pinned, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("item %s not cached", id))
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCache, "failed to read cached item", err)
	}
	return &item, nil
}

// ListItems returns all cached items ordered by deadline.
func (s *Store) ListItems(ctx context.Context) ([]*models.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, deadline, category, note, image_ref, pinned, created_at
		FROM cached_items ORDER BY deadline ASC`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCache, "failed to list cached items", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Deadline, &item.Category,
			&item.Note, &item.ImageRef, &item.Pinned, &item.CreatedAt); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCache, "failed to scan cached item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCache, "failed to iterate cached items", err)
	}
	return items, nil
}

// DeleteItem removes one cached item.
func (s *Store) DeleteItem(ctx context.Context, id models.UUID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cached_items WHERE id = ?`, id); err != nil {
		return apperrors.Wrap(apperrors.ErrCache, "failed to delete cached item", err)
	}
	return nil
}

// PurgeItems deletes every cached item and returns the ids that were removed,
// so callers can cancel exactly those notifications.
func (s *Store) PurgeItems(ctx context.Context) ([]string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCache, "failed to begin purge", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `SELECT id FROM cached_items`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCache, "failed to collect item ids", err)
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, apperrors.Wrap(apperrors.ErrCache, "failed to scan item id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, apperrors.Wrap(apperrors.ErrCache, "failed to iterate item ids", err)
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cached_items`); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCache, "failed to purge cached items", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCache, "failed to commit purge", err)
	}
	return ids, nil
}

// =====================================================
// Notification Config
// =====================================================

// SaveConfig upserts the single notification configuration row.
func (s *Store) SaveConfig(ctx context.Context, cfg models.NotificationConfig) error {
	if err := cfg.Validate(); err != nil {
		return apperrors.Wrap(apperrors.ErrValidation, "invalid notification config", err)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notification_config (id, lead_days, hour, minute) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET lead_days = excluded.lead_days,
			hour = excluded.hour, minute = excluded.minute`,
		cfg.LeadDays, cfg.Hour, cfg.Minute)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCache, "failed to save notification config", err)
	}
	return nil
}

// Config returns the cached notification configuration, or NOT_FOUND when
// none has been saved.
func (s *Store) Config(ctx context.Context) (models.NotificationConfig, error) {
	var cfg models.NotificationConfig
	err := s.db.QueryRowContext(ctx,
		`SELECT lead_days, hour, minute FROM notification_config WHERE id = 1`).
		Scan(&cfg.LeadDays, &cfg.Hour, &cfg.Minute)
	if err == sql.ErrNoRows {
		return cfg, apperrors.New(apperrors.ErrNotFound, "notification config not cached")
	}
	if err != nil {
		return cfg, apperrors.Wrap(apperrors.ErrCache, "failed to read notification config", err)
	}
	return cfg, nil
}

// DeleteConfig removes the cached configuration row.
func (s *Store) DeleteConfig(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notification_config`); err != nil {
		return apperrors.Wrap(apperrors.ErrCache, "failed to delete notification config", err)
	}
	return nil
}

// =====================================================
// Recent Searches
// =====================================================

// AddSearch records a search query, refreshing its timestamp on repeat.
func (s *Store) AddSearch(ctx context.Context, query string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO recent_searches (query, searched_at) VALUES (?, ?)
		ON CONFLICT(query) DO UPDATE SET searched_at = excluded.searched_at`,
		query, time.Now().Unix())
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCache, "failed to record search", err)
	}
	return nil
}

// RecentSearches returns up to limit queries, most recent first.
func (s *Store) RecentSearches(ctx context.Context, limit int) ([]models.RecentSearch, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT query, searched_at FROM recent_searches
		ORDER BY searched_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCache, "failed to list searches", err)
	}
	defer rows.Close()

	var searches []models.RecentSearch
	for rows.Next() {
		var rs models.RecentSearch
		if err := rows.Scan(&rs.Query, &rs.SearchedAt); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCache, "failed to scan search", err)
		}
		searches = append(searches, rs)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCache, "failed to iterate searches", err)
	}
	return searches, nil
}

// ClearSearches deletes the whole search history.
func (s *Store) ClearSearches(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recent_searches`); err != nil {
		return apperrors.Wrap(apperrors.ErrCache, "failed to clear searches", err)
	}
	return nil
}

// =====================================================
// Restoration Flag
// =====================================================

// ShouldRestore reports whether a restoration pass is owed. A missing row
// reads as false.
func (s *Store) ShouldRestore(ctx context.Context) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, stateKeyShouldRestore).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, apperrors.Wrap(apperrors.ErrCache, "failed to read restoration flag", err)
	}
	return value == "1", nil
}

// SetShouldRestore durably writes the restoration flag.
func (s *Store) SetShouldRestore(ctx context.Context, v bool) error {
	value := "0"
	if v {
		value = "1"
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		stateKeyShouldRestore, value)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCache, "failed to write restoration flag", err)
	}
	return nil
}

// =====================================================
// Cached Credential
// =====================================================

// SaveCredential caches the long-lived credential for the signed-in account.
func (s *Store) SaveCredential(ctx context.Context, cred *models.Credential) error {
	if cred.StoredAt == 0 {
		cred.StoredAt = time.Now().Unix()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO credentials (user_id, token, stored_at) VALUES (?, ?, ?)`,
		cred.UserID, cred.Token, cred.StoredAt)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCache, "failed to save credential", err)
	}
	return nil
}

// Credential returns the cached credential, or NOT_FOUND.
func (s *Store) Credential(ctx context.Context) (*models.Credential, error) {
	var cred models.Credential
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, token, stored_at FROM credentials LIMIT 1`).
		Scan(&cred.UserID, &cred.Token, &cred.StoredAt)
	if err == sql.ErrNoRows {
		return nil, apperrors.New(apperrors.ErrNotFound, "no cached credential")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCache, "failed to read credential", err)
	}
	return &cred, nil
}

// DeleteCredential removes the cached credential.
func (s *Store) DeleteCredential(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM credentials`); err != nil {
		return apperrors.Wrap(apperrors.ErrCache, "failed to delete credential", err)
	}
	return nil
}
