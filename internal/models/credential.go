package models

import "time"

// Credential is the locally cached long-lived credential for the signed-in
// account. The auth protocol itself is out of scope; this subsystem only
// deletes the cached copy during account teardown.
type Credential struct {
	UserID   UUID   `db:"user_id" json:"user_id"`
	Token    string `db:"token" json:"token"`
	StoredAt int64  `db:"stored_at" json:"stored_at"`
}

// TableName returns the local cache table name for Credential.
func (Credential) TableName() string {
	return "credentials"
}

// RecentSearch is one entry of the locally cached search history, purged as
// part of the cache-purge workflow.
type RecentSearch struct {
	Query      string `db:"query" json:"query"`
	SearchedAt int64  `db:"searched_at" json:"searched_at"`
}

// TableName returns the local cache table name for RecentSearch.
func (RecentSearch) TableName() string {
	return "recent_searches"
}

// SearchedAtTime returns the SearchedAt as time.Time.
func (s *RecentSearch) SearchedAtTime() time.Time {
	return time.Unix(s.SearchedAt, 0)
}
