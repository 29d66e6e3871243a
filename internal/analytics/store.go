// Package analytics records privacy-conscious visitor and interaction metrics
// in SQLite. Client IPs are never stored, only salted hashes of them.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS visitors (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	hashed_ip TEXT NOT NULL,
	user_agent TEXT,
	path TEXT,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp);

CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	action TEXT NOT NULL,
	category TEXT NOT NULL,
	label TEXT,
	hashed_ip TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);
`

type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Event is a user interaction reported by the page or by the server itself.
type Event struct {
	Action   string `json:"action" binding:"required,max=64"`
	Category string `json:"category" binding:"required,max=64"`
	Label    string `json:"label" binding:"max=256"`
}

type EventCount struct {
	Action   string `json:"action"`
	Category string `json:"category"`
	Label    string `json:"label"`
	Count    int64  `json:"count"`
}

type Stats struct {
	TotalVisitors      int64            `json:"total_visitors"`
	UniqueVisitors     int64            `json:"unique_visitors"`
	VisitorsToday      int64            `json:"visitors_today"`
	VisitorsThisWeek   int64            `json:"visitors_this_week"`
	TotalEvents        int64            `json:"total_events"`
	ContactSubmissions map[string]int64 `json:"contact_submissions"`
	TopEvents          []EventCount     `json:"top_events"`
	RecentVisitors     []Visitor        `json:"recent_visitors"`
}

type Store struct {
	db     *sql.DB
	salt   string
	logger zerolog.Logger
	now    func() time.Time
	wg     sync.WaitGroup
}

// Open opens (or creates) the SQLite database at path and applies the schema.
func Open(path string, logger zerolog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	// one writer; also keeps a :memory: database alive across calls
	db.SetMaxOpenConns(1)

	s, err := New(db, randomSalt(), logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func New(db *sql.DB, salt string, logger zerolog.Logger) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate analytics db: %w", err)
	}
	return &Store{
		db:     db,
		salt:   salt,
		logger: logger.With().Str("component", "analytics").Logger(),
		now:    time.Now,
	}, nil
}

func randomSalt() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("analytics: read random salt: %v", err))
	}
	return hex.EncodeToString(b)
}

// HashIP is stable for the lifetime of the store's salt.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Close waits for background writes and closes the database.
func (s *Store) Close() error {
	s.wg.Wait()
	return s.db.Close()
}

func (s *Store) RecordVisit(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, path, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

func (s *Store) RecordEvent(ctx context.Context, ev Event, ip string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (action, category, label, hashed_ip, timestamp) VALUES (?, ?, ?, ?, ?)`,
		ev.Action, ev.Category, ev.Label, s.HashIP(ip), s.now().Unix())
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// Track records an event and logs instead of failing; analytics never break a request.
func (s *Store) Track(ctx context.Context, action, category, label, ip string) {
	ev := Event{Action: action, Category: category, Label: label}
	if err := s.RecordEvent(context.WithoutCancel(ctx), ev, ip); err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("error recording event")
	}
}

// Cleanup removes visitors and events older than maxAge.
func (s *Store) Cleanup(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := s.now().Add(-maxAge).Unix()
	var total int64
	for _, table := range []string{"visitors", "events"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE timestamp < ?`, cutoff)
		if err != nil {
			return total, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	if total > 0 {
		s.logger.Info().Int64("rows", total).Dur("max_age", maxAge).Msg("privacy cleanup removed old records")
	}
	return total, nil
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Unix()
	weekAgo := now.Add(-7 * 24 * time.Hour).Unix()

	stats := &Stats{}

	counts := []struct {
		query string
		args  []any
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM visitors`, nil, &stats.TotalVisitors},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{startOfDay}, &stats.VisitorsToday},
		{`SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{weekAgo}, &stats.VisitorsThisWeek},
		{`SELECT COUNT(*) FROM events`, nil, &stats.TotalEvents},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	var err error
	if stats.ContactSubmissions, err = s.contactSubmissions(ctx); err != nil {
		return nil, err
	}
	if stats.TopEvents, err = s.topEvents(ctx, 10); err != nil {
		return nil, err
	}
	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	return stats, nil
}

func (s *Store) contactSubmissions(ctx context.Context) (map[string]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(label, ''), COUNT(*) FROM events
		WHERE category = 'contact' AND action = 'submit'
		GROUP BY label`)
	if err != nil {
		return nil, fmt.Errorf("stats contact: %w", err)
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var label string
		var n int64
		if err := rows.Scan(&label, &n); err != nil {
			return nil, fmt.Errorf("stats contact: %w", err)
		}
		out[label] += n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats contact: %w", err)
	}
	return out, nil
}

func (s *Store) topEvents(ctx context.Context, limit int) ([]EventCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT action, category, COALESCE(label, ''), COUNT(*) AS n FROM events
		GROUP BY action, category, label
		ORDER BY n DESC, action
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("stats top events: %w", err)
	}
	defer rows.Close()

	var events []EventCount
	for rows.Next() {
		var ec EventCount
		if err := rows.Scan(&ec.Action, &ec.Category, &ec.Label, &ec.Count); err != nil {
			return nil, fmt.Errorf("stats top events: %w", err)
		}
		events = append(events, ec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stats top events: %w", err)
	}
	return events, nil
}

func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var visitors []Visitor
	for rows.Next() {
		var v Visitor
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("recent visitors: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		visitors = append(visitors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	return visitors, nil
}
