package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	s, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHashIP(t *testing.T) {
	s := newTestStore(t)

	h := s.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, s.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, s.HashIP("203.0.113.8"))
	assert.NotContains(t, h, "203")
}

func TestStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	s.now = func() time.Time { return now.Add(-10 * 24 * time.Hour) }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/"))
	s.now = func() time.Time { return now.Add(-3 * 24 * time.Hour) }
	require.NoError(t, s.RecordVisit(ctx, "2.2.2.2", "ua", "/"))
	s.now = func() time.Time { return now }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/projects"))

	s.Track(ctx, "submit", "contact", "accepted", "1.1.1.1")
	s.Track(ctx, "submit", "contact", "accepted", "2.2.2.2")
	s.Track(ctx, "submit", "contact", "rejected", "2.2.2.2")
	s.Track(ctx, "filter", "skills", "AI", "2.2.2.2")

	stats, err := s.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalVisitors)
	assert.Equal(t, int64(2), stats.UniqueVisitors)
	assert.Equal(t, int64(1), stats.VisitorsToday)
	assert.Equal(t, int64(2), stats.VisitorsThisWeek)
	assert.Equal(t, int64(4), stats.TotalEvents)
	assert.Equal(t, map[string]int64{"accepted": 2, "rejected": 1}, stats.ContactSubmissions)
	require.NotEmpty(t, stats.TopEvents)
	assert.Equal(t, EventCount{Action: "submit", Category: "contact", Label: "accepted", Count: 2}, stats.TopEvents[0])
	require.Len(t, stats.RecentVisitors, 3)
	assert.Equal(t, "/projects", stats.RecentVisitors[0].Path)
}

func TestStats_NullLabelCountsAsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (action, category, label, hashed_ip, timestamp) VALUES ('submit', 'contact', NULL, 'x', 1)`)
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"": 1}, stats.ContactSubmissions)
}

func TestStats_ScanErrorIsReturned(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/"))

	// a non-numeric timestamp survives INTEGER affinity as TEXT and cannot scan into int64
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, timestamp) VALUES ('x', 'ua', '/', 'not-a-time')`)
	require.NoError(t, err)

	stats, err := s.Stats(ctx)
	assert.Error(t, err)
	assert.Nil(t, stats)

	visitors, err := s.RecentVisitors(ctx, 10)
	assert.Error(t, err)
	assert.Nil(t, visitors)
}

func TestCleanup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	s.now = func() time.Time { return now.Add(-400 * 24 * time.Hour) }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/"))
	require.NoError(t, s.RecordEvent(ctx, Event{Action: "view_item", Category: "projects"}, "1.1.1.1"))
	s.now = func() time.Time { return now }
	require.NoError(t, s.RecordVisit(ctx, "1.1.1.1", "ua", "/"))

	n, err := s.Cleanup(ctx, 365*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalVisitors)
	assert.Zero(t, stats.TotalEvents)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := newTestStore(t)

	r := gin.New()
	r.Use(s.Middleware())
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/", ok)
	r.GET("/static/app.css", ok)
	r.GET("/api/projects", ok)

	send := func(path string, dnt bool) {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if dnt {
			req.Header.Set("DNT", "1")
		}
		r.ServeHTTP(httptest.NewRecorder(), req)
	}
	send("/", false)
	send("/", true)
	send("/static/app.css", false)
	send("/api/projects", false)
	s.wg.Wait()

	visitors, err := s.RecentVisitors(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, visitors, 1)
	assert.Equal(t, "/", visitors[0].Path)
}

func TestRunCleanup_StopsWithContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		s.RunCleanup(ctx, time.Hour, time.Hour)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunCleanup did not return after cancel")
	}
}
