package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var untrackedPrefixes = []string{"/static/", "/images/", "/admin/", "/favicon", "/api/"}

// Middleware records page visits in the background. Static assets, API calls
// and admin pages are skipped, and so is any request sent with DNT: 1.
func (s *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.GetHeader("DNT") == "1" || untracked(path) {
			c.Next()
			return
		}

		ip, ua := c.ClientIP(), c.Request.UserAgent()
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.RecordVisit(ctx, ip, ua, path); err != nil {
				s.logger.Error().Err(err).Msg("error recording visitor")
			}
		}()
		c.Next()
	}
}

func untracked(path string) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// RunCleanup deletes expired rows now and then every interval until ctx is done.
func (s *Store) RunCleanup(ctx context.Context, maxAge, interval time.Duration) {
	for {
		if _, err := s.Cleanup(ctx, maxAge); err != nil {
			s.logger.Error().Err(err).Msg("error cleaning up old analytics data")
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}
