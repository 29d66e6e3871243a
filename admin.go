// admin.go - token-protected analytics views
package main

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const adminCookie = "admin_token"

func generateAdminToken() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}

func (a *app) adminConfigured() bool {
	return a.cfg.Admin.Username != "" && a.cfg.Admin.Password != ""
}

func (a *app) validAdminToken(token string) bool {
	return token != "" && subtle.ConstantTimeCompare([]byte(token), []byte(a.adminToken)) == 1
}

// Accepts the session cookie or an "Authorization: Bearer <token>" header.
func (a *app) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if !a.validAdminToken(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func (a *app) setupAdminRoutes(r *gin.Engine) {
	if !a.adminConfigured() {
		a.logger.Warn().Msg("admin routes disabled: set ADMIN_USERNAME and ADMIN_PASSWORD")
		return
	}
	a.logger.Info().Msg("admin access available at /admin/login")
	if gin.Mode() == gin.DebugMode {
		a.logger.Debug().Str("token", a.adminToken).Msg("admin token (dev only)")
	}

	r.POST("/admin/login", func(c *gin.Context) {
		username := c.PostForm("username")
		password := c.PostForm("password")

		userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.cfg.Admin.Username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.Admin.Password)) == 1
		if !userOK || !passOK {
			a.logger.Warn().Str("client", a.analytics.HashIP(c.ClientIP())).Msg("failed admin login attempt")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		c.SetCookie(adminCookie, a.adminToken, int((24 * time.Hour).Seconds()), "/admin", "", false, true)
		a.logger.Info().Str("client", a.analytics.HashIP(c.ClientIP())).Msg("admin login successful")
		c.JSON(http.StatusOK, gin.H{"message": "Logged in", "token": a.adminToken})
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	})

	adminGroup := r.Group("/admin")
	adminGroup.Use(a.adminAuthMiddleware())

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.analytics.Stats(c.Request.Context())
		if err != nil {
			a.logger.Error().Err(err).Msg("error loading admin stats")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.analytics.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load statistics"})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		c.JSON(http.StatusOK, stats)
	})

	adminGroup.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := a.analytics.Cleanup(c.Request.Context(), a.cfg.Analytics.Retention)
		if err != nil {
			a.logger.Error().Err(err).Msg("error cleaning up analytics data")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Cleanup failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup completed", "removed": n})
	})
}
