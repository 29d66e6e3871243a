package main

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/psyborgxoxo/SouravPortfolio/internal/analytics"
	"github.com/psyborgxoxo/SouravPortfolio/internal/content"
	"github.com/psyborgxoxo/SouravPortfolio/internal/endpoint"
)

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAll := slices.Contains(origins, "*")
	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowAll || slices.Contains(origins, origin)
		},
		AllowMethods: []string{"GET", "OPTIONS", "PATCH", "DELETE", "POST", "PUT"},
		AllowHeaders: []string{
			"X-CSRF-Token", "X-Requested-With", "Accept", "Accept-Version", "Content-Length",
			"Content-MD5", "Content-Type", "Date", "X-Api-Version", "Authorization",
		},
		AllowCredentials:          true,
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	})
}

func (a *app) setupContentRoutes(r *gin.Engine) {
	// Home: what the page needs to boot
	r.GET("/", func(c *gin.Context) {
		p := a.content.Portfolio()
		c.JSON(http.StatusOK, gin.H{
			"personal":        p.Personal,
			"analyticsId":     a.cfg.Analytics.MeasurementID,
			"contactEndpoint": endpoint.Path,
			"contactEmail":    a.cfg.Contact.FallbackEmail,
		})
	})

	api := r.Group("/api")

	api.GET("/portfolio", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.content.Portfolio())
	})

	api.GET("/projects", func(c *gin.Context) {
		category := c.DefaultQuery("category", content.AllCategories)
		c.JSON(http.StatusOK, gin.H{
			"category":   category,
			"projects":   a.content.Projects(category),
			"categories": a.content.ProjectCategories(),
		})
	})

	api.GET("/skills", func(c *gin.Context) {
		category := c.DefaultQuery("category", content.AllCategories)
		c.JSON(http.StatusOK, gin.H{
			"category":   category,
			"skills":     a.content.Skills(category),
			"categories": a.content.SkillCategories(),
		})
	})

	api.GET("/experience", func(c *gin.Context) {
		p := a.content.Portfolio()
		c.JSON(http.StatusOK, gin.H{
			"experience":     p.Experience,
			"certifications": p.Certifications,
		})
	})

	// Interaction events reported by the page (section views, filters, project views)
	api.POST("/events", func(c *gin.Context) {
		var ev analytics.Event
		if err := c.ShouldBindJSON(&ev); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event"})
			return
		}
		if err := a.analytics.RecordEvent(c.Request.Context(), ev, c.ClientIP()); err != nil {
			a.logger.Error().Err(err).Msg("error recording event")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record event"})
			return
		}
		c.Status(http.StatusAccepted)
	})
}
