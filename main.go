package main

import (
	"time"

	"urbanmap/baseline"
	"urbanmap/config"
	"urbanmap/handlers"
	"urbanmap/metrics"
	"urbanmap/middleware"
	"urbanmap/service"
	"urbanmap/store"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	EndPointHealth             = "/health"
	EndPointCatalogs           = "/catalogs"
	EndPointOccurrences        = "/occurrences"
	EndPointOccurrencesGeoJSON = "/occurrences/geojson"
	EndPointOccurrence         = "/occurrences/:id"
	EndPointVote               = "/occurrences/:id/vote"
	EndPointComments           = "/occurrences/:id/comments"
	EndPointPhotos             = "/occurrences/:id/photos"
	EndPointStats              = "/stats"
	EndPointMapClusters        = "/map/clusters"
	EndPointMapHeat            = "/map/heat"
	EndPointLogin              = "/login"
	EndPointMetrics            = "/metrics"
)

func main() {
	cfg := config.Load()

	log.Info("Starting the urbanmap service...")

	svc := service.New(
		baseline.NewLoader(cfg.BaselineCSV),
		store.NewReportStore(cfg.ReportsFile),
		store.NewAttachmentStore(cfg.ImagesDir),
	)
	auth := middleware.NewAdminAuth(cfg.JWTSecret)
	h := handlers.NewHandlers(svc, cfg, auth)

	metrics.Register()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET(EndPointHealth, h.Health)
	router.GET(EndPointCatalogs, h.Catalogs)
	router.GET(EndPointOccurrences, h.ListOccurrences)
	router.GET(EndPointOccurrencesGeoJSON, h.OccurrencesGeoJSON)
	router.GET(EndPointStats, h.GetStats)
	router.GET(EndPointMapClusters, h.GetClusters)
	router.GET(EndPointMapHeat, h.GetHeatSamples)
	router.GET(EndPointMetrics, gin.WrapH(promhttp.Handler()))

	router.POST(EndPointLogin, h.Login)

	// Community write endpoints are rate limited per client IP.
	community := router.Group("/")
	community.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, time.Minute))
	{
		community.POST(EndPointOccurrences, h.CreateOccurrence)
		community.POST(EndPointVote, h.VoteOccurrence)
		community.POST(EndPointComments, h.AddComment)
		community.POST(EndPointPhotos, h.UploadPhoto)
	}

	// Status and priority management is restricted to the shared admin role.
	admin := router.Group("/")
	admin.Use(auth.Middleware())
	{
		admin.POST(EndPointOccurrence, h.UpdateOccurrence)
	}

	log.Infof("Urbanmap service starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
