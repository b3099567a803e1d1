package handlers

import (
	"errors"
	"io"
	"net/http"

	"urbanmap/config"
	"urbanmap/metrics"
	"urbanmap/middleware"
	"urbanmap/models"
	"urbanmap/service"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers over the occurrence engine.
type Handlers struct {
	svc  *service.Service
	cfg  *config.Config
	auth *middleware.AdminAuth
}

// NewHandlers creates a new handlers instance
func NewHandlers(svc *service.Service, cfg *config.Config, auth *middleware.AdminAuth) *Handlers {
	return &Handlers{
		svc:  svc,
		cfg:  cfg,
		auth: auth,
	}
}

// Health handles GET /health.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "urbanmap",
	})
}

// ListOccurrences handles GET /occurrences. Query params narrow the view.
func (h *Handlers) ListOccurrences(c *gin.Context) {
	view := h.svc.FilterView(service.FilterArgs{
		Type:         c.Query("type"),
		Status:       c.Query("status"),
		Neighborhood: c.Query("neighborhood"),
		Priority:     c.Query("priority"),
	})
	c.IndentedJSON(http.StatusOK, view)
}

// OccurrencesGeoJSON handles GET /occurrences/geojson.
func (h *Handlers) OccurrencesGeoJSON(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.ViewGeoJSON())
}

// GetStats handles GET /stats.
func (h *Handlers) GetStats(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, h.svc.Statistics())
}

// GetClusters handles GET /map/clusters.
func (h *Handlers) GetClusters(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, h.svc.Clusters(h.cfg.ClusterRadiusMeters))
}

// GetHeatSamples handles GET /map/heat.
func (h *Handlers) GetHeatSamples(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, h.svc.HeatSamples(h.cfg.HeatRadiusMeters))
}

// CreateOccurrence handles POST /occurrences.
func (h *Handlers) CreateOccurrence(c *gin.Context) {
	var req models.CreateOccurrenceRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	occ, err := h.svc.CreateOccurrence(req, nil)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Errorf("Failed to create occurrence: %v", err)
		metrics.StoreWriteErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save occurrence"})
		return
	}

	metrics.OccurrencesCreatedTotal.Inc()
	c.JSON(http.StatusCreated, occ)
}

// UpdateOccurrence handles POST /occurrences/:id (admin only).
func (h *Handlers) UpdateOccurrence(c *gin.Context) {
	id := c.Param("id")

	var req models.UpdateOccurrenceRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	ok, err := h.svc.UpdateOccurrence(id, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Errorf("Failed to update occurrence %s: %v", id, err)
		metrics.StoreWriteErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save update"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "occurrence not found or not editable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// VoteOccurrence handles POST /occurrences/:id/vote.
func (h *Handlers) VoteOccurrence(c *gin.Context) {
	id := c.Param("id")

	ok, err := h.svc.VoteOccurrence(id)
	if err != nil {
		log.Errorf("Failed to vote on occurrence %s: %v", id, err)
		metrics.StoreWriteErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save vote"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "occurrence not found or not editable"})
		return
	}

	metrics.VotesTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"voted": true})
}

// AddComment handles POST /occurrences/:id/comments.
func (h *Handlers) AddComment(c *gin.Context) {
	id := c.Param("id")

	var req models.CommentRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Author == "" {
		req.Author = "Anonymous"
	}

	ok, err := h.svc.AddComment(id, req.Text, req.Author)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Errorf("Failed to comment on occurrence %s: %v", id, err)
		metrics.StoreWriteErrorsTotal.Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save comment"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "occurrence not found or not editable"})
		return
	}

	metrics.CommentsTotal.Inc()
	c.JSON(http.StatusOK, gin.H{"commented": true})
}

// UploadPhoto handles POST /occurrences/:id/photos (multipart form, field
// "photo").
func (h *Handlers) UploadPhoto(c *gin.Context) {
	id := c.Param("id")

	file, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable photo"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable photo"})
		return
	}

	path, err := h.svc.SaveAttachment(id, file.Filename, data)
	if err != nil {
		log.Errorf("Failed to save photo for occurrence %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save photo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}

// Login handles POST /login. Credentials are a static shared admin pair.
func (h *Handlers) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	if req.User != h.cfg.AdminUser || req.Password != h.cfg.AdminPassword {
		log.Warnf("Failed admin login from %s", c.ClientIP())
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.auth.GenerateToken(req.User)
	if err != nil {
		log.Errorf("Failed to sign admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, models.LoginResponse{Token: token})
}

// Catalogs handles GET /catalogs: type, status, priority and neighborhood
// catalogs plus the status transition map for UI pickers.
func (h *Handlers) Catalogs(c *gin.Context) {
	transitions := make(map[string][]string, len(models.StatusColors))
	for status := range models.StatusColors {
		transitions[status] = models.NextStatuses(status)
	}
	c.JSON(http.StatusOK, gin.H{
		"types":         models.OccurrenceTypes,
		"statuses":      models.StatusColors,
		"transitions":   transitions,
		"neighborhoods": models.Neighborhoods,
	})
}
