package schedule

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"animesched/internal/events"
)

type Handler struct {
	Reconciler *Reconciler
	Sweeper    *Sweeper
	Projector  *Projector
	Store      Store
	Hub        *events.Hub
}

func NewHandler(rec *Reconciler, sw *Sweeper, proj *Projector, store Store, hub *events.Hub) *Handler {
	return &Handler{
		Reconciler: rec,
		Sweeper:    sw,
		Projector:  proj,
		Store:      store,
		Hub:        hub,
	}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/saveSchedule", h.save)
	rg.GET("/loadSchedule", h.load)
	rg.DELETE("/removeAnime/:id", h.remove)
	rg.POST("/sweep", h.sweep)
}

func (h *Handler) save(c *gin.Context) {
	var payload map[string]json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule payload"})
		return
	}

	written := h.Reconciler.Reconcile(c.Request.Context(), payload)
	if h.Hub != nil {
		h.Hub.BroadcastJSON(events.ScheduleSaved(written))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Schedule saved successfully",
		"saved":   written,
	})
}

// load sweeps finished shows first, then serves the week view. A sweep
// failure only costs freshness, never the response.
func (h *Handler) load(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := h.Sweeper.Sweep(ctx); err != nil {
		log.Printf("[schedule] sweep before load: %v", err)
	}

	c.JSON(http.StatusOK, h.Projector.WeekView(ctx))
}

func (h *Handler) remove(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid anime id"})
		return
	}

	deleted, err := h.Store.DeleteByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "remove failed"})
		return
	}
	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Anime not found"})
		return
	}

	if h.Hub != nil {
		h.Hub.BroadcastJSON(events.AnimeRemoved(id))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Anime removed successfully"})
}

func (h *Handler) sweep(c *gin.Context) {
	removed, err := h.Sweeper.Sweep(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sweep failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}
