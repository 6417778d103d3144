package anilist

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler proxies metadata lookups to AniList for the frontend.
type Handler struct {
	Client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{Client: client}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/api", h.search)               // title search
	rg.POST("/fetchAnimeById", h.fetchByID) // single-media fetch
}

func (h *Handler) search(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No anime title provided"})
		return
	}

	media, err := h.Client.Search(c.Request.Context(), req.Title)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to get list of anime"})
		return
	}

	// same envelope shape the AniList API returns
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"Page": gin.H{"media": media},
		},
	})
}

func (h *Handler) fetchByID(c *gin.Context) {
	var req struct {
		ID int `json:"id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No anime id provided"})
		return
	}

	media, err := h.Client.FetchByID(c.Request.Context(), req.ID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch from AniList"})
		return
	}
	c.JSON(http.StatusOK, media)
}
