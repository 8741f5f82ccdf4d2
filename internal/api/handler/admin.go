package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetStats serves the dashboard aggregates.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.Store.GetStats()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListChats serves the active chats listing.
func (h *Handler) ListChats(c *gin.Context) {
	limit := queryLimit(c, 50)
	chats, err := h.Store.ListActiveChats(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, chats)
}

// ListComplaints serves the complaint queue, newest first.
func (h *Handler) ListComplaints(c *gin.Context) {
	limit := queryLimit(c, 50)
	complaints, err := h.Store.ListComplaints(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, complaints)
}

// ResolveComplaint marks one complaint as handled.
func (h *Handler) ResolveComplaint(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid complaint id"})
		return
	}
	if err := h.Store.ResolveComplaint(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "resolved"})
}

// BlockUser toggles a user's blocked flag.
func (h *Handler) BlockUser(c *gin.Context) {
	var req struct {
		Blocked bool `json:"blocked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad payload"})
		return
	}
	userID := c.Param("id")
	if _, err := h.Store.GetUserByID(userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err := h.Store.SetUserBlocked(userID, req.Blocked); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": req.Blocked})
}

func queryLimit(c *gin.Context, fallback int) int {
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			return n
		}
	}
	return fallback
}
