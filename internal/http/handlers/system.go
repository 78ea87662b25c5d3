package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "envy backend running"})
}

// GET /api/storage-check
func (h *Handler) StorageCheck(c *gin.Context) {
	if h.Storage == nil {
		c.JSON(http.StatusOK, gin.H{"driver": "none", "ok": true, "properties": len(h.Store.Properties())})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.Storage.Ping(ctx); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"driver": h.Storage.Driver(), "ok": false, "error": err.Error()})
		return
	}
	body := gin.H{
		"driver":     h.Storage.Driver(),
		"ok":         true,
		"properties": len(h.Store.Properties()),
		"bookings":   len(h.Store.Bookings()),
	}
	if err := h.Store.LastPersistError(); err != nil {
		body["lastWriteError"] = err.Error()
	}
	c.JSON(http.StatusOK, body)
}

func (h *Handler) Routes(c *gin.Context) {
	h.routerMu.RLock()
	r := h.router
	h.routerMu.RUnlock()
	if r == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "router not ready"})
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}

// GET /api/ws
func (h *Handler) Subscribe(c *gin.Context) {
	if h.Notifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "change feed disabled"})
		return
	}
	h.Notifier.ServeHTTP(c.Writer, c.Request)
}
