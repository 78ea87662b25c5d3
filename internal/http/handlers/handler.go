package handlers

import (
	"context"
	"sync"

	"envy/internal/http/middleware"
	"envy/internal/services"
	"envy/internal/store"

	"github.com/gin-gonic/gin"
)

// StorageProbe reports which repository backs the store and whether it is reachable.
type StorageProbe interface {
	Driver() string
	Ping(ctx context.Context) error
}

// Handler carries the dependencies shared by every route.
type Handler struct {
	Store    *store.Store
	Gate     *services.AdminGate
	Notifier *services.Notifier
	Storage  StorageProbe
	BaseURL  string

	routerMu sync.RWMutex
	router   *gin.Engine
}

// SetRouter stores the active gin engine for /api/routes.
func (h *Handler) SetRouter(r *gin.Engine) {
	h.routerMu.Lock()
	defer h.routerMu.Unlock()
	h.router = r
}

func (h *Handler) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{Store: h.Store, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) payments(c *gin.Context) services.PaymentService {
	return services.PaymentService{Store: h.Store, BaseURL: h.BaseURL, RequestID: middleware.GetRequestID(c)}
}

func (h *Handler) docs(c *gin.Context) services.DocsService {
	return services.DocsService{Store: h.Store, RequestID: middleware.GetRequestID(c)}
}
