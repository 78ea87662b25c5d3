package handlers

import (
	"envy/internal/domain"
	"envy/internal/domain/models"
	"envy/internal/http/middleware"
	"envy/internal/utils"

	"github.com/gin-gonic/gin"
)

// POST /api/admin/unlock
func (h *Handler) Unlock(c *gin.Context) {
	var req unlockRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	token, exp, err := h.Gate.Unlock(req.PIN)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"token": token, "expiresAt": utils.FormatTimestamp(exp)})
}

// POST /api/admin/lock
func (h *Handler) Lock(c *gin.Context) {
	if err := h.Gate.Lock(middleware.BearerToken(c)); err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, gin.H{"ok": true})
}

// GET /api/admin/settings
func (h *Handler) GetSettings(c *gin.Context) {
	respondOK(c, gin.H{
		"heroMode":   h.Store.HeroMode(),
		"payfast":    h.Store.GatewayConfig(),
		"configured": h.payments(c).Configured(),
	})
}

// PUT /api/admin/settings/hero
func (h *Handler) SetHeroMode(c *gin.Context) {
	var req heroRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !req.Mode.Valid() {
		RespondDomainError(c, domain.ValidationError{Field: "mode", Msg: "must be video or image"})
		return
	}
	h.Store.SetHeroMode(req.Mode)
	respondOK(c, gin.H{"heroMode": h.Store.HeroMode()})
}

// PUT /api/admin/settings/gateway
func (h *Handler) SetGatewayConfig(c *gin.Context) {
	var patch models.GatewayPatch
	if !BindJSONOrError(c, &patch) {
		return
	}
	cfg := h.Store.SetGatewayConfig(patch)
	utils.LogEvent(middleware.GetRequestID(c), "admin", "set_gateway", "merchant_id="+cfg.MerchantID)
	respondOK(c, gin.H{"payfast": cfg, "configured": h.payments(c).Configured()})
}

// POST /api/admin/reset
func (h *Handler) Reset(c *gin.Context) {
	h.Store.Reset()
	utils.LogEvent(middleware.GetRequestID(c), "admin", "reset", "store restored to defaults")
	respondOK(c, gin.H{"ok": true, "properties": len(h.Store.Properties())})
}

// GET /api/settings/hero
func (h *Handler) GetHeroMode(c *gin.Context) {
	respondOK(c, gin.H{"heroMode": h.Store.HeroMode()})
}
