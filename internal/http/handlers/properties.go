package handlers

import (
	"net/http"
	"sort"
	"strings"

	"envy/internal/domain"
	"envy/internal/domain/models"
	"envy/internal/http/middleware"
	"envy/internal/utils"

	"github.com/gin-gonic/gin"
)

const allLocations = "All Locations"

// GET /api/properties?location=&sort=default|price-asc|price-desc
func (h *Handler) ListProperties(c *gin.Context) {
	location := utils.NormalizeSpace(c.Query("location"))
	order := strings.TrimSpace(c.DefaultQuery("sort", "default"))
	switch order {
	case "default", "price-asc", "price-desc":
	default:
		RespondDomainError(c, domain.ValidationError{Field: "sort", Msg: "must be default, price-asc or price-desc"})
		return
	}

	props := filterProperties(h.Store.Properties(), location, order)
	respondOK(c, gin.H{"properties": props, "count": len(props)})
}

func filterProperties(all []models.Property, location, order string) []models.Property {
	out := make([]models.Property, 0, len(all))
	for _, p := range all {
		if location == "" || location == allLocations || strings.EqualFold(p.Location, location) {
			out = append(out, p)
		}
	}
	switch order {
	case "price-asc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case "price-desc":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}

// GET /api/properties/:id
func (h *Handler) GetProperty(c *gin.Context) {
	id := c.Param("id")
	p, found := h.Store.Property(id)
	if !found {
		RespondDomainError(c, domain.NotFoundError{Resource: "property", ID: id})
		return
	}
	respondOK(c, gin.H{
		"property":       p,
		"formattedPrice": utils.FormatZAR(p.Price),
		"coverImage":     p.PrimaryImage(),
	})
}

// GET /api/locations
func (h *Handler) ListLocations(c *gin.Context) {
	respondOK(c, gin.H{"locations": append([]string{allLocations}, models.Locations...)})
}

// POST /api/properties/:id/quote
func (h *Handler) QuoteStay(c *gin.Context) {
	var req stayRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	q, err := h.bookings(c).Quote(c.Param("id"), req.CheckIn, req.CheckOut)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	respondOK(c, q)
}

// POST /api/admin/properties
func (h *Handler) CreateProperty(c *gin.Context) {
	var req propertyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	p := h.Store.AddProperty(req.input())
	utils.LogEvent(middleware.GetRequestID(c), "admin", "add_property", "property_id="+p.ID)
	c.JSON(http.StatusCreated, gin.H{"property": p})
}

// PUT /api/admin/properties/:id
func (h *Handler) UpdateProperty(c *gin.Context) {
	var req propertyPatchRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	patch, err := req.patch()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	id := c.Param("id")
	p, found := h.Store.UpdateProperty(id, patch)
	if !found {
		matched(c, false, nil)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "admin", "update_property", "property_id="+id)
	matched(c, true, gin.H{"property": p})
}

// DELETE /api/admin/properties/:id
func (h *Handler) DeleteProperty(c *gin.Context) {
	id := c.Param("id")
	found := h.Store.DeleteProperty(id)
	if found {
		utils.LogEvent(middleware.GetRequestID(c), "admin", "delete_property", "property_id="+id)
	}
	matched(c, found, nil)
}
