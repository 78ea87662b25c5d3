package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"envy/internal/domain"
	"envy/internal/domain/models"
	"envy/internal/utils"
)

// Amount accepts 45000, "45000" or "R 45 000".
type Amount int64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := utils.ParseZAR(s)
		if err != nil {
			return domain.ValidationError{Field: "price", Msg: "must be a rand amount", Err: err}
		}
		*a = Amount(n)
		return nil
	}
	if n, err := strconv.ParseInt(string(b), 10, 64); err == nil {
		*a = Amount(n)
		return nil
	}
	// 45000.0 and 4.5e4 are whole amounts; fractions and out-of-range values are not.
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return domain.ValidationError{Field: "price", Msg: "must be a whole rand amount", Err: err}
	}
	*a = Amount(int64(f))
	return nil
}

// ImageList accepts a JSON array or one string with an URL per line.
type ImageList []string

func (l *ImageList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = utils.SplitList(s)
		return nil
	}
	var raw []string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s = utils.TrimOrEmpty(s); s != "" {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}

type propertyRequest struct {
	Title       string    `json:"title" binding:"required"`
	Price       Amount    `json:"price" binding:"gte=0"`
	Location    string    `json:"location" binding:"required"`
	Images      ImageList `json:"images"`
	Description string    `json:"description"`
	Bedrooms    int       `json:"bedrooms" binding:"gte=0"`
	Bathrooms   int       `json:"bathrooms" binding:"gte=0"`
	Size        int       `json:"size" binding:"gte=0"`
}

func (r propertyRequest) input() models.PropertyInput {
	return models.PropertyInput{
		Title:       utils.NormalizeSpace(r.Title),
		Price:       int64(r.Price),
		Location:    utils.NormalizeSpace(r.Location),
		Images:      []string(r.Images),
		Description: utils.TrimOrEmpty(r.Description),
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		Size:        r.Size,
	}
}

// propertyPatchRequest applies only the keys present in the body.
type propertyPatchRequest struct {
	Title       *string    `json:"title"`
	Price       *Amount    `json:"price"`
	Location    *string    `json:"location"`
	Images      *ImageList `json:"images"`
	Description *string    `json:"description"`
	Bedrooms    *int       `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms   *int       `json:"bathrooms" binding:"omitempty,gte=0"`
	Size        *int       `json:"size" binding:"omitempty,gte=0"`
}

func (r propertyPatchRequest) patch() (models.PropertyPatch, error) {
	p := models.PropertyPatch{
		Title:       r.Title,
		Location:    r.Location,
		Description: r.Description,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		Size:        r.Size,
	}
	if r.Price != nil {
		if *r.Price < 0 {
			return p, domain.ValidationError{Field: "price", Msg: "must be at least 0"}
		}
		v := int64(*r.Price)
		p.Price = &v
	}
	if r.Images != nil {
		v := []string(*r.Images)
		p.Images = &v
	}
	if r.Title != nil && utils.TrimOrEmpty(*r.Title) == "" {
		return p, domain.ValidationError{Field: "title", Msg: "cannot be blank"}
	}
	return p, nil
}

type stayRequest struct {
	CheckIn  string `json:"checkIn" binding:"required"`
	CheckOut string `json:"checkOut" binding:"required"`
}

type bookingRequest struct {
	PropertyID    string               `json:"propertyId" binding:"required"`
	CheckIn       string               `json:"checkIn" binding:"required"`
	CheckOut      string               `json:"checkOut" binding:"required"`
	ClientDetails models.ClientDetails `json:"clientDetails"`
}

type statusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

type unlockRequest struct {
	PIN string `json:"pin" binding:"required"`
}

type heroRequest struct {
	Mode models.HeroMode `json:"mode" binding:"required,oneof=video image"`
}
