package models

// Property is a rental listing. Price is a whole-rand nightly amount.
type Property struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Price       int64    `json:"price"`
	Location    string   `json:"location"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Size        int      `json:"size"` // sqm
}

// PrimaryImage returns the first image URL, or "" when the listing has none.
func (p Property) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// Clone returns a copy that shares no slices with p.
func (p Property) Clone() Property {
	out := p
	if p.Images != nil {
		out.Images = append([]string(nil), p.Images...)
	}
	return out
}

// PropertyInput carries every listing field except the identifier, which the store assigns.
type PropertyInput struct {
	Title       string   `json:"title" binding:"required"`
	Price       int64    `json:"price" binding:"gte=0"`
	Location    string   `json:"location" binding:"required"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Bedrooms    int      `json:"bedrooms" binding:"gte=0"`
	Bathrooms   int      `json:"bathrooms" binding:"gte=0"`
	Size        int      `json:"size" binding:"gte=0"`
}

// Property builds a listing from the input under the given id.
func (in PropertyInput) Property(id string) Property {
	return Property{
		ID:          id,
		Title:       in.Title,
		Price:       in.Price,
		Location:    in.Location,
		Images:      append([]string(nil), in.Images...),
		Description: in.Description,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Size:        in.Size,
	}
}

// PropertyPatch supports partial updates via key presence. The identifier is never patchable.
type PropertyPatch struct {
	Title       *string   `json:"title"`
	Price       *int64    `json:"price" binding:"omitempty,gte=0"`
	Location    *string   `json:"location"`
	Images      *[]string `json:"images"`
	Description *string   `json:"description"`
	Bedrooms    *int      `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms   *int      `json:"bathrooms" binding:"omitempty,gte=0"`
	Size        *int      `json:"size" binding:"omitempty,gte=0"`
}

// Apply merges the supplied fields into p and returns the result.
func (patch PropertyPatch) Apply(p Property) Property {
	out := p.Clone()
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.Price != nil {
		out.Price = *patch.Price
	}
	if patch.Location != nil {
		out.Location = *patch.Location
	}
	if patch.Images != nil {
		out.Images = append([]string(nil), (*patch.Images)...)
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.Bedrooms != nil {
		out.Bedrooms = *patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		out.Bathrooms = *patch.Bathrooms
	}
	if patch.Size != nil {
		out.Size = *patch.Size
	}
	return out
}
