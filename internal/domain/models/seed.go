package models

// Locations are the areas the catalog filter offers.
var Locations = []string{
	"Clifton, Cape Town",
	"Camps Bay, Cape Town",
	"Sandton, Johannesburg",
	"Sandhurst, Johannesburg",
}

const imageBase = "https://images.unsplash.com/"

func img(photo string) string {
	return imageBase + photo + "?w=1200&q=80"
}

// SeedProperties returns a fresh copy of the listings used whenever no valid state is persisted.
func SeedProperties() []Property {
	return []Property{
		{
			ID:       "clifton-001",
			Title:    "Villa Aurelia — Clifton First Beach",
			Price:    45000,
			Location: "Clifton, Cape Town",
			Images: []string{
				img("photo-1613490493576-7fde63acd811"),
				img("photo-1600596542815-ffad4c1539a9"),
				img("photo-1600607687939-ce8a6c25118c"),
				img("photo-1600566753190-17f0baa2a6c3"),
			},
			Description: "Set above Clifton's renowned First Beach, Villa Aurelia offers sweeping Atlantic views through expansive windows. " +
				"Premium finishes and open-plan living spaces create a refined coastal retreat designed for comfort and privacy.",
			Bedrooms:  6,
			Bathrooms: 7,
			Size:      1200,
		},
		{
			ID:       "camps-bay-002",
			Title:    "The Obsidian — Camps Bay Ridge",
			Price:    38000,
			Location: "Camps Bay, Cape Town",
			Images: []string{
				img("photo-1512917774080-9991f1c4c750"),
				img("photo-1600585154340-be6161a56a0c"),
				img("photo-1600573472592-401b489a3cdc"),
				img("photo-1600047509807-ba8f99d2cdde"),
			},
			Description: "Nestled along the Camps Bay ridge with uninterrupted mountain and ocean views, The Obsidian pairs contemporary design with natural textures. " +
				"An infinity pool, open-plan interiors, and generous terraces make the most of the setting.",
			Bedrooms:  5,
			Bathrooms: 5,
			Size:      980,
		},
		{
			ID:       "sandton-003",
			Title:    "Maison Éternelle — Sandton Estate",
			Price:    32000,
			Location: "Sandton, Johannesburg",
			Images: []string{
				img("photo-1600607687644-aac4c3eac7f4"),
				img("photo-1600566753086-00f18fb6b3ea"),
				img("photo-1600210492486-724fe5c67fb0"),
				img("photo-1600585154526-990dced4db0d"),
			},
			Description: "Located in the heart of Sandton, Maison Éternelle combines modern architecture with landscaped gardens and generous entertaining spaces. " +
				"A secure, private estate ideal for families or executive retreats.",
			Bedrooms:  8,
			Bathrooms: 9,
			Size:      1850,
		},
		{
			ID:       "clifton-004",
			Title:    "Seraph House — Clifton Fourth Beach",
			Price:    52000,
			Location: "Clifton, Cape Town",
			Images: []string{
				img("photo-1600596542815-ffad4c1539a9"),
				img("photo-1600585154340-be6161a56a0c"),
				img("photo-1600607687939-ce8a6c25118c"),
				img("photo-1613490493576-7fde63acd811"),
			},
			Description: "A striking Clifton residence with layered living areas that follow the coastline. " +
				"Seraph House features a private pool, direct beach proximity, and panoramic views — one of the most sought-after positions on the Atlantic Seaboard.",
			Bedrooms:  7,
			Bathrooms: 8,
			Size:      1500,
		},
		{
			ID:       "camps-bay-005",
			Title:    "Onda — Camps Bay Beachfront",
			Price:    41000,
			Location: "Camps Bay, Cape Town",
			Images: []string{
				img("photo-1600047509807-ba8f99d2cdde"),
				img("photo-1600573472592-401b489a3cdc"),
				img("photo-1512917774080-9991f1c4c750"),
				img("photo-1600585154340-be6161a56a0c"),
			},
			Description: "Onda sits right on the Camps Bay beachfront with a distinctive contemporary design. " +
				"Fluid open-plan living connects indoor and outdoor entertaining areas, with the beach just steps away.",
			Bedrooms:  4,
			Bathrooms: 4,
			Size:      750,
		},
		{
			ID:       "sandton-006",
			Title:    "Kgosi Manor — Sandhurst",
			Price:    28000,
			Location: "Sandhurst, Johannesburg",
			Images: []string{
				img("photo-1600210492486-724fe5c67fb0"),
				img("photo-1600607687644-aac4c3eac7f4"),
				img("photo-1600566753086-00f18fb6b3ea"),
				img("photo-1600585154526-990dced4db0d"),
			},
			Description: "A grand Sandhurst estate set on expansive grounds with manicured gardens. " +
				"Kgosi Manor offers generous living and entertaining spaces, multiple bedroom suites, and the privacy expected of Johannesburg's most prestigious address.",
			Bedrooms:  10,
			Bathrooms: 12,
			Size:      2200,
		},
	}
}
