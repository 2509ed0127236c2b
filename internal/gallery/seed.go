package gallery

import "time"

var seedImages = []Image{
	{
		ID:          "1",
		URL:         "https://images.unsplash.com/photo-1464822759023-fed622ff2c3b?auto=format&fit=crop&q=80&w=1200",
		Title:       "Highland Serenity",
		Description: "Breathtaking mountain peaks reflected in a crystal-clear alpine lake at sunrise.",
	},
	{
		ID:          "2",
		URL:         "https://images.unsplash.com/photo-1501785888041-af3ef285b470?auto=format&fit=crop&q=80&w=1200",
		Title:       "Azure Coastline",
		Description: "Dramatic cliffs meeting the turquoise waters of a secluded Mediterranean cove.",
	},
	{
		ID:          "3",
		URL:         "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?auto=format&fit=crop&q=80&w=1200",
		Title:       "Sun-Drenched Canopy",
		Description: "Golden hour sunlight piercing through the dense leaves of an ancient deciduous forest.",
	},
	{
		ID:          "4",
		URL:         "https://images.unsplash.com/photo-1470770841072-f978cf4d019e?auto=format&fit=crop&q=80&w=1200",
		Title:       "Misty Valley",
		Description: "A quiet village nestled in a valley as early morning fog rolls over the surrounding hills.",
	},
	{
		ID:          "5",
		URL:         "https://images.unsplash.com/photo-1472214103451-9374bd1c798e?auto=format&fit=crop&q=80&w=1200",
		Title:       "Pastoral Harmony",
		Description: "Rolling green pastures dotted with wildflowers under a vast, cloudless sky.",
	},
	{
		ID:          "6",
		URL:         "https://images.unsplash.com/photo-1518709268805-4e9042af9f23?auto=format&fit=crop&q=80&w=1200",
		Title:       "Lava Tides",
		Description: "Surreal volcanic landscapes where black sand meets the deep blue of the Atlantic.",
	},
	{
		ID:          "7",
		URL:         "https://images.unsplash.com/photo-1475924156734-496f6cac6ec1?auto=format&fit=crop&q=80&w=1200",
		Title:       "Oasis of Light",
		Description: "The shifting sands of a vast desert creating intricate patterns under the midday sun.",
	},
	{
		ID:          "8",
		URL:         "https://images.unsplash.com/photo-1506744038136-46273834b3fb?auto=format&fit=crop&q=80&w=1200",
		Title:       "Yosemite Echo",
		Description: "Iconic granite monoliths standing tall over the verdant floor of the Yosemite Valley.",
	},
}

// Default returns the built-in landscape gallery shown before any prompt has
// been generated. Every image is stamped with the current time.
func Default() *Gallery {
	now := time.Now().UnixMilli()
	images := make([]Image, len(seedImages))
	for i, img := range seedImages {
		img.Timestamp = now
		images[i] = img
	}
	return &Gallery{images: images}
}
