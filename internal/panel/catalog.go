package panel

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rflorenc/teamroadmaps/internal/models"
)

// lastTitle always sorts after every other roadmap in the picker.
const lastTitle = "Android"

// RoadmapCatalog keeps only roadmap pages and orders them by title using
// English collation, with "Android" pinned to the end.
func RoadmapCatalog(pages []models.CatalogRoadmap) []models.CatalogRoadmap {
	out := make([]models.CatalogRoadmap, 0, len(pages))
	for _, p := range pages {
		if p.Group == models.CatalogGroupRoadmaps {
			out = append(out, p)
		}
	}
	SortCatalog(out)
	return out
}

// SortCatalog sorts roadmaps in place.
func SortCatalog(roadmaps []models.CatalogRoadmap) {
	col := collate.New(language.English)
	slices.SortStableFunc(roadmaps, func(a, b models.CatalogRoadmap) int {
		aLast, bLast := a.Title == lastTitle, b.Title == lastTitle
		switch {
		case aLast && !bLast:
			return 1
		case bLast && !aLast:
			return -1
		}
		return col.CompareString(a.Title, b.Title)
	})
}
