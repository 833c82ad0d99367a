// Package gallery holds the static photo catalog and the lightbox
// navigation state used to browse it.
package gallery

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"hearing-care-backend/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Categories in display order.
var Categories = []string{
	domain.CategoryFacilities,
	domain.CategoryEquipment,
	domain.CategoryTeam,
	domain.CategoryPatients,
}

// Catalog is an immutable, ordered set of photos.
type Catalog struct {
	photos []domain.GalleryPhoto
	byID   map[string]int
}

type catalogFile struct {
	Photos []domain.GalleryPhoto `yaml:"photos"`
}

// Load parses and validates a YAML catalog.
func Load(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("gallery: parse catalog: %w", err)
	}

	c := &Catalog{
		photos: file.Photos,
		byID:   make(map[string]int, len(file.Photos)),
	}

	var errs []error
	for i, p := range file.Photos {
		switch {
		case p.ID == "":
			errs = append(errs, fmt.Errorf("photo %d: missing id", i))
			continue
		case !IsCategory(p.Category):
			errs = append(errs, fmt.Errorf("photo %q: unknown category %q", p.ID, p.Category))
		case p.AspectRatio <= 0:
			errs = append(errs, fmt.Errorf("photo %q: aspect ratio must be positive", p.ID))
		case p.Images.Thumbnail == "" || p.Images.Medium == "" || p.Images.Full == "":
			errs = append(errs, fmt.Errorf("photo %q: all three image resolutions are required", p.ID))
		}
		if _, dup := c.byID[p.ID]; dup {
			errs = append(errs, fmt.Errorf("photo %q: duplicate id", p.ID))
		}
		c.byID[p.ID] = i
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("gallery: invalid catalog: %w", err)
	}

	return c, nil
}

// Default returns the embedded catalog. It panics if the embedded file is invalid.
func Default() *Catalog {
	c, err := Load(catalogYAML)
	if err != nil {
		panic(err)
	}
	return c
}

// IsCategory reports whether c is a known category.
func IsCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// All returns every photo in catalog order.
func (c *Catalog) All() []domain.GalleryPhoto {
	out := make([]domain.GalleryPhoto, len(c.photos))
	copy(out, c.photos)
	return out
}

// ByCategory returns the photos of one category; "" returns all.
func (c *Catalog) ByCategory(category string) []domain.GalleryPhoto {
	if category == "" {
		return c.All()
	}
	var out []domain.GalleryPhoto
	for _, p := range c.photos {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Get returns the photo with id.
func (c *Catalog) Get(id string) (domain.GalleryPhoto, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.GalleryPhoto{}, false
	}
	return c.photos[i], true
}

// Len returns the number of photos.
func (c *Catalog) Len() int {
	return len(c.photos)
}
