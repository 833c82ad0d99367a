package domain

import (
	"context"
	"errors"
)

var (
	// ErrPhotoNotFound is returned when a gallery photo id is unknown.
	ErrPhotoNotFound = errors.New("photo not found")
	// ErrUnknownCategory is returned when filtering by a category not in the catalog.
	ErrUnknownCategory = errors.New("unknown gallery category")
)

// Gallery categories.
const (
	CategoryFacilities = "instalaciones"
	CategoryEquipment  = "equipos"
	CategoryTeam       = "equipo-humano"
	CategoryPatients   = "pacientes"
)

// PhotoImages holds the three published resolutions of a photo.
type PhotoImages struct {
	Thumbnail string `json:"thumbnail" yaml:"thumbnail"`
	Medium    string `json:"medium" yaml:"medium"`
	Full      string `json:"full" yaml:"full"`
}

// GalleryPhoto is a static catalog entry.
type GalleryPhoto struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Category    string      `json:"category" yaml:"category"`
	Images      PhotoImages `json:"images" yaml:"images"`
	Alt         string      `json:"alt" yaml:"alt"`
	AspectRatio float64     `json:"aspectRatio" yaml:"aspect_ratio"`
}

// GalleryUsecase exposes the read-only photo catalog.
type GalleryUsecase interface {
	List(ctx context.Context, category string) ([]GalleryPhoto, error)
	Get(ctx context.Context, id string) (*GalleryPhoto, error)
	Categories(ctx context.Context) []string
}
