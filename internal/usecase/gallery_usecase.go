package usecase

import (
	"context"

	"hearing-care-backend/internal/domain"
	"hearing-care-backend/internal/gallery"
)

type galleryUsecase struct {
	catalog *gallery.Catalog
}

// NewGalleryUsecase serves the read-only photo catalog.
func NewGalleryUsecase(catalog *gallery.Catalog) domain.GalleryUsecase {
	return &galleryUsecase{catalog: catalog}
}

func (u *galleryUsecase) List(ctx context.Context, category string) ([]domain.GalleryPhoto, error) {
	if category != "" && !gallery.IsCategory(category) {
		return nil, domain.ErrUnknownCategory
	}
	photos := u.catalog.ByCategory(category)
	if photos == nil {
		photos = []domain.GalleryPhoto{}
	}
	return photos, nil
}

func (u *galleryUsecase) Get(ctx context.Context, id string) (*domain.GalleryPhoto, error) {
	p, ok := u.catalog.Get(id)
	if !ok {
		return nil, domain.ErrPhotoNotFound
	}
	return &p, nil
}

func (u *galleryUsecase) Categories(ctx context.Context) []string {
	out := make([]string, len(gallery.Categories))
	copy(out, gallery.Categories)
	return out
}
