package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hearing-care-backend/internal/delivery/http/response"
	"hearing-care-backend/internal/domain"
	"hearing-care-backend/pkg/apperror"
	"hearing-care-backend/pkg/i18n"
)

type GalleryHandler struct {
	galleryUC domain.GalleryUsecase
}

func NewGalleryHandler(public *gin.RouterGroup, galleryUC domain.GalleryUsecase) {
	handler := &GalleryHandler{galleryUC: galleryUC}

	gallery := public.Group("/gallery")
	gallery.GET("", handler.ListPhotos)
	gallery.GET("/:id", handler.GetPhoto)
}

// ListPhotos godoc
// @Summary      List gallery photos
// @Tags         gallery
// @Produce      json
// @Param        category  query     string  false  "instalaciones, equipos, equipo-humano or pacientes"
// @Success      200       {object}  response.Response{data=[]domain.GalleryPhoto}
// @Failure      400       {object}  response.Response
// @Router       /gallery [get]
func (h *GalleryHandler) ListPhotos(c *gin.Context) {
	ctx := c.Request.Context()

	photos, err := h.galleryUC.List(ctx, c.Query("category"))
	if err != nil {
		if errors.Is(err, domain.ErrUnknownCategory) {
			c.Error(apperror.BadRequest(i18n.Tr(ctx, "Unknown gallery category")))
			return
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "", photos)
}

// GetPhoto godoc
// @Summary      Get a gallery photo
// @Tags         gallery
// @Produce      json
// @Param        id   path      string  true  "Photo ID"
// @Success      200  {object}  response.Response{data=domain.GalleryPhoto}
// @Failure      404  {object}  response.Response
// @Router       /gallery/{id} [get]
func (h *GalleryHandler) GetPhoto(c *gin.Context) {
	ctx := c.Request.Context()

	photo, err := h.galleryUC.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			c.Error(apperror.NotFound(i18n.Tr(ctx, "Photo not found")))
			return
		}
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "", photo)
}
