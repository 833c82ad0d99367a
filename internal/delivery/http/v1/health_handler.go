package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hearing-care-backend/internal/delivery/http/response"
	"hearing-care-backend/internal/usecase"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(public *gin.RouterGroup, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}

	public.GET("/health", handler.Health)
}

// Health godoc
// @Summary      Health check
// @Description  Reports whether mail, Google Places and Redis are configured and reachable.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	response.Success(c, http.StatusOK, "System operational", h.healthUC.Check(c.Request.Context()))
}
