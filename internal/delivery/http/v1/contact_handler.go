package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hearing-care-backend/internal/delivery/http/response"
	"hearing-care-backend/internal/domain"
	"hearing-care-backend/pkg/apperror"
	"hearing-care-backend/pkg/i18n"
	"hearing-care-backend/pkg/security"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, middlewares ...gin.HandlerFunc) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", append(middlewares, handler.SubmitContact)...)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Validates the form, emails the clinic and sends a confirmation to the submitter.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        lang     query     string                 false  "Response language (es, en)"
// @Param        contact  body      domain.ContactRequest  true   "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      429      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Failure      503      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(i18n.Tr(ctx, "Invalid request body")))
		return
	}

	err := h.contactUC.SendContactMessage(ctx, &req)
	if err != nil {
		if appErr, ok := apperror.As(err); ok {
			if appErr.Code == http.StatusBadRequest {
				security.DefaultLogger().LogValidationFailed(ctx, req.Email, c.ClientIP(), c.GetString("RequestID"), appErr.Message)
			}
			c.Error(appErr)
			return
		}
		if errors.Is(err, domain.ErrMailNotConfigured) {
			c.Error(apperror.Unavailable(i18n.Tr(ctx, "The contact service is temporarily unavailable"), err))
			return
		}
		c.Error(apperror.New(http.StatusInternalServerError, i18n.Tr(ctx, "Failed to send message. Please try again later."), err))
		return
	}

	security.DefaultLogger().LogContactSubmitted(ctx, req.Email, c.ClientIP(), c.GetString("RequestID"))
	response.Success(c, http.StatusOK, i18n.Tr(ctx, "Your message has been sent successfully. We will contact you soon."), nil)
}
