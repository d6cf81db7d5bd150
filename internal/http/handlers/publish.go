package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/aulagen/aulagen-backend/internal/domain"
	"github.com/aulagen/aulagen-backend/internal/http/response"
	"github.com/aulagen/aulagen-backend/internal/modules/publish"
	"github.com/aulagen/aulagen-backend/internal/modules/publish/steps"
	"github.com/aulagen/aulagen-backend/internal/pkg/ctxutil"
	"github.com/aulagen/aulagen-backend/internal/platform/apierr"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

type PublishHandler struct {
	log      *logger.Logger
	usecases publish.Usecases
}

func NewPublishHandler(log *logger.Logger, usecases publish.Usecases) *PublishHandler {
	return &PublishHandler{
		log:      log.With("handler", "PublishHandler"),
		usecases: usecases,
	}
}

// PublishBundle handles the orchestrated publication of one generated bundle.
// Responds 200 with the per-kind result map even when individual artifacts
// failed; 400 only when the request carries no content at all.
func (h *PublishHandler) PublishBundle(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.AccessToken == "" {
		response.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, nil)
		return
	}
	courseID := c.Param("courseId")
	if courseID == "" {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeBadRequest, errors.New("missing course id"))
		return
	}

	var req types.PublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeBadRequest, err)
		return
	}

	result, err := h.usecases.Publish(c.Request.Context(), rd.AccessToken, courseID, req)
	if err != nil {
		h.respondUsecaseError(c, "PublishBundle", err)
		return
	}
	response.RespondOK(c, result)
}

// PublishMedia handles the standalone media publication: image plus alt text,
// or image plus audio summary and description.
func (h *PublishHandler) PublishMedia(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.AccessToken == "" {
		response.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, nil)
		return
	}
	courseID := c.Param("courseId")
	if courseID == "" {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeBadRequest, errors.New("missing course id"))
		return
	}

	var body struct {
		ImageDataURI string `json:"imageDataUri"`
		AltText      string `json:"altText"`
		AudioDataURI string `json:"audioDataUri"`
		Description  string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeBadRequest, err)
		return
	}

	material, err := h.usecases.PublishMedia(c.Request.Context(), rd.AccessToken, courseID, steps.PublishMediaInput{
		ImageDataURI: body.ImageDataURI,
		AltText:      body.AltText,
		AudioDataURI: body.AudioDataURI,
		Description:  body.Description,
	})
	if err != nil {
		h.respondUsecaseError(c, "PublishMedia", err)
		return
	}
	response.RespondOK(c, material)
}

// PublishAssignment handles the doc-backed assignment publication: title and
// description are written into a new Google Doc attached as a student copy.
func (h *PublishHandler) PublishAssignment(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.AccessToken == "" {
		response.RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, nil)
		return
	}
	courseID := c.Param("courseId")
	if courseID == "" {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeBadRequest, errors.New("missing course id"))
		return
	}

	var body struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, apierr.CodeBadRequest, err)
		return
	}

	work, err := h.usecases.PublishAssignment(c.Request.Context(), rd.AccessToken, courseID, body.Title, body.Description)
	if err != nil {
		h.respondUsecaseError(c, "PublishAssignment", err)
		return
	}
	response.RespondOK(c, work)
}

func (h *PublishHandler) respondUsecaseError(c *gin.Context, op string, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		if ae.Status >= 500 {
			h.log.Error(op+" failed", "code", ae.Code, "error", err)
		}
		response.RespondError(c, ae.Status, ae.Code, ae)
		return
	}
	h.log.Error(op+" failed", "error", err)
	response.RespondError(c, http.StatusInternalServerError, apierr.CodeInternal, err)
}
