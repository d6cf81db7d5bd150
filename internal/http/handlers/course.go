package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aulagen/aulagen-backend/internal/http/response"
	"github.com/aulagen/aulagen-backend/internal/pkg/ctxutil"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
	"github.com/aulagen/aulagen-backend/internal/services"
)

type CourseHandler struct {
	log           *logger.Logger
	courseService services.CourseService
}

func NewCourseHandler(log *logger.Logger, courseService services.CourseService) *CourseHandler {
	return &CourseHandler{
		log:           log.With("handler", "CourseHandler"),
		courseService: courseService,
	}
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || rd.AccessToken == "" {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	courses, err := h.courseService.ListActiveCourses(c.Request.Context(), rd.AccessToken)
	if err != nil {
		h.log.Error("ListCourses failed", "error", err)
		response.RespondError(c, http.StatusInternalServerError, "list_courses_failed", err)
		return
	}
	response.RespondOK(c, courses)
}
