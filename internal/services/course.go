package services

import (
	"context"
	"fmt"

	classroomapi "google.golang.org/api/classroom/v1"

	"github.com/aulagen/aulagen-backend/internal/clients/classroom"
	"github.com/aulagen/aulagen-backend/internal/clients/redis"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

type CourseService interface {
	ListActiveCourses(ctx context.Context, accessToken string) ([]*classroomapi.Course, error)
}

type courseService struct {
	log   *logger.Logger
	lms   classroom.Factory
	cache redis.CourseCache
}

// NewCourseService lists the caller's active Classroom courses. The cache is
// optional; when present, hits skip the Classroom call entirely.
func NewCourseService(baseLog *logger.Logger, lms classroom.Factory, cache redis.CourseCache) CourseService {
	return &courseService{
		log:   baseLog.With("service", "CourseService"),
		lms:   lms,
		cache: cache,
	}
}

func (cs *courseService) ListActiveCourses(ctx context.Context, accessToken string) ([]*classroomapi.Course, error) {
	if cs.cache != nil {
		if courses, ok := cs.cache.Get(ctx, accessToken); ok {
			return courses, nil
		}
	}

	client, err := cs.lms(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("classroom client: %w", err)
	}
	courses, err := client.ListCourses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	if cs.cache != nil {
		cs.cache.Set(ctx, accessToken, courses)
	}
	return courses, nil
}
