package steps

import (
	"context"

	classroomapi "google.golang.org/api/classroom/v1"

	"github.com/aulagen/aulagen-backend/internal/clients/classroom"
	types "github.com/aulagen/aulagen-backend/internal/domain"
)

type PublishReadingDeps struct {
	LMS classroom.Client
}

type PublishReadingInput struct {
	CourseID string
	Text     string
	Topic    *types.TopicRef
}

// PublishReading wraps the generated study text as a published, non-gradable
// course material.
func PublishReading(ctx context.Context, deps PublishReadingDeps, in PublishReadingInput) (*classroomapi.CourseWorkMaterial, error) {
	material := &classroomapi.CourseWorkMaterial{
		Title:       "Study Materials",
		Description: in.Text,
		State:       "PUBLISHED",
		TopicId:     topicID(in.Topic),
	}
	return deps.LMS.CreateCourseWorkMaterial(ctx, in.CourseID, material)
}

func topicID(t *types.TopicRef) string {
	if t == nil {
		return ""
	}
	return t.ID
}
