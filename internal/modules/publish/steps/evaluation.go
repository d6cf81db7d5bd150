package steps

import (
	"context"

	classroomapi "google.golang.org/api/classroom/v1"

	"github.com/aulagen/aulagen-backend/internal/clients/classroom"
	types "github.com/aulagen/aulagen-backend/internal/domain"
)

type PublishEvaluationDeps struct {
	LMS classroom.Client
}

type PublishEvaluationInput struct {
	CourseID string
	Text     string
	Topic    *types.TopicRef
}

// PublishEvaluation wraps the generated evaluation text as a gradable
// assignment. The text is the whole assignment; there is no submission type
// beyond the description.
func PublishEvaluation(ctx context.Context, deps PublishEvaluationDeps, in PublishEvaluationInput) (*classroomapi.CourseWork, error) {
	work := &classroomapi.CourseWork{
		Title:       "Evaluations",
		Description: in.Text,
		WorkType:    "ASSIGNMENT",
		State:       "PUBLISHED",
		TopicId:     topicID(in.Topic),
	}
	return deps.LMS.CreateCourseWork(ctx, in.CourseID, work)
}
