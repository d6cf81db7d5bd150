package steps

import (
	"context"

	classroomapi "google.golang.org/api/classroom/v1"

	"github.com/aulagen/aulagen-backend/internal/clients/classroom"
	types "github.com/aulagen/aulagen-backend/internal/domain"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

type PublishQuizDeps struct {
	Log *logger.Logger
	LMS classroom.Client
}

type PublishQuizInput struct {
	CourseID string
	RawText  string
	Topic    *types.TopicRef
}

// PublishQuiz parses the raw quiz text and publishes it as a multiple-choice
// question. A failed parse is a content-quality problem, not a failure: the
// question is still issued with empty content, and the degradation is logged
// so it can be told apart from real Classroom errors.
func PublishQuiz(ctx context.Context, deps PublishQuizDeps, in PublishQuizInput) (*classroomapi.CourseWork, error) {
	q, ok := ParseQuiz(in.RawText)
	if !ok {
		deps.Log.Warn("quiz text did not match expected format, publishing empty question",
			"course_id", in.CourseID)
	}

	work := &classroomapi.CourseWork{
		Title:       "Quizzes",
		Description: q.Question,
		WorkType:    "MULTIPLE_CHOICE_QUESTION",
		State:       "PUBLISHED",
		TopicId:     topicID(in.Topic),
		MultipleChoiceQuestion: &classroomapi.MultipleChoiceQuestion{
			Choices: q.Options[:],
		},
	}
	return deps.LMS.CreateCourseWork(ctx, in.CourseID, work)
}
