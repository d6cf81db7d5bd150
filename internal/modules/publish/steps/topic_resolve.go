package steps

import (
	"context"
	"strings"

	"github.com/aulagen/aulagen-backend/internal/clients/classroom"
	types "github.com/aulagen/aulagen-backend/internal/domain"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

type ResolveTopicDeps struct {
	Log *logger.Logger
	LMS classroom.Client

	// Reuse makes resolution look for an existing topic with the same name
	// before creating one. Off by default: a fresh topic per publication
	// mirrors how educators group one generation session's output together.
	Reuse bool
}

// ResolveTopic ensures a topic for the subject exists in the course.
// Best-effort: a missing subject or a failed Classroom call yields nil, and
// the publication proceeds without a topic.
func ResolveTopic(ctx context.Context, deps ResolveTopicDeps, courseID, subject string) *types.TopicRef {
	if subject == "" {
		return nil
	}

	if deps.Reuse {
		topics, err := deps.LMS.ListTopics(ctx, courseID)
		if err != nil {
			deps.Log.Warn("topic list failed, falling back to create", "course_id", courseID, "error", err)
		} else {
			for _, t := range topics {
				if strings.EqualFold(strings.TrimSpace(t.Name), strings.TrimSpace(subject)) {
					return &types.TopicRef{ID: t.TopicId, Name: t.Name}
				}
			}
		}
	}

	topic, err := deps.LMS.CreateTopic(ctx, courseID, subject)
	if err != nil {
		deps.Log.Warn("topic creation failed, publishing without topic",
			"course_id", courseID, "subject", subject, "error", err)
		return nil
	}
	return &types.TopicRef{ID: topic.TopicId, Name: topic.Name}
}
