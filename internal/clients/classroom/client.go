package classroom

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	classroomapi "google.golang.org/api/classroom/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Client is the narrow slice of the Google Classroom surface the publication
// pipeline consumes. Everything is keyed by a course ID owned by the caller;
// the access credential travels with the client, not with each call.
type Client interface {
	ListCourses(ctx context.Context) ([]*classroomapi.Course, error)
	CreateTopic(ctx context.Context, courseID, name string) (*classroomapi.Topic, error)
	ListTopics(ctx context.Context, courseID string) ([]*classroomapi.Topic, error)
	CreateCourseWork(ctx context.Context, courseID string, work *classroomapi.CourseWork) (*classroomapi.CourseWork, error)
	CreateCourseWorkMaterial(ctx context.Context, courseID string, material *classroomapi.CourseWorkMaterial) (*classroomapi.CourseWorkMaterial, error)
}

// Factory builds a Client bound to one caller's OAuth access token. The
// service never stores tokens, so clients are constructed per request.
type Factory func(ctx context.Context, accessToken string) (Client, error)

func NewFactory() Factory {
	return func(ctx context.Context, accessToken string) (Client, error) {
		if accessToken == "" {
			return nil, fmt.Errorf("missing access token")
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		svc, err := classroomapi.NewService(ctx, option.WithTokenSource(ts))
		if err != nil {
			return nil, fmt.Errorf("create classroom service: %w", err)
		}
		return &client{svc: svc}, nil
	}
}

type client struct {
	svc *classroomapi.Service
}

func (c *client) ListCourses(ctx context.Context) ([]*classroomapi.Course, error) {
	resp, err := c.svc.Courses.List().CourseStates("ACTIVE").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return resp.Courses, nil
}

func (c *client) CreateTopic(ctx context.Context, courseID, name string) (*classroomapi.Topic, error) {
	topic, err := c.svc.Courses.Topics.Create(courseID, &classroomapi.Topic{Name: name}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create topic %q: %w", name, err)
	}
	return topic, nil
}

func (c *client) ListTopics(ctx context.Context, courseID string) ([]*classroomapi.Topic, error) {
	var topics []*classroomapi.Topic
	pageToken := ""
	for {
		call := c.svc.Courses.Topics.List(courseID).Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}
		resp, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("list topics: %w", err)
		}
		topics = append(topics, resp.Topic...)
		if resp.NextPageToken == "" {
			return topics, nil
		}
		pageToken = resp.NextPageToken
	}
}

func (c *client) CreateCourseWork(ctx context.Context, courseID string, work *classroomapi.CourseWork) (*classroomapi.CourseWork, error) {
	created, err := c.svc.Courses.CourseWork.Create(courseID, work).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create course work: %w", err)
	}
	return created, nil
}

func (c *client) CreateCourseWorkMaterial(ctx context.Context, courseID string, material *classroomapi.CourseWorkMaterial) (*classroomapi.CourseWorkMaterial, error) {
	created, err := c.svc.Courses.CourseWorkMaterials.Create(courseID, material).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create course work material: %w", err)
	}
	return created, nil
}

// ErrMessage pulls the human-readable message out of a Google API error, the
// same message the Classroom UI would show. Falls back to err.Error().
func ErrMessage(err error) string {
	if err == nil {
		return ""
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		return gerr.Message
	}
	return err.Error()
}
