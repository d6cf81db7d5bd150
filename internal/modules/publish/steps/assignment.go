package steps

import (
	"context"

	classroomapi "google.golang.org/api/classroom/v1"

	"github.com/aulagen/aulagen-backend/internal/clients/classroom"
	"github.com/aulagen/aulagen-backend/internal/clients/docs"
)

type PublishAssignmentDeps struct {
	LMS  classroom.Client
	Docs docs.Client
}

type PublishAssignmentInput struct {
	CourseID    string
	Title       string
	Description string
}

// PublishAssignment puts the assignment content into a fresh Google Doc and
// publishes a gradable assignment attaching it with STUDENT_COPY, so every
// student edits their own copy. The doc is never shared directly; Classroom
// grants access when the work item is created.
func PublishAssignment(ctx context.Context, deps PublishAssignmentDeps, in PublishAssignmentInput) (*classroomapi.CourseWork, error) {
	docID, err := deps.Docs.CreateDocument(ctx, in.Title, in.Description)
	if err != nil {
		return nil, uploadFailed(err)
	}

	work := &classroomapi.CourseWork{
		Title:       in.Title,
		Description: "Please complete the quiz in the attached Google Doc.",
		WorkType:    "ASSIGNMENT",
		State:       "PUBLISHED",
		Materials: []*classroomapi.Material{{
			DriveFile: &classroomapi.SharedDriveFile{
				DriveFile: &classroomapi.DriveFile{Id: docID},
				ShareMode: "STUDENT_COPY",
			},
		}},
	}
	return deps.LMS.CreateCourseWork(ctx, in.CourseID, work)
}
