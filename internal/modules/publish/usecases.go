package publish

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	"github.com/aulagen/aulagen-backend/internal/clients/classroom"
	"github.com/aulagen/aulagen-backend/internal/clients/docs"
	"github.com/aulagen/aulagen-backend/internal/clients/drive"
	"github.com/aulagen/aulagen-backend/internal/data/repos"
	types "github.com/aulagen/aulagen-backend/internal/domain"
	"github.com/aulagen/aulagen-backend/internal/modules/publish/steps"
	"github.com/aulagen/aulagen-backend/internal/pkg/dbctx"
	"github.com/aulagen/aulagen-backend/internal/platform/apierr"
	"github.com/aulagen/aulagen-backend/internal/platform/gcp"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

type UsecasesDeps struct {
	Log *logger.Logger

	LMS  classroom.Factory
	Blob drive.Factory
	Docs docs.Factory

	// Optional collaborators: a nil Archive disables the GCS copy, a nil Runs
	// disables publication history.
	Archive gcp.ArchiveService
	Runs    repos.PublicationRunRepo

	// TopicReuse switches topic resolution from create-per-call to
	// find-or-create.
	TopicReuse bool

	// BranchTimeout bounds each artifact kind's branch. A branch that blows
	// the deadline is recorded as a timeout entry; siblings keep running.
	BranchTimeout time.Duration
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.BranchTimeout <= 0 {
		deps.BranchTimeout = 60 * time.Second
	}
	return Usecases{deps: deps}
}

// Publish turns one bundle of generated artifacts into Classroom objects.
// Only an entirely empty request fails as a whole; every other failure is
// scoped to its artifact kind and recorded in the result map. Partial success
// is the normal case and nothing is rolled back.
func (u Usecases) Publish(ctx context.Context, accessToken, courseID string, req types.PublicationRequest) (types.PublicationResult, error) {
	if !req.HasContent() {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeEmptyRequest,
			fmt.Errorf("no material content provided"))
	}

	log := u.deps.Log.With("course_id", courseID)
	start := time.Now()

	lms, err := u.deps.LMS(ctx, accessToken)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal,
			fmt.Errorf("classroom client: %w", err))
	}

	var blob drive.Client
	if req.Has(types.ArtifactMedia) {
		blob, err = u.deps.Blob(ctx, accessToken)
		if err != nil {
			return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal,
				fmt.Errorf("drive client: %w", err))
		}
	}

	// Topic resolution completes before any branch starts; the ref is
	// read-only from here on.
	topic := steps.ResolveTopic(ctx, steps.ResolveTopicDeps{
		Log:   log,
		LMS:   lms,
		Reuse: u.deps.TopicReuse,
	}, courseID, req.Subject)

	publishers := map[types.ArtifactKind]func(context.Context) (interface{}, error){
		types.ArtifactStudyMaterials: func(ctx context.Context) (interface{}, error) {
			return steps.PublishReading(ctx, steps.PublishReadingDeps{LMS: lms}, steps.PublishReadingInput{
				CourseID: courseID,
				Text:     req.StudyMaterials,
				Topic:    topic,
			})
		},
		types.ArtifactEvaluations: func(ctx context.Context) (interface{}, error) {
			return steps.PublishEvaluation(ctx, steps.PublishEvaluationDeps{LMS: lms}, steps.PublishEvaluationInput{
				CourseID: courseID,
				Text:     req.Evaluations,
				Topic:    topic,
			})
		},
		types.ArtifactQuizzes: func(ctx context.Context) (interface{}, error) {
			return steps.PublishQuiz(ctx, steps.PublishQuizDeps{Log: log, LMS: lms}, steps.PublishQuizInput{
				CourseID: courseID,
				RawText:  req.Quizzes,
				Topic:    topic,
			})
		},
		types.ArtifactMedia: func(ctx context.Context) (interface{}, error) {
			return steps.PublishMedia(ctx, steps.PublishMediaDeps{
				Log:     log,
				LMS:     lms,
				Blob:    blob,
				Archive: u.deps.Archive,
			}, steps.PublishMediaInput{
				CourseID:     courseID,
				ImageDataURI: req.ImageDataURI,
				AltText:      req.AltText,
				AudioDataURI: req.AudioDataURI,
				Description:  req.MediaDescription,
				Topic:        topic,
			})
		},
	}

	// The branches are independent Classroom objects, so they run
	// concurrently. Each writes only its own slot and converts its failure to
	// an error entry; a branch can never cancel a sibling.
	outcomes := make([]types.Outcome, len(types.PublicationOrder))
	present := make([]bool, len(types.PublicationOrder))

	var g errgroup.Group
	for i, kind := range types.PublicationOrder {
		if !req.Has(kind) {
			continue
		}
		present[i] = true
		i, kind := i, kind
		g.Go(func() error {
			outcomes[i] = u.runBranch(ctx, log, kind, publishers[kind])
			return nil
		})
	}
	_ = g.Wait()

	result := make(types.PublicationResult, len(types.PublicationOrder))
	for i, kind := range types.PublicationOrder {
		if present[i] {
			result[kind] = outcomes[i]
		}
	}

	u.recordRun(ctx, courseID, req.Subject, topic, result, time.Since(start))
	return result, nil
}

func (u Usecases) runBranch(ctx context.Context, log *logger.Logger, kind types.ArtifactKind, run func(context.Context) (interface{}, error)) types.Outcome {
	bctx, cancel := context.WithTimeout(ctx, u.deps.BranchTimeout)
	defer cancel()

	item, err := run(bctx)
	if err != nil {
		errKind := steps.ErrorKind(err)
		log.Error("artifact publication failed",
			"artifact", string(kind), "kind", errKind, "error", err)
		return types.Failed(&types.ErrorDescriptor{
			Kind:    errKind,
			Message: classroom.ErrMessage(err),
		})
	}
	return types.OK(item)
}

// recordRun persists the publication outcome for the history endpoint.
// Best-effort by design: history must never fail a publication.
func (u Usecases) recordRun(ctx context.Context, courseID, subject string, topic *types.TopicRef, result types.PublicationResult, took time.Duration) {
	if u.deps.Runs == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		u.deps.Log.Warn("publication run marshal failed", "error", err)
		return
	}
	succeeded, failed := result.Counts()
	run := &types.PublicationRun{
		ID:         uuid.New(),
		CourseID:   courseID,
		Subject:    subject,
		Results:    datatypes.JSON(raw),
		Succeeded:  succeeded,
		Failed:     failed,
		DurationMS: took.Milliseconds(),
	}
	if topic != nil {
		run.TopicID = topic.ID
	}
	dbc := dbctx.Context{Ctx: context.WithoutCancel(ctx)}
	if _, err := u.deps.Runs.Create(dbc, []*types.PublicationRun{run}); err != nil {
		u.deps.Log.Warn("publication run write failed", "course_id", courseID, "error", err)
	}
}

// PublishMedia is the standalone media endpoint: one image plus either alt
// text or an audio summary, published without the rest of the bundle. Unlike
// Publish, a failure here is the whole response.
func (u Usecases) PublishMedia(ctx context.Context, accessToken, courseID string, in steps.PublishMediaInput) (interface{}, error) {
	withAudio := in.AudioDataURI != "" && in.Description != ""
	if in.ImageDataURI == "" || (in.AltText == "" && !withAudio) {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeBadRequest,
			fmt.Errorf("missing required fields"))
	}

	lms, err := u.deps.LMS(ctx, accessToken)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal,
			fmt.Errorf("classroom client: %w", err))
	}
	blob, err := u.deps.Blob(ctx, accessToken)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal,
			fmt.Errorf("drive client: %w", err))
	}

	in.CourseID = courseID
	material, err := steps.PublishMedia(ctx, steps.PublishMediaDeps{
		Log:     u.deps.Log.With("course_id", courseID),
		LMS:     lms,
		Blob:    blob,
		Archive: u.deps.Archive,
	}, in)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, steps.ErrorKind(err),
			fmt.Errorf("%s", classroom.ErrMessage(err)))
	}
	return material, nil
}

// PublishAssignment creates a doc-backed assignment: the content goes into a
// new Google Doc attached as each student's own copy. Like PublishMedia, a
// failure here fails the whole call.
func (u Usecases) PublishAssignment(ctx context.Context, accessToken, courseID, title, description string) (interface{}, error) {
	if title == "" || description == "" {
		return nil, apierr.New(http.StatusBadRequest, apierr.CodeBadRequest,
			fmt.Errorf("missing title or description"))
	}

	lms, err := u.deps.LMS(ctx, accessToken)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal,
			fmt.Errorf("classroom client: %w", err))
	}
	docsClient, err := u.deps.Docs(ctx, accessToken)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, apierr.CodeInternal,
			fmt.Errorf("docs client: %w", err))
	}

	work, err := steps.PublishAssignment(ctx, steps.PublishAssignmentDeps{
		LMS:  lms,
		Docs: docsClient,
	}, steps.PublishAssignmentInput{
		CourseID:    courseID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		u.deps.Log.Error("assignment publication failed", "course_id", courseID, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, steps.ErrorKind(err),
			fmt.Errorf("%s", classroom.ErrMessage(err)))
	}
	return work, nil
}
