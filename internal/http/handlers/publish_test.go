package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	classroomapi "google.golang.org/api/classroom/v1"

	"github.com/aulagen/aulagen-backend/internal/clients/classroom"
	"github.com/aulagen/aulagen-backend/internal/clients/docs"
	"github.com/aulagen/aulagen-backend/internal/clients/drive"
	"github.com/aulagen/aulagen-backend/internal/http/handlers"
	"github.com/aulagen/aulagen-backend/internal/http/middleware"
	"github.com/aulagen/aulagen-backend/internal/modules/publish"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
	"github.com/aulagen/aulagen-backend/internal/server"
	"github.com/aulagen/aulagen-backend/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubLMS struct {
	mu      sync.Mutex
	courses []*classroomapi.Course
	workErr map[string]error
	works   int
}

func (s *stubLMS) ListCourses(ctx context.Context) ([]*classroomapi.Course, error) {
	return s.courses, nil
}

func (s *stubLMS) CreateTopic(ctx context.Context, courseID, name string) (*classroomapi.Topic, error) {
	return &classroomapi.Topic{TopicId: "topic-1", Name: name}, nil
}

func (s *stubLMS) ListTopics(ctx context.Context, courseID string) ([]*classroomapi.Topic, error) {
	return nil, nil
}

func (s *stubLMS) CreateCourseWork(ctx context.Context, courseID string, work *classroomapi.CourseWork) (*classroomapi.CourseWork, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.workErr[work.Title]; err != nil {
		return nil, err
	}
	s.works++
	work.Id = fmt.Sprintf("work-%d", s.works)
	return work, nil
}

func (s *stubLMS) CreateCourseWorkMaterial(ctx context.Context, courseID string, material *classroomapi.CourseWorkMaterial) (*classroomapi.CourseWorkMaterial, error) {
	material.Id = "material-1"
	return material, nil
}

type stubDocs struct{}

func (stubDocs) CreateDocument(ctx context.Context, title, body string) (string, error) {
	return "doc-1", nil
}

type stubBlob struct{}

func (stubBlob) CreateFile(ctx context.Context, name, mimeType string, body io.Reader) (string, error) {
	return "file-1", nil
}

func (stubBlob) GrantPublicRead(ctx context.Context, fileID string) error { return nil }

func newTestRouter(t *testing.T, lms *stubLMS) *gin.Engine {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	lmsFactory := classroom.Factory(func(ctx context.Context, token string) (classroom.Client, error) {
		return lms, nil
	})
	blobFactory := drive.Factory(func(ctx context.Context, token string) (drive.Client, error) {
		return stubBlob{}, nil
	})
	docsFactory := docs.Factory(func(ctx context.Context, token string) (docs.Client, error) {
		return stubDocs{}, nil
	})
	usecases := publish.New(publish.UsecasesDeps{Log: log, LMS: lmsFactory, Blob: blobFactory, Docs: docsFactory})
	return server.NewRouter(server.RouterConfig{
		Log:            log,
		AuthMiddleware: middleware.NewAuthMiddleware(log),
		CourseHandler:  handlers.NewCourseHandler(log, services.NewCourseService(log, lmsFactory, nil)),
		PublishHandler: handlers.NewPublishHandler(log, usecases),
		HistoryHandler: handlers.NewHistoryHandler(log, services.NewHistoryService(log, nil)),
	})
}

func doJSON(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPublishRequiresToken(t *testing.T) {
	router := newTestRouter(t, &stubLMS{})

	w := doJSON(router, http.MethodPost, "/api/classroom/courses/course-1/publish", "", gin.H{
		"studyMaterials": "Reading.",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Code != "unauthorized" {
		t.Fatalf("expected unauthorized code, got %q", envelope.Error.Code)
	}
}

func TestPublishRejectsEmptyBody(t *testing.T) {
	lms := &stubLMS{}
	router := newTestRouter(t, lms)

	w := doJSON(router, http.MethodPost, "/api/classroom/courses/course-1/publish", "tok", gin.H{})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Error.Code != "empty_request" {
		t.Fatalf("expected empty_request code, got %q", envelope.Error.Code)
	}
	if lms.works != 0 {
		t.Fatal("no course work should be created for an empty request")
	}
}

func TestPublishReturnsOKWithPartialFailure(t *testing.T) {
	lms := &stubLMS{workErr: map[string]error{"Evaluations": errors.New("denied")}}
	router := newTestRouter(t, lms)

	w := doJSON(router, http.MethodPost, "/api/classroom/courses/course-1/publish", "tok", gin.H{
		"studyMaterials": "Reading.",
		"evaluations":    "Problems.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite partial failure, got %d: %s", w.Code, w.Body.String())
	}
	var result map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 result entries, got %d", len(result))
	}
	var failure struct {
		Error *struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(result["evaluations"], &failure); err != nil {
		t.Fatalf("decode evaluations entry: %v", err)
	}
	if failure.Error == nil || failure.Error.Kind != "publish_failed" || failure.Error.Message != "denied" {
		t.Fatalf("unexpected evaluations entry: %s", result["evaluations"])
	}
	var reading struct {
		Error *json.RawMessage `json:"error"`
		ID    string           `json:"id"`
	}
	if err := json.Unmarshal(result["studyMaterials"], &reading); err != nil {
		t.Fatalf("decode studyMaterials entry: %v", err)
	}
	if reading.Error != nil || reading.ID == "" {
		t.Fatalf("expected raw material for studyMaterials, got %s", result["studyMaterials"])
	}
}

func TestListCourses(t *testing.T) {
	lms := &stubLMS{courses: []*classroomapi.Course{{Id: "c1", Name: "Algebra"}}}
	router := newTestRouter(t, lms)

	w := doJSON(router, http.MethodGet, "/api/classroom/courses", "tok", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var courses []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &courses); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(courses) != 1 || courses[0].ID != "c1" {
		t.Fatalf("unexpected courses payload: %s", w.Body.String())
	}
}

func TestPublishAssignment(t *testing.T) {
	lms := &stubLMS{}
	router := newTestRouter(t, lms)

	w := doJSON(router, http.MethodPost, "/api/classroom/courses/course-1/assignments", "tok", gin.H{
		"title":       "Fractions Quiz",
		"description": "1) Shade 3/4 of the circle.",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var work struct {
		Title     string `json:"title"`
		Materials []struct {
			DriveFile struct {
				ShareMode string `json:"shareMode"`
				DriveFile struct {
					ID string `json:"id"`
				} `json:"driveFile"`
			} `json:"driveFile"`
		} `json:"materials"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &work); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if work.Title != "Fractions Quiz" {
		t.Fatalf("unexpected title %q", work.Title)
	}
	if len(work.Materials) != 1 || work.Materials[0].DriveFile.ShareMode != "STUDENT_COPY" ||
		work.Materials[0].DriveFile.DriveFile.ID != "doc-1" {
		t.Fatalf("unexpected attachment payload: %s", w.Body.String())
	}

	w = doJSON(router, http.MethodPost, "/api/classroom/courses/course-1/assignments", "tok", gin.H{
		"title": "Fractions Quiz",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without description, got %d", w.Code)
	}
}

func TestHealthcheckIsPublic(t *testing.T) {
	router := newTestRouter(t, &stubLMS{})

	w := doJSON(router, http.MethodGet, "/healthcheck", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
