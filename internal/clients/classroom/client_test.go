package classroom

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	classroomapi "google.golang.org/api/classroom/v1"
	"google.golang.org/api/option"
)

func TestListTopicsFollowsPagination(t *testing.T) {
	var requests []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/courses/course-1/topics" {
			t.Errorf("unexpected path %q", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		token := r.URL.Query().Get("pageToken")
		requests = append(requests, token)

		var resp classroomapi.ListTopicResponse
		switch token {
		case "":
			resp = classroomapi.ListTopicResponse{
				Topic:         []*classroomapi.Topic{{TopicId: "t1", Name: "Algebra"}},
				NextPageToken: "page-2",
			}
		case "page-2":
			resp = classroomapi.ListTopicResponse{
				Topic: []*classroomapi.Topic{{TopicId: "t2", Name: "Geometry"}},
			}
		default:
			t.Errorf("unexpected page token %q", token)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	svc, err := classroomapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL),
		option.WithoutAuthentication(),
	)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	c := &client{svc: svc}
	topics, err := c.ListTopics(context.Background(), "course-1")
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("expected topics from both pages, got %d", len(topics))
	}
	if topics[0].TopicId != "t1" || topics[1].TopicId != "t2" {
		t.Fatalf("unexpected topic order: %v, %v", topics[0].TopicId, topics[1].TopicId)
	}
	if len(requests) != 2 || requests[1] != "page-2" {
		t.Fatalf("expected a second request with the page token, got %v", requests)
	}
}
