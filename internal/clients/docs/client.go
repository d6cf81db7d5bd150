package docs

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	docsapi "google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
)

// Client creates Google Docs to attach to Classroom assignments. No sharing
// calls happen here: Classroom manages permissions when the doc is attached
// with a share mode.
type Client interface {
	CreateDocument(ctx context.Context, title, body string) (string, error)
}

type Factory func(ctx context.Context, accessToken string) (Client, error)

func NewFactory() Factory {
	return func(ctx context.Context, accessToken string) (Client, error) {
		if accessToken == "" {
			return nil, fmt.Errorf("missing access token")
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		svc, err := docsapi.NewService(ctx, option.WithTokenSource(ts))
		if err != nil {
			return nil, fmt.Errorf("create docs service: %w", err)
		}
		return &client{svc: svc}, nil
	}
}

type client struct {
	svc *docsapi.Service
}

// CreateDocument creates a titled doc and inserts the body text at the start.
// The two calls are not atomic; a failed insert leaves an empty titled doc
// behind in the caller's Drive.
func (c *client) CreateDocument(ctx context.Context, title, body string) (string, error) {
	doc, err := c.svc.Documents.Create(&docsapi.Document{Title: title}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("create document %q: %w", title, err)
	}
	if doc.DocumentId == "" {
		return "", fmt.Errorf("create document %q: no document id returned", title)
	}

	if body != "" {
		update := &docsapi.BatchUpdateDocumentRequest{
			Requests: []*docsapi.Request{{
				InsertText: &docsapi.InsertTextRequest{
					Text:     body,
					Location: &docsapi.Location{Index: 1},
				},
			}},
		}
		if _, err := c.svc.Documents.BatchUpdate(doc.DocumentId, update).Context(ctx).Do(); err != nil {
			return "", fmt.Errorf("write document body %q: %w", title, err)
		}
	}
	return doc.DocumentId, nil
}
