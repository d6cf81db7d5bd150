package drive

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/oauth2"
	driveapi "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Client is the blob-store boundary: upload bytes, grant public read. Drive is
// the store because Classroom material attachments reference Drive file IDs.
type Client interface {
	CreateFile(ctx context.Context, name, mimeType string, body io.Reader) (string, error)
	GrantPublicRead(ctx context.Context, fileID string) error
}

type Factory func(ctx context.Context, accessToken string) (Client, error)

func NewFactory() Factory {
	return func(ctx context.Context, accessToken string) (Client, error) {
		if accessToken == "" {
			return nil, fmt.Errorf("missing access token")
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		svc, err := driveapi.NewService(ctx, option.WithTokenSource(ts))
		if err != nil {
			return nil, fmt.Errorf("create drive service: %w", err)
		}
		return &client{svc: svc}, nil
	}
}

type client struct {
	svc *driveapi.Service
}

func (c *client) CreateFile(ctx context.Context, name, mimeType string, body io.Reader) (string, error) {
	file := &driveapi.File{Name: name, MimeType: mimeType}
	created, err := c.svc.Files.Create(file).
		Media(body, googleapi.ContentType(mimeType)).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("upload file %q: %w", name, err)
	}
	if created.Id == "" {
		return "", fmt.Errorf("upload file %q: store returned no id", name)
	}
	return created.Id, nil
}

func (c *client) GrantPublicRead(ctx context.Context, fileID string) error {
	perm := &driveapi.Permission{Role: "reader", Type: "anyone"}
	if _, err := c.svc.Permissions.Create(fileID, perm).Context(ctx).Do(); err != nil {
		return fmt.Errorf("grant public read on %s: %w", fileID, err)
	}
	return nil
}
