package steps

import (
	"context"
	"fmt"

	classroomapi "google.golang.org/api/classroom/v1"

	"github.com/aulagen/aulagen-backend/internal/clients/classroom"
	"github.com/aulagen/aulagen-backend/internal/clients/drive"
	types "github.com/aulagen/aulagen-backend/internal/domain"
	"github.com/aulagen/aulagen-backend/internal/platform/gcp"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

type PublishMediaDeps struct {
	Log     *logger.Logger
	LMS     classroom.Client
	Blob    drive.Client
	Archive gcp.ArchiveService
}

type PublishMediaInput struct {
	CourseID     string
	ImageDataURI string
	AltText      string
	AudioDataURI string
	Description  string
	Topic        *types.TopicRef
}

// PublishMedia uploads the image (and optionally an audio summary) to the blob
// store and publishes a course material referencing the stored assets. Two
// shapes are valid: image + alt text, or image + audio + description. Uploads
// always complete before the material is created so the attachment IDs exist.
func PublishMedia(ctx context.Context, deps PublishMediaDeps, in PublishMediaInput) (*classroomapi.CourseWorkMaterial, error) {
	withAudio := in.AudioDataURI != "" && in.Description != ""
	if in.AltText == "" && !withAudio {
		return nil, invalidPayload(fmt.Errorf("media needs either alt text or an audio summary with a description"))
	}

	image, err := types.DecodeDataURI(in.ImageDataURI, types.DefaultImageMIME)
	if err != nil {
		return nil, invalidPayload(fmt.Errorf("image payload: %w", err))
	}

	assetDeps := PublishAssetDeps{Log: deps.Log, Blob: deps.Blob, Archive: deps.Archive}
	imageRef, err := PublishAsset(ctx, assetDeps, PublishAssetInput{
		Label:   "Generated Image",
		FileExt: ".png",
		Asset:   image,
	})
	if err != nil {
		return nil, err
	}

	var material *classroomapi.CourseWorkMaterial
	if withAudio {
		audio, err := types.DecodeDataURI(in.AudioDataURI, types.DefaultAudioMIME)
		if err != nil {
			return nil, invalidPayload(fmt.Errorf("audio payload: %w", err))
		}
		audioRef, err := PublishAsset(ctx, assetDeps, PublishAssetInput{
			Label:   "Audio Summary",
			FileExt: ".mp3",
			Asset:   audio,
		})
		if err != nil {
			return nil, err
		}
		material = &classroomapi.CourseWorkMaterial{
			Title:       "Material with Audio Summary",
			Description: in.Description,
			Materials: []*classroomapi.Material{
				attachment(imageRef),
				attachment(audioRef),
			},
			State:   "PUBLISHED",
			TopicId: topicID(in.Topic),
		}
	} else {
		material = &classroomapi.CourseWorkMaterial{
			Title:       "AI Generated Image",
			Description: in.AltText,
			Materials: []*classroomapi.Material{
				attachment(imageRef),
			},
			State:   "PUBLISHED",
			TopicId: topicID(in.Topic),
		}
	}

	return deps.LMS.CreateCourseWorkMaterial(ctx, in.CourseID, material)
}

func attachment(ref types.StoredAssetRef) *classroomapi.Material {
	return &classroomapi.Material{
		DriveFile: &classroomapi.SharedDriveFile{
			DriveFile: &classroomapi.DriveFile{Id: ref.ID},
			ShareMode: "VIEW",
		},
	}
}
