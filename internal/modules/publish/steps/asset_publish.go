package steps

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aulagen/aulagen-backend/internal/clients/drive"
	types "github.com/aulagen/aulagen-backend/internal/domain"
	"github.com/aulagen/aulagen-backend/internal/platform/gcp"
	"github.com/aulagen/aulagen-backend/internal/platform/logger"
)

type PublishAssetDeps struct {
	Log  *logger.Logger
	Blob drive.Client

	// Archive is optional. When set, every published asset is also copied to
	// the service-owned bucket; failures there are logged, never surfaced.
	Archive gcp.ArchiveService
}

type PublishAssetInput struct {
	// Label prefixes the generated display name ("Generated Image",
	// "Audio Summary").
	Label   string
	FileExt string
	Asset   types.BinaryAsset
}

// PublishAsset uploads one binary asset to the blob store and grants public
// read so students can view it. The display name carries a timestamp to avoid
// collisions across publications. A grant failure after a successful upload
// leaves the object stored but unshared; no rollback is attempted.
func PublishAsset(ctx context.Context, deps PublishAssetDeps, in PublishAssetInput) (types.StoredAssetRef, error) {
	name := fmt.Sprintf("%s - %d%s", in.Label, time.Now().UnixMilli(), in.FileExt)

	id, err := deps.Blob.CreateFile(ctx, name, in.Asset.MIMEType, bytes.NewReader(in.Asset.Data))
	if err != nil {
		return types.StoredAssetRef{}, uploadFailed(err)
	}
	if err := deps.Blob.GrantPublicRead(ctx, id); err != nil {
		return types.StoredAssetRef{}, permissionFailed(err)
	}

	ref := types.StoredAssetRef{ID: id, Name: name, MIMEType: in.Asset.MIMEType}

	if deps.Archive != nil {
		key := fmt.Sprintf("assets/%s/%s%s", time.Now().UTC().Format("2006/01"), uuid.NewString(), in.FileExt)
		if err := deps.Archive.Archive(ctx, key, in.Asset.MIMEType, in.Asset.Data); err != nil {
			deps.Log.Warn("asset archive copy failed", "key", key, "asset_id", id, "error", err)
		}
	}

	return ref, nil
}
