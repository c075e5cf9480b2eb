package listings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/krushna001m/RentEasy-sub000/internal/app/commands"
	"github.com/krushna001m/RentEasy-sub000/internal/app/dto"
	domainlisting "github.com/krushna001m/RentEasy-sub000/internal/domain/listing"
	"github.com/krushna001m/RentEasy-sub000/internal/infra/storage/s3"
)

const uploadPhotoKey = "listings.photos.upload"

type UploadPhotoCommand struct {
	OwnerID     string
	ListingID   string
	ObjectKey   string
	ContentType string
	Reader      io.Reader
}

func (c UploadPhotoCommand) Key() string { return uploadPhotoKey }

type UploadPhotoHandler struct {
	Listings domainlisting.Repository
	Uploader s3.Uploader
	Logger   *slog.Logger
	Now      func() time.Time
}

func (h *UploadPhotoHandler) Handle(ctx context.Context, cmd UploadPhotoCommand) (*dto.PhotoUploadResult, error) {
	if h.Uploader == nil {
		return nil, errors.New("listings: photo uploader unavailable")
	}
	if strings.TrimSpace(cmd.OwnerID) == "" {
		return nil, domainlisting.ErrOwnerRequired
	}
	if strings.TrimSpace(cmd.ListingID) == "" {
		return nil, domainlisting.ErrNotFound
	}
	if cmd.Reader == nil {
		return nil, errors.New("listings: photo reader required")
	}
	if strings.TrimSpace(cmd.ObjectKey) == "" {
		return nil, errors.New("listings: object key required")
	}

	l, err := h.Listings.ByID(ctx, domainlisting.OwnerID(cmd.OwnerID), domainlisting.ID(cmd.ListingID))
	if err != nil {
		return nil, err
	}
	if l.Owner != domainlisting.OwnerID(cmd.OwnerID) {
		return nil, ErrListingNotOwned
	}

	publicURL, err := h.Uploader.Upload(ctx, cmd.ObjectKey, cmd.Reader, cmd.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now()
	}
	if err := l.AddPhoto(publicURL, now); err != nil {
		return nil, err
	}
	if err := h.Listings.Save(ctx, l); err != nil {
		return nil, err
	}

	if h.Logger != nil {
		h.Logger.Info("listing photo added", "listing_id", l.ID, "owner_id", cmd.OwnerID, "object_key", cmd.ObjectKey)
	}

	return &dto.PhotoUploadResult{
		ListingID:    cmd.ListingID,
		Photos:       append([]string(nil), l.Photos...),
		ThumbnailURL: l.ThumbnailURL,
	}, nil
}

var _ commands.Handler[UploadPhotoCommand, *dto.PhotoUploadResult] = (*UploadPhotoHandler)(nil)
