package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/josephkmh/photoblog-api/internal/images"
	"github.com/josephkmh/photoblog-api/internal/model"
)

// UploadService проводит новую фотографию через весь конвейер: строка в
// базе, производные размеры, три объекта в S3, финальные URL в базе.
type UploadService struct {
	photos PhotoStore
	albums AlbumStore
	blob   BlobStore
	update *UpdateService
}

func NewUploadService(photos PhotoStore, albums AlbumStore, blob BlobStore, update *UpdateService) *UploadService {
	return &UploadService{
		photos: photos,
		albums: albums,
		blob:   blob,
		update: update,
	}
}

type NewPhotoInput struct {
	Data        []byte
	Filename    string
	ContentType string
	Stream      bool
	Date        time.Time
	Album       string
	Cover       bool
}

func (s *UploadService) UploadPhoto(ctx context.Context, in NewPhotoInput) (*model.AssembledPhoto, error) {
	if len(in.Data) == 0 {
		return nil, fmt.Errorf("upload: empty file")
	}
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	photo, err := s.photos.CreatePhoto(ctx, in.Stream, date)
	if err != nil {
		return nil, err
	}
	if in.Album != "" {
		// Первая привязка к альбому, позиция 1
		m := model.AlbumMembership{PhotoID: photo.ID, Name: in.Album, Cover: in.Cover}
		if err := s.albums.UpsertMembership(ctx, m, false); err != nil {
			return nil, err
		}
	}

	derived, err := images.GenerateSizes(in.Data)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(in.Filename))
	if ext == "" {
		ext = ".jpg"
	}
	base := fmt.Sprintf("%s_%s", uuid.New().String()[:12], date.Format("2006-01-02"))

	fullURL, err := s.blob.UploadFile(ctx, "full/"+base+"__full"+ext, in.ContentType, in.Data)
	if err != nil {
		return nil, fmt.Errorf("upload full: %w", err)
	}
	midURL, err := s.blob.UploadFile(ctx, "medium/"+base+"__medium"+ext, in.ContentType, derived.Medium)
	if err != nil {
		return nil, fmt.Errorf("upload medium: %w", err)
	}
	thumbURL, err := s.blob.UploadFile(ctx, "thumbnail/"+base+"__thumbnail"+ext, in.ContentType, derived.Thumbnail)
	if err != nil {
		return nil, fmt.Errorf("upload thumbnail: %w", err)
	}

	outcome, err := s.update.UpdatePhoto(ctx, photo.ID, model.AssembledPhoto{
		Sizes: model.Sizes{
			Small:  model.SizeVariant{URL: thumbURL},
			Medium: model.SizeVariant{URL: midURL},
			Full:   model.SizeVariant{URL: fullURL, Width: derived.Width, Height: derived.Height},
		},
	})
	if err != nil {
		return nil, err
	}

	// Флаг processing снимается прямой записью: мердж нулевые значения
	// не перекрывает
	finished := photoFromAssembled(*outcome.Photo)
	finished.Processing = false
	if err := s.photos.UpdatePhoto(ctx, finished); err != nil {
		return nil, err
	}
	outcome.Photo.Processing = false
	return outcome.Photo, nil
}
