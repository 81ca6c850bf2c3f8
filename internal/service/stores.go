package service

import (
	"context"
	"time"

	"github.com/josephkmh/photoblog-api/internal/model"
)

// Интерфейсы хранилищ, которые потребляют сервисы. Их реализуют
// postgres.Storage и memory.Store.

type PhotoStore interface {
	CreatePhoto(ctx context.Context, stream bool, date time.Time) (*model.Photo, error)
	UpdatePhoto(ctx context.Context, p model.Photo) error
	GetPhotoByID(ctx context.Context, id int64) (*model.Photo, *model.AlbumMembership, error)
	GetPhotosOnFrontPage(ctx context.Context) ([]model.StreamPhoto, error)
}

type AlbumStore interface {
	UpsertMembership(ctx context.Context, m model.AlbumMembership, exists bool) error
	ReorderAlbum(ctx context.Context, name string) error
	SetCover(ctx context.Context, name string, photoID int64) error
	ListByAlbum(ctx context.Context, name string) ([]model.AlbumPhoto, error)
	CountByAlbum(ctx context.Context, name string) (int, error)
}

type TagStore interface {
	GetTags(ctx context.Context, photoID int64) ([]string, error)
	GetPhotoIDsWithTag(ctx context.Context, tag string, limit, offset int) ([]int64, error)
}

// TxStore — транзакционная запись фотографии вместе с альбомом,
// атомарный путь координатора обновления.
type TxStore interface {
	UpdatePhotoWithMembership(ctx context.Context, p model.Photo, m model.AlbumMembership, exists bool) error
}

// BlobStore — загрузка бинарных данных в объектное хранилище.
type BlobStore interface {
	UploadFile(ctx context.Context, key, contentType string, body []byte) (string, error)
}
