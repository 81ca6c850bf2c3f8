package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/josephkmh/photoblog-api/internal/model"
	"github.com/josephkmh/photoblog-api/internal/shared"
)

// Сколько фотографий отдает выборка по тегу за один запрос.
const defaultTagLimit = 20

// PhotoService собирает фотографию, ее альбом и теги в форму ответа.
type PhotoService struct {
	photos PhotoStore
	albums AlbumStore
	tags   TagStore
}

func NewPhotoService(photos PhotoStore, albums AlbumStore, tags TagStore) *PhotoService {
	return &PhotoService{
		photos: photos,
		albums: albums,
		tags:   tags,
	}
}

// GetPhoto читает строку фотографии (вместе с альбомом) и ее теги
// параллельно. Отсутствие альбома или тегов запрос не проваливает;
// ошибка чтения фотографии возвращается как есть.
func (s *PhotoService) GetPhoto(ctx context.Context, id int64) (*model.AssembledPhoto, error) {
	var photo *model.Photo
	var membership *model.AlbumMembership
	var tags []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, m, err := s.photos.GetPhotoByID(gctx, id)
		photo, membership = p, m
		return err
	})
	g.Go(func() error {
		t, err := s.tags.GetTags(gctx, id)
		tags = t
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []string{}
	}
	return &model.AssembledPhoto{
		ID:          photo.ID,
		Hidden:      photo.Hidden,
		OnFrontPage: photo.Stream,
		Processing:  photo.Processing,
		Date:        photo.Date,
		Description: photo.Description,
		Sizes:       photo.Sizes,
		Album:       membership,
		Tags:        tags,
	}, nil
}

// GetAlbum читает содержимое альбома и счетчик параллельно.
func (s *PhotoService) GetAlbum(ctx context.Context, name string) (*model.Album, error) {
	if name == "" {
		return nil, fmt.Errorf("album name: %w", shared.ErrInvalidInput)
	}

	var photos []model.AlbumPhoto
	var size int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.albums.ListByAlbum(gctx, name)
		photos = p
		return err
	})
	g.Go(func() error {
		n, err := s.albums.CountByAlbum(gctx, name)
		size = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.Album{
		Name:   name,
		Size:   size,
		Photos: photos,
	}, nil
}

func (s *PhotoService) GetStream(ctx context.Context) ([]model.StreamPhoto, error) {
	return s.photos.GetPhotosOnFrontPage(ctx)
}

// SetAlbumCover назначает обложку альбома; photoID == 0 — фотографию
// на позиции 1.
func (s *PhotoService) SetAlbumCover(ctx context.Context, name string, photoID int64) error {
	return s.albums.SetCover(ctx, name, photoID)
}

// GetTag возвращает собранные фотографии, помеченные тегом,
// в порядке возрастания id.
func (s *PhotoService) GetTag(ctx context.Context, tag string) ([]*model.AssembledPhoto, error) {
	if tag == "" {
		return nil, fmt.Errorf("tag: %w", shared.ErrInvalidInput)
	}
	ids, err := s.tags.GetPhotoIDsWithTag(ctx, tag, defaultTagLimit, 0)
	if err != nil {
		return nil, err
	}

	result := make([]*model.AssembledPhoto, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			p, err := s.GetPhoto(gctx, id)
			result[i] = p
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}
