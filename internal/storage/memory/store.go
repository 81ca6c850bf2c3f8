// Package memory хранит фотографии, альбомы и теги в картах под RWMutex.
// Семантика повторяет postgres-хранилище; используется в тестах сервисов
// и обработчиков вместо живой базы.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/josephkmh/photoblog-api/internal/model"
	"github.com/josephkmh/photoblog-api/internal/shared"
)

type Store struct {
	mu     sync.RWMutex
	nextID int64
	photos map[int64]model.Photo
	albums map[int64]model.AlbumMembership
	tags   map[int64][]string

	// FailUpsert и FailReorder подставляют ошибку соответствующего шага
	FailUpsert  error
	FailReorder error
}

func NewStore() *Store {
	return &Store{
		photos: make(map[int64]model.Photo),
		albums: make(map[int64]model.AlbumMembership),
		tags:   make(map[int64][]string),
	}
}

func (s *Store) CreatePhoto(ctx context.Context, stream bool, date time.Time) (*model.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	p := model.Photo{
		ID:         s.nextID,
		Date:       date,
		Stream:     stream,
		Processing: true,
	}
	s.photos[p.ID] = p
	return &p, nil
}

func (s *Store) UpdatePhoto(ctx context.Context, p model.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatePhotoLocked(p)
}

func (s *Store) updatePhotoLocked(p model.Photo) error {
	if _, ok := s.photos[p.ID]; !ok {
		return fmt.Errorf("update images: photo %d not matched: %w", p.ID, shared.ErrStorage)
	}
	s.photos[p.ID] = p
	return nil
}

func (s *Store) GetPhotoByID(ctx context.Context, id int64) (*model.Photo, *model.AlbumMembership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.photos[id]
	if !ok {
		return nil, nil, fmt.Errorf("photo %d: %w", id, shared.ErrNotFound)
	}
	var membership *model.AlbumMembership
	if m, ok := s.albums[id]; ok {
		cp := m
		membership = &cp
	}
	return &p, membership, nil
}

func (s *Store) GetPhotosOnFrontPage(ctx context.Context) ([]model.StreamPhoto, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.StreamPhoto
	for id, p := range s.photos {
		m, ok := s.albums[id]
		if !ok || !p.Stream {
			continue
		}
		result = append(result, model.StreamPhoto{
			ID:          id,
			Album:       m.Name,
			OnFrontPage: p.Stream,
			Position:    m.Position,
			Thumbnail:   p.Sizes.Small.URL,
		})
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("photo stream: %w", shared.ErrNotFound)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) UpsertMembership(ctx context.Context, m model.AlbumMembership, exists bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUpsert != nil {
		return s.FailUpsert
	}
	return s.upsertMembershipLocked(m, exists)
}

func (s *Store) upsertMembershipLocked(m model.AlbumMembership, exists bool) error {
	if !exists {
		m.Position = 1
		s.albums[m.PhotoID] = m
		return nil
	}
	if _, ok := s.albums[m.PhotoID]; !ok {
		return fmt.Errorf("upsert membership: photo %d: 0 rows affected: %w", m.PhotoID, shared.ErrStorage)
	}
	s.albums[m.PhotoID] = m
	return nil
}

func (s *Store) ReorderAlbum(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReorder != nil {
		return s.FailReorder
	}
	s.reorderAlbumLocked(name)
	return nil
}

func (s *Store) reorderAlbumLocked(name string) {
	var ids []int64
	for id, m := range s.albums {
		if m.Name == name {
			ids = append(ids, id)
		}
	}
	// порядок чтения: текущая позиция, id как стабильный разделитель
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.albums[ids[i]], s.albums[ids[j]]
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return ids[i] < ids[j]
	})
	for i, id := range ids {
		m := s.albums[id]
		m.Position = i + 1
		s.albums[id] = m
	}
}

func (s *Store) SetCover(ctx context.Context, name string, photoID int64) error {
	if name == "" {
		return fmt.Errorf("album name: %w", shared.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, m := range s.albums {
		if m.Name == name && m.Cover {
			m.Cover = false
			s.albums[id] = m
		}
	}
	for id, m := range s.albums {
		if m.Name != name {
			continue
		}
		if (photoID == 0 && m.Position == 1) || (photoID != 0 && id == photoID) {
			m.Cover = true
			s.albums[id] = m
			return nil
		}
	}
	return fmt.Errorf("set album cover: album %q: %w", name, shared.ErrNotFound)
}

func (s *Store) ListByAlbum(ctx context.Context, name string) ([]model.AlbumPhoto, error) {
	if name == "" {
		return nil, fmt.Errorf("album name: %w", shared.ErrInvalidInput)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var photos []model.AlbumPhoto
	for id, m := range s.albums {
		if m.Name != name {
			continue
		}
		p := s.photos[id]
		photos = append(photos, model.AlbumPhoto{
			ID:           id,
			Hidden:       p.Hidden,
			IsAlbumCover: m.Cover,
			OnFrontPage:  p.Stream,
			Position:     m.Position,
			Sizes:        p.Sizes,
		})
	}
	if len(photos) == 0 {
		return nil, fmt.Errorf("album %q: %w", name, shared.ErrNotFound)
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].Position < photos[j].Position })
	return photos, nil
}

func (s *Store) CountByAlbum(ctx context.Context, name string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, m := range s.albums {
		if m.Name == name {
			count++
		}
	}
	return count, nil
}

func (s *Store) GetTags(ctx context.Context, photoID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tags := []string{}
	tags = append(tags, s.tags[photoID]...)
	return tags, nil
}

func (s *Store) GetPhotoIDsWithTag(ctx context.Context, tag string, limit, offset int) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []int64
	for id, tags := range s.tags {
		for _, t := range tags {
			if t == tag {
				ids = append(ids, id)
				break
			}
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("tag %q: %w", tag, shared.ErrNotFound)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if offset >= len(ids) {
		return nil, fmt.Errorf("tag %q: %w", tag, shared.ErrNotFound)
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}
	return ids, nil
}

// UpdatePhotoWithMembership — атомарный аналог транзакционного метода
// postgres-хранилища: либо применяются все три шага, либо ни одного.
func (s *Store) UpdatePhotoWithMembership(ctx context.Context, p model.Photo, m model.AlbumMembership, exists bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailUpsert != nil {
		return s.FailUpsert
	}
	if s.FailReorder != nil {
		return s.FailReorder
	}
	if _, ok := s.photos[p.ID]; !ok {
		return fmt.Errorf("update images: photo %d not matched: %w", p.ID, shared.ErrStorage)
	}
	if exists {
		if _, ok := s.albums[m.PhotoID]; !ok {
			return fmt.Errorf("upsert membership: photo %d: 0 rows affected: %w", m.PhotoID, shared.ErrStorage)
		}
	}
	if err := s.updatePhotoLocked(p); err != nil {
		return err
	}
	if err := s.upsertMembershipLocked(m, exists); err != nil {
		return err
	}
	s.reorderAlbumLocked(m.Name)
	return nil
}

// SetTags задаёт теги фотографии (подготовка данных в тестах).
func (s *Store) SetTags(photoID int64, tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tags[photoID] = append([]string(nil), tags...)
}
