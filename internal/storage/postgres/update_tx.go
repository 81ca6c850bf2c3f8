package postgres

import (
	"context"

	"github.com/josephkmh/photoblog-api/internal/model"
)

// UpdatePhotoWithMembership выполняет запись фотографии, upsert строки
// альбома и пересортировку одной транзакцией. Строки альбома блокируются
// через FOR UPDATE, так что плотность позиций не зависит от конкурентных
// обновлений того же альбома.
func (s *Storage) UpdatePhotoWithMembership(ctx context.Context, p model.Photo, m model.AlbumMembership, exists bool) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := updatePhoto(ctx, tx, p); err != nil {
		return err
	}
	if err := upsertMembership(ctx, tx, m, exists); err != nil {
		return err
	}
	if err := reorderAlbum(ctx, tx, m.Name, true); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
