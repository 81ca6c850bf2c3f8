package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/josephkmh/photoblog-api/internal/model"
	"github.com/josephkmh/photoblog-api/internal/shared"
)

// UpsertMembership вставляет строку альбома на позицию 1, если у фотографии
// её ещё нет (exists=false), иначе обновляет существующую по image_id.
func (s *Storage) UpsertMembership(ctx context.Context, m model.AlbumMembership, exists bool) error {
	return upsertMembership(ctx, s.DB, m, exists)
}

func upsertMembership(ctx context.Context, db dbtx, m model.AlbumMembership, exists bool) error {
	var res pgconn.CommandTag
	var err error
	if !exists {
		res, err = db.Exec(ctx,
			`INSERT INTO albums (album, position, album_cover, image_id)
			 VALUES ($1, 1, $2, $3)`,
			m.Name, m.Cover, m.PhotoID,
		)
	} else {
		res, err = db.Exec(ctx,
			`UPDATE albums SET album=$1, position=$2, album_cover=$3
			 WHERE image_id=$4`,
			m.Name, m.Position, m.Cover, m.PhotoID,
		)
	}
	if err != nil {
		return fmt.Errorf("upsert membership: %w", err)
	}
	if res.RowsAffected() != 1 {
		return fmt.Errorf("upsert membership: photo %d: %d rows affected: %w",
			m.PhotoID, res.RowsAffected(), shared.ErrStorage)
	}
	return nil
}

// ReorderAlbum переписывает позиции альбома плотной последовательностью 1..N
// в порядке текущих позиций. Сбой на одной строке не останавливает проход:
// остальные строки всё равно обновляются, ошибки возвращаются вместе.
// Вне транзакции проход не сериализован с конкурентными записями.
func (s *Storage) ReorderAlbum(ctx context.Context, name string) error {
	return reorderAlbum(ctx, s.DB, name, false)
}

func reorderAlbum(ctx context.Context, db dbtx, name string, lock bool) error {
	q := `SELECT image_id FROM albums WHERE album=$1 ORDER BY position ASC`
	if lock {
		q += ` FOR UPDATE`
	}
	rows, err := db.Query(ctx, q, name)
	if err != nil {
		return fmt.Errorf("reorder album %q: %w", name, err)
	}
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("reorder album %q: %w", name, err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reorder album %q: %w", name, err)
	}

	var errs []error
	for i, id := range ids {
		if _, err := db.Exec(ctx,
			`UPDATE albums SET position=$1 WHERE image_id=$2`,
			i+1, id,
		); err != nil {
			errs = append(errs, fmt.Errorf("reposition photo %d: %w", id, err))
		}
	}
	return errors.Join(errs...)
}

// SetCover снимает флаг обложки с текущей строки альбома и ставит его на
// указанную фотографию, либо на позицию 1, если photoID == 0. Два шага не
// атомарны: между ними альбом может наблюдаться без обложки.
func (s *Storage) SetCover(ctx context.Context, name string, photoID int64) error {
	if name == "" {
		return fmt.Errorf("album name: %w", shared.ErrInvalidInput)
	}
	if _, err := s.DB.Exec(ctx,
		`UPDATE albums SET album_cover=false WHERE album_cover=true AND album=$1`,
		name,
	); err != nil {
		return fmt.Errorf("remove album cover: %w", err)
	}

	var res pgconn.CommandTag
	var err error
	if photoID == 0 {
		res, err = s.DB.Exec(ctx,
			`UPDATE albums SET album_cover=true WHERE position=1 AND album=$1`,
			name,
		)
	} else {
		res, err = s.DB.Exec(ctx,
			`UPDATE albums SET album_cover=true WHERE image_id=$1 AND album=$2`,
			photoID, name,
		)
	}
	if err != nil {
		return fmt.Errorf("set album cover: %w", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("set album cover: album %q: %w", name, shared.ErrNotFound)
	}
	return nil
}

func (s *Storage) ListByAlbum(ctx context.Context, name string) ([]model.AlbumPhoto, error) {
	if name == "" {
		return nil, fmt.Errorf("album name: %w", shared.ErrInvalidInput)
	}
	rows, err := s.DB.Query(ctx,
		`SELECT i.image_id, i.hidden, a.album_cover, i.stream, a.position,
		        COALESCE(i.thumb_url, ''), COALESCE(i.mid_url, ''),
		        COALESCE(i.image_url, ''), COALESCE(i.width, 0), COALESCE(i.height, 0)
		 FROM albums a
		 INNER JOIN images i ON a.image_id = i.image_id
		 WHERE a.album = $1
		 ORDER BY a.position`,
		name,
	)
	if err != nil {
		return nil, fmt.Errorf("select album: %w", err)
	}
	defer rows.Close()

	var photos []model.AlbumPhoto
	for rows.Next() {
		var p model.AlbumPhoto
		if err := rows.Scan(
			&p.ID, &p.Hidden, &p.IsAlbumCover, &p.OnFrontPage, &p.Position,
			&p.Sizes.Small.URL, &p.Sizes.Medium.URL,
			&p.Sizes.Full.URL, &p.Sizes.Full.Width, &p.Sizes.Full.Height,
		); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		photos = append(photos, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select album: %w", err)
	}
	if len(photos) == 0 {
		return nil, fmt.Errorf("album %q: %w", name, shared.ErrNotFound)
	}
	return photos, nil
}

// CountByAlbum возвращает 0 для неизвестного альбома, без ошибки.
func (s *Storage) CountByAlbum(ctx context.Context, name string) (int, error) {
	row := s.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM albums WHERE album=$1`, name)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count album: %w", err)
	}
	return count, nil
}
