package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/josephkmh/photoblog-api/internal/model"
	"github.com/josephkmh/photoblog-api/internal/shared"
)

func (s *Storage) CreatePhoto(ctx context.Context, stream bool, date time.Time) (*model.Photo, error) {
	return createPhoto(ctx, s.DB, stream, date)
}

func createPhoto(ctx context.Context, db dbtx, stream bool, date time.Time) (*model.Photo, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO images (stream, date) VALUES ($1, $2)
		 RETURNING image_id`,
		stream, date,
	)
	var id int64
	if err := row.Scan(&id); err != nil {
		return nil, fmt.Errorf("insert image: %w: %w", err, shared.ErrStorage)
	}
	if id == 0 {
		return nil, fmt.Errorf("insert image: no id returned: %w", shared.ErrStorage)
	}
	return &model.Photo{
		ID:         id,
		Date:       date,
		Stream:     stream,
		Processing: true,
	}, nil
}

func (s *Storage) UpdatePhoto(ctx context.Context, p model.Photo) error {
	return updatePhoto(ctx, s.DB, p)
}

func updatePhoto(ctx context.Context, db dbtx, p model.Photo) error {
	res, err := db.Exec(ctx,
		`UPDATE images
		 SET image_url=$1, width=$2, height=$3, mid_url=$4, thumb_url=$5,
		     date=$6, description=$7, stream=$8, hidden=$9, processing=$10
		 WHERE image_id=$11`,
		p.Sizes.Full.URL, p.Sizes.Full.Width, p.Sizes.Full.Height,
		p.Sizes.Medium.URL, p.Sizes.Small.URL,
		p.Date, p.Description, p.Stream, p.Hidden, p.Processing,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("update images: %w", err)
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("update images: photo %d not matched: %w", p.ID, shared.ErrStorage)
	}
	return nil
}

// GetPhotoByID возвращает фотографию вместе с её привязкой к альбому
// (nil, если привязки нет). Больше одной строки на id — нарушение
// целостности, оно возвращается как ошибка, а не разрешается молча.
func (s *Storage) GetPhotoByID(ctx context.Context, id int64) (*model.Photo, *model.AlbumMembership, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT i.image_id, i.date, COALESCE(i.description, ''),
		        i.stream, i.hidden, i.processing,
		        COALESCE(i.image_url, ''), COALESCE(i.width, 0), COALESCE(i.height, 0),
		        COALESCE(i.mid_url, ''), COALESCE(i.thumb_url, ''),
		        a.album, a.position, a.album_cover
		 FROM images i
		 LEFT JOIN albums a ON a.image_id = i.image_id
		 WHERE i.image_id = $1`,
		id,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("select image: %w", err)
	}
	defer rows.Close()

	var photos []model.Photo
	var memberships []*model.AlbumMembership
	for rows.Next() {
		var p model.Photo
		var album *string
		var position *int
		var cover *bool
		if err := rows.Scan(
			&p.ID, &p.Date, &p.Description, &p.Stream, &p.Hidden, &p.Processing,
			&p.Sizes.Full.URL, &p.Sizes.Full.Width, &p.Sizes.Full.Height,
			&p.Sizes.Medium.URL, &p.Sizes.Small.URL,
			&album, &position, &cover,
		); err != nil {
			return nil, nil, fmt.Errorf("scan image: %w", err)
		}
		var m *model.AlbumMembership
		if album != nil {
			m = &model.AlbumMembership{PhotoID: p.ID, Name: *album}
			if position != nil {
				m.Position = *position
			}
			if cover != nil {
				m.Cover = *cover
			}
		}
		photos = append(photos, p)
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("select image: %w", err)
	}
	if len(photos) == 0 {
		return nil, nil, fmt.Errorf("photo %d: %w", id, shared.ErrNotFound)
	}
	if len(photos) > 1 {
		// дубликат id — нарушение целостности, наружу как отсутствие
		// однозначной фотографии
		return nil, nil, fmt.Errorf("photo %d: %d rows: %w", id, len(photos), shared.ErrNotFound)
	}
	return &photos[0], memberships[0], nil
}

func (s *Storage) GetPhotosOnFrontPage(ctx context.Context) ([]model.StreamPhoto, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT i.image_id, a.album, i.stream, a.position, COALESCE(i.thumb_url, '')
		 FROM images i
		 INNER JOIN albums a ON a.image_id = i.image_id
		 WHERE i.stream = true`,
	)
	if err != nil {
		return nil, fmt.Errorf("select stream: %w", err)
	}
	defer rows.Close()

	var result []model.StreamPhoto
	for rows.Next() {
		var p model.StreamPhoto
		if err := rows.Scan(&p.ID, &p.Album, &p.OnFrontPage, &p.Position, &p.Thumbnail); err != nil {
			return nil, fmt.Errorf("scan stream: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select stream: %w", err)
	}
	if len(result) == 0 {
		// пустая лента — сигнал для вызывающей стороны, не сбой
		return nil, fmt.Errorf("photo stream: %w", shared.ErrNotFound)
	}
	return result, nil
}
