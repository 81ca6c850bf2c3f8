package postgres

import (
	"context"
	"fmt"

	"github.com/josephkmh/photoblog-api/internal/shared"
)

// GetTags возвращает пустой список, а не ошибку, если тегов нет.
func (s *Storage) GetTags(ctx context.Context, photoID int64) ([]string, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT tag FROM image_tags WHERE image_id=$1`, photoID)
	if err != nil {
		return nil, fmt.Errorf("select tags: %w", err)
	}
	defer rows.Close()

	tags := []string{}
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("scan tags: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select tags: %w", err)
	}
	return tags, nil
}

func (s *Storage) GetPhotoIDsWithTag(ctx context.Context, tag string, limit, offset int) ([]int64, error) {
	rows, err := s.DB.Query(ctx,
		`SELECT i.image_id
		 FROM image_tags t
		 INNER JOIN images i ON t.image_id = i.image_id
		 WHERE t.tag = $1
		 ORDER BY i.image_id
		 LIMIT $2 OFFSET $3`,
		tag, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("select images with tag: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan images with tag: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("select images with tag: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("tag %q: %w", tag, shared.ErrNotFound)
	}
	return ids, nil
}
