package service

import "github.com/josephkmh/photoblog-api/internal/model"

// MergePhotoData накладывает заполненные поля запроса поверх сохраненного
// снимка, поле за полем и рекурсивно для альбома и вариантов размера.
// Нулевое значение в запросе оставляет сохраненное: запрос не может
// затереть данные пустой строкой или нулем (и, как и раньше, не может
// сбросить флаг в false). Чистая функция, без побочных эффектов.
func MergePhotoData(old, req model.AssembledPhoto) model.AssembledPhoto {
	merged := old
	merged.ID = old.ID // id неизменяем

	if req.Hidden {
		merged.Hidden = true
	}
	if req.OnFrontPage {
		merged.OnFrontPage = true
	}
	if req.Processing {
		merged.Processing = true
	}
	if !req.Date.IsZero() {
		merged.Date = req.Date
	}
	if req.Description != "" {
		merged.Description = req.Description
	}
	merged.Sizes = mergeSizes(old.Sizes, req.Sizes)
	if req.Album != nil {
		if old.Album != nil {
			a := mergeAlbum(*old.Album, *req.Album)
			merged.Album = &a
		} else {
			a := *req.Album
			merged.Album = &a
		}
	}
	if len(req.Tags) > 0 {
		merged.Tags = req.Tags
	}
	return merged
}

func mergeAlbum(old, req model.AlbumMembership) model.AlbumMembership {
	merged := old
	if req.Name != "" {
		merged.Name = req.Name
	}
	if req.Position != 0 {
		merged.Position = req.Position
	}
	if req.Cover {
		merged.Cover = true
	}
	return merged
}

func mergeSizes(old, req model.Sizes) model.Sizes {
	return model.Sizes{
		Small:  mergeVariant(old.Small, req.Small),
		Medium: mergeVariant(old.Medium, req.Medium),
		Full:   mergeVariant(old.Full, req.Full),
	}
}

func mergeVariant(old, req model.SizeVariant) model.SizeVariant {
	merged := old
	if req.URL != "" {
		merged.URL = req.URL
	}
	if req.Width != 0 {
		merged.Width = req.Width
	}
	if req.Height != 0 {
		merged.Height = req.Height
	}
	return merged
}
