package service

import (
	"context"
	"log"

	"github.com/josephkmh/photoblog-api/internal/model"
)

// UpdateService проводит обновление фотографии по шагам: чтение текущего
// состояния, мердж запроса, запись фотографии, запись альбома,
// пересортировка, повторная сборка ответа.
type UpdateService struct {
	photos    PhotoStore
	albums    AlbumStore
	tx        TxStore
	assembler *PhotoService

	// atomic: шаги записи идут одной транзакцией и любой сбой отменяет
	// обновление целиком. Иначе шаги выполняются последовательно, ошибки
	// альбома и пересортировки попадают в UpdateOutcome, а фотография
	// остается записанной.
	atomic bool
}

func NewUpdateService(photos PhotoStore, albums AlbumStore, tx TxStore, assembler *PhotoService, atomic bool) *UpdateService {
	return &UpdateService{
		photos:    photos,
		albums:    albums,
		tx:        tx,
		assembler: assembler,
		atomic:    atomic,
	}
}

// UpdateOutcome — результат обновления. Partial выставляется в
// последовательном режиме, когда запись альбома или пересортировка
// завершились с ошибкой; StepErrs перечисляет эти ошибки.
type UpdateOutcome struct {
	Photo    *model.AssembledPhoto
	Partial  bool
	StepErrs []error
}

func (s *UpdateService) UpdatePhoto(ctx context.Context, id int64, req model.AssembledPhoto) (*UpdateOutcome, error) {
	// Чтение текущего состояния: неизвестный id отменяет все до записи
	old, err := s.assembler.GetPhoto(ctx, id)
	if err != nil {
		return nil, err
	}
	recordExists := old.Album != nil && old.Album.Name != ""

	req.ID = id
	merged := MergePhotoData(*old, req)
	photoRow := photoFromAssembled(merged)

	// Без альбома шаги записи альбома и пересортировки не нужны
	if merged.Album == nil || merged.Album.Name == "" {
		if err := s.photos.UpdatePhoto(ctx, photoRow); err != nil {
			return nil, err
		}
		return s.reassemble(ctx, id, nil)
	}

	m := *merged.Album
	m.PhotoID = id

	if s.atomic {
		if err := s.tx.UpdatePhotoWithMembership(ctx, photoRow, m, recordExists); err != nil {
			return nil, err
		}
		return s.reassemble(ctx, id, nil)
	}

	if err := s.photos.UpdatePhoto(ctx, photoRow); err != nil {
		return nil, err
	}
	var stepErrs []error
	if err := s.albums.UpsertMembership(ctx, m, recordExists); err != nil {
		log.Printf("update photo %d: membership write failed: %v", id, err)
		stepErrs = append(stepErrs, err)
	}
	if err := s.albums.ReorderAlbum(ctx, m.Name); err != nil {
		log.Printf("update photo %d: reorder of %q failed: %v", id, m.Name, err)
		stepErrs = append(stepErrs, err)
	}
	return s.reassemble(ctx, id, stepErrs)
}

// reassemble перечитывает фотографию и отражает то состояние, которое
// предыдущие шаги реально записали.
func (s *UpdateService) reassemble(ctx context.Context, id int64, stepErrs []error) (*UpdateOutcome, error) {
	assembled, err := s.assembler.GetPhoto(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UpdateOutcome{
		Photo:    assembled,
		Partial:  len(stepErrs) > 0,
		StepErrs: stepErrs,
	}, nil
}

func photoFromAssembled(a model.AssembledPhoto) model.Photo {
	return model.Photo{
		ID:          a.ID,
		Date:        a.Date,
		Description: a.Description,
		Hidden:      a.Hidden,
		Stream:      a.OnFrontPage,
		Processing:  a.Processing,
		Sizes:       a.Sizes,
	}
}
