package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/josephkmh/photoblog-api/internal/model"
	"github.com/josephkmh/photoblog-api/internal/shared"
	"github.com/josephkmh/photoblog-api/internal/storage/memory"
)

func newUpdateFixture(t *testing.T, atomic bool) (*memory.Store, *UpdateService) {
	t.Helper()
	store := memory.NewStore()
	assembler := NewPhotoService(store, store, store)
	return store, NewUpdateService(store, store, store, assembler, atomic)
}

func TestUpdatePhoto_UnknownIDAborts(t *testing.T) {
	ctx := context.Background()
	_, svc := newUpdateFixture(t, false)

	_, err := svc.UpdatePhoto(ctx, 42, model.AssembledPhoto{Description: "x"})
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdatePhoto_FirstAlbumAssignment(t *testing.T) {
	ctx := context.Background()
	store, svc := newUpdateFixture(t, false)

	photo, err := store.CreatePhoto(ctx, false, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}

	outcome, err := svc.UpdatePhoto(ctx, photo.ID, model.AssembledPhoto{
		Album: &model.AlbumMembership{Name: "trip"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Partial {
		t.Errorf("outcome partial: %v", outcome.StepErrs)
	}
	if outcome.Photo.Album == nil || outcome.Photo.Album.Name != "trip" {
		t.Fatalf("album = %+v, want trip", outcome.Photo.Album)
	}
	// единственная фотография остается на позиции 1 и после пересортировки
	if outcome.Photo.Album.Position != 1 {
		t.Errorf("position = %d, want 1", outcome.Photo.Album.Position)
	}
}

func TestUpdatePhoto_ReassignAlbumKeepsOtherFields(t *testing.T) {
	ctx := context.Background()
	store, svc := newUpdateFixture(t, false)

	photo, _ := store.CreatePhoto(ctx, true, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if _, err := svc.UpdatePhoto(ctx, photo.ID, model.AssembledPhoto{
		Description: "old description",
		Album:       &model.AlbumMembership{Name: "A", Cover: true},
	}); err != nil {
		t.Fatal(err)
	}

	outcome, err := svc.UpdatePhoto(ctx, photo.ID, model.AssembledPhoto{
		Album: &model.AlbumMembership{Name: "B"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Photo.Album.Name != "B" {
		t.Errorf("album = %q, want B", outcome.Photo.Album.Name)
	}
	if !outcome.Photo.Album.Cover {
		t.Error("cover flag was lost on album rename")
	}
	if outcome.Photo.Description != "old description" {
		t.Errorf("description = %q, want old value", outcome.Photo.Description)
	}
}

func TestUpdatePhoto_BestEffortReportsPartialOutcome(t *testing.T) {
	ctx := context.Background()
	store, svc := newUpdateFixture(t, false)

	photo, _ := store.CreatePhoto(ctx, false, time.Now())
	store.FailUpsert = errors.New("albums table unavailable")

	outcome, err := svc.UpdatePhoto(ctx, photo.ID, model.AssembledPhoto{
		Description: "written anyway",
		Album:       &model.AlbumMembership{Name: "trip"},
	})
	if err != nil {
		t.Fatalf("best-effort mode surfaced step error as failure: %v", err)
	}
	if !outcome.Partial || len(outcome.StepErrs) == 0 {
		t.Fatalf("outcome = %+v, want partial with step errors", outcome)
	}
	// фотография записана, альбом — нет
	if outcome.Photo.Description != "written anyway" {
		t.Errorf("description = %q, photo write should stand", outcome.Photo.Description)
	}
	if outcome.Photo.Album != nil {
		t.Errorf("album = %+v, membership write should have failed", outcome.Photo.Album)
	}
}

func TestUpdatePhoto_BestEffortKeepsMembershipWhenReorderFails(t *testing.T) {
	ctx := context.Background()
	store, svc := newUpdateFixture(t, false)

	photo, _ := store.CreatePhoto(ctx, false, time.Now())
	store.FailReorder = errors.New("albums table unavailable")

	outcome, err := svc.UpdatePhoto(ctx, photo.ID, model.AssembledPhoto{
		Description: "written anyway",
		Album:       &model.AlbumMembership{Name: "trip"},
	})
	if err != nil {
		t.Fatalf("best-effort mode surfaced step error as failure: %v", err)
	}
	if !outcome.Partial || len(outcome.StepErrs) != 1 {
		t.Fatalf("outcome = %+v, want partial with one step error", outcome)
	}
	// запись в альбом прошла, упала только перенумерация
	if outcome.Photo.Album == nil || outcome.Photo.Album.Name != "trip" {
		t.Fatalf("album = %+v, membership write should stand", outcome.Photo.Album)
	}
	if outcome.Photo.Description != "written anyway" {
		t.Errorf("description = %q, photo write should stand", outcome.Photo.Description)
	}
}

func TestUpdatePhoto_AtomicModeAbortsWhole(t *testing.T) {
	ctx := context.Background()
	store, svc := newUpdateFixture(t, true)

	photo, _ := store.CreatePhoto(ctx, false, time.Now())
	store.FailUpsert = errors.New("albums table unavailable")

	_, err := svc.UpdatePhoto(ctx, photo.ID, model.AssembledPhoto{
		Description: "must not be written",
		Album:       &model.AlbumMembership{Name: "trip"},
	})
	if err == nil {
		t.Fatal("atomic mode swallowed a membership failure")
	}

	store.FailUpsert = nil
	current, _, getErr := store.GetPhotoByID(ctx, photo.ID)
	if getErr != nil {
		t.Fatal(getErr)
	}
	if current.Description != "" {
		t.Errorf("description = %q, atomic failure must leave the row untouched", current.Description)
	}
}

func TestUpdatePhoto_NoAlbumSkipsMembershipSteps(t *testing.T) {
	ctx := context.Background()
	store, svc := newUpdateFixture(t, false)

	photo, _ := store.CreatePhoto(ctx, false, time.Now())
	// сбой альбомных шагов не должен даже наблюдаться
	store.FailUpsert = errors.New("must not be called")
	store.FailReorder = errors.New("must not be called")

	outcome, err := svc.UpdatePhoto(ctx, photo.ID, model.AssembledPhoto{Description: "no album"})
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Partial {
		t.Errorf("outcome partial: %v", outcome.StepErrs)
	}
	if outcome.Photo.Album != nil {
		t.Errorf("album = %+v, want nil", outcome.Photo.Album)
	}
}

func TestUpdatePhoto_FinalizeUploadScenario(t *testing.T) {
	ctx := context.Background()
	store, svc := newUpdateFixture(t, false)

	photo, err := store.CreatePhoto(ctx, false, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if photo.Sizes.Full.URL != "" {
		t.Fatalf("fresh photo has full url %q, want empty", photo.Sizes.Full.URL)
	}
	if !photo.Processing {
		t.Fatal("fresh photo must be marked processing")
	}

	outcome, err := svc.UpdatePhoto(ctx, photo.ID, model.AssembledPhoto{
		Sizes: model.Sizes{
			Full: model.SizeVariant{URL: "https://cdn/full.jpg", Width: 3000, Height: 2000},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Photo.Sizes.Full.URL != "https://cdn/full.jpg" {
		t.Errorf("full url = %q", outcome.Photo.Sizes.Full.URL)
	}
	if outcome.Photo.Sizes.Full.Width != 3000 || outcome.Photo.Sizes.Full.Height != 2000 {
		t.Errorf("full size = %dx%d, want 3000x2000",
			outcome.Photo.Sizes.Full.Width, outcome.Photo.Sizes.Full.Height)
	}
}
