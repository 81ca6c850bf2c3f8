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

func newPhotoFixture(t *testing.T) (*memory.Store, *PhotoService) {
	t.Helper()
	store := memory.NewStore()
	return store, NewPhotoService(store, store, store)
}

// addAlbumPhoto создает фотографию и кладет ее в альбом на заданную позицию.
func addAlbumPhoto(t *testing.T, store *memory.Store, album string, position int, cover bool) int64 {
	t.Helper()
	ctx := context.Background()
	photo, err := store.CreatePhoto(ctx, false, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	err = store.UpsertMembership(ctx, model.AlbumMembership{
		PhotoID:  photo.ID,
		Name:     album,
		Position: position,
		Cover:    cover,
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	if position != 1 {
		// вставка всегда идет на позицию 1, позицию задаем обновлением
		err = store.UpsertMembership(ctx, model.AlbumMembership{
			PhotoID:  photo.ID,
			Name:     album,
			Position: position,
			Cover:    cover,
		}, true)
		if err != nil {
			t.Fatal(err)
		}
	}
	return photo.ID
}

func TestGetPhoto_TaglessPhotoGetsEmptyList(t *testing.T) {
	ctx := context.Background()
	store, svc := newPhotoFixture(t)

	photo, _ := store.CreatePhoto(ctx, false, time.Now())
	assembled, err := svc.GetPhoto(ctx, photo.ID)
	if err != nil {
		t.Fatal(err)
	}
	if assembled.Tags == nil || len(assembled.Tags) != 0 {
		t.Errorf("tags = %#v, want empty list", assembled.Tags)
	}
}

func TestGetPhoto_NoMembershipGivesNilAlbum(t *testing.T) {
	ctx := context.Background()
	store, svc := newPhotoFixture(t)

	photo, _ := store.CreatePhoto(ctx, false, time.Now())
	assembled, err := svc.GetPhoto(ctx, photo.ID)
	if err != nil {
		t.Fatal(err)
	}
	if assembled.Album != nil {
		t.Errorf("album = %+v, want nil", assembled.Album)
	}
}

func TestGetPhoto_UnknownID(t *testing.T) {
	_, svc := newPhotoFixture(t)
	_, err := svc.GetPhoto(context.Background(), 404)
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetAlbum_EmptyNameIsInputError(t *testing.T) {
	_, svc := newPhotoFixture(t)
	_, err := svc.GetAlbum(context.Background(), "")
	if !errors.Is(err, shared.ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestGetAlbum_UnknownNameIsNotFound(t *testing.T) {
	_, svc := newPhotoFixture(t)
	_, err := svc.GetAlbum(context.Background(), "nowhere")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetAlbum_SizeAndOrder(t *testing.T) {
	ctx := context.Background()
	store, svc := newPhotoFixture(t)

	addAlbumPhoto(t, store, "trip", 2, false)
	addAlbumPhoto(t, store, "trip", 1, true)
	addAlbumPhoto(t, store, "trip", 3, false)

	album, err := svc.GetAlbum(ctx, "trip")
	if err != nil {
		t.Fatal(err)
	}
	if album.Size != 3 || len(album.Photos) != 3 {
		t.Fatalf("size = %d, photos = %d, want 3/3", album.Size, len(album.Photos))
	}
	for i, p := range album.Photos {
		if p.Position != i+1 {
			t.Errorf("photos[%d].position = %d, want %d", i, p.Position, i+1)
		}
	}
}

func TestCountByAlbum_UnknownAlbumIsZeroNotError(t *testing.T) {
	store, _ := newPhotoFixture(t)
	count, err := store.CountByAlbum(context.Background(), "empty")
	if err != nil {
		t.Fatalf("count on empty album errored: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestGetStream_EmptyIsNotFound(t *testing.T) {
	_, svc := newPhotoFixture(t)
	_, err := svc.GetStream(context.Background())
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetTag_AssemblesEveryTaggedPhoto(t *testing.T) {
	ctx := context.Background()
	store, svc := newPhotoFixture(t)

	first := addAlbumPhoto(t, store, "trip", 1, true)
	second := addAlbumPhoto(t, store, "trip", 2, false)
	store.SetTags(first, "sea")
	store.SetTags(second, "sea", "sunset")

	photos, err := svc.GetTag(ctx, "sea")
	if err != nil {
		t.Fatal(err)
	}
	if len(photos) != 2 {
		t.Fatalf("photos = %d, want 2", len(photos))
	}
	if photos[0].ID != first || photos[1].ID != second {
		t.Errorf("order = %d,%d, want %d,%d", photos[0].ID, photos[1].ID, first, second)
	}
}

func TestGetTag_UnknownTagIsNotFound(t *testing.T) {
	_, svc := newPhotoFixture(t)
	_, err := svc.GetTag(context.Background(), "nope")
	if !errors.Is(err, shared.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReorderAlbum_DensePositions(t *testing.T) {
	ctx := context.Background()
	store, _ := newPhotoFixture(t)

	// дырявые позиции 3, 7, 9
	a := addAlbumPhoto(t, store, "trip", 3, false)
	b := addAlbumPhoto(t, store, "trip", 7, false)
	c := addAlbumPhoto(t, store, "trip", 9, false)

	if err := store.ReorderAlbum(ctx, "trip"); err != nil {
		t.Fatal(err)
	}

	photos, err := store.ListByAlbum(ctx, "trip")
	if err != nil {
		t.Fatal(err)
	}
	want := []int64{a, b, c}
	for i, p := range photos {
		if p.Position != i+1 {
			t.Errorf("photos[%d].position = %d, want %d", i, p.Position, i+1)
		}
		if p.ID != want[i] {
			t.Errorf("photos[%d].id = %d, want %d (reorder must be stable)", i, p.ID, want[i])
		}
	}
}

func TestSetCover_ExactlyOneCover(t *testing.T) {
	ctx := context.Background()
	store, _ := newPhotoFixture(t)

	addAlbumPhoto(t, store, "trip", 1, true)
	target := addAlbumPhoto(t, store, "trip", 2, false)

	if err := store.SetCover(ctx, "trip", target); err != nil {
		t.Fatal(err)
	}

	photos, _ := store.ListByAlbum(ctx, "trip")
	covers := 0
	for _, p := range photos {
		if p.IsAlbumCover {
			covers++
			if p.ID != target {
				t.Errorf("cover on photo %d, want %d", p.ID, target)
			}
		}
	}
	if covers != 1 {
		t.Errorf("covers = %d, want exactly 1", covers)
	}
}

func TestSetCover_DefaultsToPositionOne(t *testing.T) {
	ctx := context.Background()
	store, _ := newPhotoFixture(t)

	first := addAlbumPhoto(t, store, "trip", 1, false)
	addAlbumPhoto(t, store, "trip", 2, true)

	if err := store.SetCover(ctx, "trip", 0); err != nil {
		t.Fatal(err)
	}
	photos, _ := store.ListByAlbum(ctx, "trip")
	for _, p := range photos {
		if p.IsAlbumCover != (p.ID == first) {
			t.Errorf("photo %d cover = %v", p.ID, p.IsAlbumCover)
		}
	}
}
