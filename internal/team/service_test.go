package team

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/expertgati/movers-web/internal/media"
	"github.com/expertgati/movers-web/internal/platform/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return newTestServiceIn(t, t.TempDir())
}

func newTestServiceIn(t *testing.T, mediaRoot string) *Service {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	svc := NewService(db, media.NewStore(mediaRoot, "/media"), nil)
	require.NoError(t, svc.Migrate())
	return svc
}

func squarePNG(t *testing.T, side int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, side, side))))
	return buf.Bytes()
}

func TestListOrdersByPosition(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Name: "Second", Position: 2})
	require.NoError(t, err)
	_, err = svc.Create(ctx, Input{Name: "First", Position: 1})
	require.NoError(t, err)

	members, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, "First", members[0].Name)

	_, err = svc.Create(ctx, Input{Name: " "})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetPhoto(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	m, err := svc.Create(ctx, Input{Name: "Asha", Role: "Supervisor"})
	require.NoError(t, err)

	_, err = svc.SetPhoto(ctx, m.ID, squarePNG(t, 500))
	require.ErrorIs(t, err, media.ErrTooSmall)

	updated, err := svc.SetPhoto(ctx, m.ID, squarePNG(t, 600))
	require.NoError(t, err)
	require.Contains(t, updated.PhotoRef, "/media/team/")

	_, err = svc.SetPhoto(ctx, 999, squarePNG(t, 600))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSetPhotoRemovesFileWhenUpdateFails(t *testing.T) {
	root := t.TempDir()
	svc := newTestServiceIn(t, root)
	ctx := context.Background()

	m, err := svc.Create(ctx, Input{Name: "Ravi"})
	require.NoError(t, err)

	err = svc.db.Callback().Update().Before("gorm:update").Register("test:fail_update", func(tx *gorm.DB) {
		_ = tx.AddError(errors.New("disk full"))
	})
	require.NoError(t, err)

	_, err = svc.SetPhoto(ctx, m.ID, squarePNG(t, 600))
	require.Error(t, err)

	files, err := os.ReadDir(filepath.Join(root, "team"))
	require.NoError(t, err)
	require.Empty(t, files)
}
