package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeFavoriteRepo ให้ test สั่งล้ม write ได้ตามใจ
type fakeFavoriteRepo struct {
	ids     []uint
	fail    bool
	inserts int
	deletes int
}

func (f *fakeFavoriteRepo) ListItemIDs(userID uint) ([]uint, error) {
	return f.ids, nil
}

func (f *fakeFavoriteRepo) Insert(userID, menuItemID uint) error {
	if f.fail {
		return errors.New("insert failed")
	}
	f.inserts++
	return nil
}

func (f *fakeFavoriteRepo) Delete(userID, menuItemID uint) error {
	if f.fail {
		return errors.New("delete failed")
	}
	f.deletes++
	return nil
}

func TestFavoriteToggle_AddAndRemove(t *testing.T) {
	repo := &fakeFavoriteRepo{}
	svc := NewFavoriteService(repo)

	on, err := svc.Toggle(1, 42)
	require.NoError(t, err)
	require.True(t, on)
	require.Equal(t, 1, repo.inserts)

	fav, err := svc.IsFavorite(1, 42)
	require.NoError(t, err)
	require.True(t, fav)

	off, err := svc.Toggle(1, 42)
	require.NoError(t, err)
	require.False(t, off)
	require.Equal(t, 1, repo.deletes)

	fav, err = svc.IsFavorite(1, 42)
	require.NoError(t, err)
	require.False(t, fav)
}

func TestFavoriteToggle_RollbackOnInsertFailure(t *testing.T) {
	repo := &fakeFavoriteRepo{fail: true}
	svc := NewFavoriteService(repo)

	state, err := svc.Toggle(1, 42)
	require.Error(t, err)
	require.False(t, state)

	// cache ต้องกลับไปเท่ากับ DB: ไม่ favorite
	fav, err := svc.IsFavorite(1, 42)
	require.NoError(t, err)
	require.False(t, fav)
}

func TestFavoriteToggle_RollbackOnDeleteFailure(t *testing.T) {
	repo := &fakeFavoriteRepo{ids: []uint{42}, fail: true}
	svc := NewFavoriteService(repo)

	state, err := svc.Toggle(1, 42)
	require.Error(t, err)
	require.True(t, state)

	// ยังเป็น favorite อยู่เหมือนเดิม
	fav, err := svc.IsFavorite(1, 42)
	require.NoError(t, err)
	require.True(t, fav)
}

func TestFavoriteReset_RefetchesAfterLogout(t *testing.T) {
	repo := &fakeFavoriteRepo{ids: []uint{1, 2}}
	svc := NewFavoriteService(repo)

	ids, err := svc.IDs(1)
	require.NoError(t, err)
	require.Len(t, ids, 2)

	svc.Reset(1)
	repo.ids = []uint{3}

	ids, err = svc.IDs(1)
	require.NoError(t, err)
	require.Equal(t, []uint{3}, ids)
}
