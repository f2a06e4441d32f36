package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	assert.Contains(t, s.Path(), DBName)
}

func TestSaveGet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	id := uuid.New()

	_, err := s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, Entry{DocumentID: id, Name: "book.txt", Index: 10, Total: 100, WPM: 300}))
	e, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "book.txt", e.Name)
	assert.Equal(t, 10, e.Index)
	assert.Equal(t, 100, e.Total)
	assert.Equal(t, 300, e.WPM)
	assert.False(t, e.UpdatedAt.IsZero())

	// upsert
	require.NoError(t, s.Save(ctx, Entry{DocumentID: id, Name: "book.txt", Index: 42, Total: 100, WPM: 350}))
	e, err = s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 42, e.Index)
	assert.Equal(t, 350, e.WPM)
}

func TestList_NewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for i, id := range ids {
		require.NoError(t, s.Save(ctx, Entry{
			DocumentID: id,
			Name:       id.String()[:4],
			Total:      10,
			WPM:        250,
			UpdatedAt:  base.Add(time.Duration(i) * time.Minute),
		}))
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, ids[2], all[0].DocumentID)
	assert.Equal(t, ids[0], all[2].DocumentID)

	limited, err := s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestFind(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	a := uuid.MustParse("aaaaaaaa-0000-4000-8000-000000000001")
	b := uuid.MustParse("aaaabbbb-0000-4000-8000-000000000002")
	require.NoError(t, s.Save(ctx, Entry{DocumentID: a, Name: "a", Total: 1}))
	require.NoError(t, s.Save(ctx, Entry{DocumentID: b, Name: "b", Total: 1}))

	e, err := s.Find(ctx, "AAAAB")
	require.NoError(t, err)
	assert.Equal(t, b, e.DocumentID)

	_, err = s.Find(ctx, "aaaa")
	assert.Error(t, err, "ambiguous prefix")
	assert.False(t, errors.Is(err, ErrNotFound))

	_, err = s.Find(ctx, "ffff")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Find(ctx, " ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteAndClear(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	id := uuid.New()

	require.NoError(t, s.Save(ctx, Entry{DocumentID: id, Name: "x", Total: 5}))
	_, err := s.BeginSession(ctx, id)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
	sessions, err := s.Sessions(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	assert.ErrorIs(t, s.Delete(ctx, id), ErrNotFound)

	require.NoError(t, s.Save(ctx, Entry{DocumentID: uuid.New(), Name: "y", Total: 5}))
	require.NoError(t, s.Clear(ctx))
	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSessions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	clock := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	doc := uuid.New()
	id, err := s.BeginSession(ctx, doc)
	require.NoError(t, err)

	clock = clock.Add(3 * time.Minute)
	require.NoError(t, s.EndSession(ctx, id, 750))

	sessions, err := s.Sessions(ctx, doc)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	got := sessions[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, 750, got.WordsRead)
	assert.Equal(t, 3*time.Minute, got.EndedAt.Sub(got.StartedAt))

	assert.ErrorIs(t, s.EndSession(ctx, uuid.New(), 1), ErrNotFound)
}

func TestResumeIndex(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	doc := uuid.New()

	idx, ok := s.ResumeIndex(ctx, doc, 100)
	assert.False(t, ok)
	assert.Equal(t, 0, idx)

	require.NoError(t, s.Save(ctx, Entry{DocumentID: doc, Name: "d", Index: 37, Total: 100}))
	idx, ok = s.ResumeIndex(ctx, doc, 100)
	assert.True(t, ok)
	assert.Equal(t, 37, idx)

	// the document shrank below the saved index
	idx, ok = s.ResumeIndex(ctx, doc, 20)
	assert.False(t, ok)
	assert.Equal(t, 0, idx)

	// finished documents start over
	require.NoError(t, s.Save(ctx, Entry{DocumentID: doc, Name: "d", Index: 100, Total: 100}))
	_, ok = s.ResumeIndex(ctx, doc, 100)
	assert.False(t, ok)
}

func TestEntryDone(t *testing.T) {
	assert.False(t, Entry{}.Done())
	assert.False(t, Entry{Index: 4, Total: 5}.Done())
	assert.True(t, Entry{Index: 5, Total: 5}.Done())
}
