package store

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	RecordID int64
	Name     string
	Tags     []string
}

func (r record) WithID(id int64) record {
	r.RecordID = id
	return r
}

func (r record) Clone() record {
	if r.Tags != nil {
		tags := make([]string, len(r.Tags))
		copy(tags, r.Tags)
		r.Tags = tags
	}
	return r
}

func TestStore_CreateAssignsSequentialIDs(t *testing.T) {
	s := New[record]()

	first := s.Create(record{Name: "a"})
	second := s.Create(record{Name: "b"})

	assert.Equal(t, int64(1), first.RecordID)
	assert.Equal(t, int64(2), second.RecordID)
}

func TestStore_ConcurrentCreateIDsAreDistinct(t *testing.T) {
	s := New[record]()

	const workers = 16
	const perWorker = 200

	ids := make(chan int64, workers*perWorker)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				ids <- s.Create(record{Name: "x"}).RecordID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, workers*perWorker)
	var all []int64
	for id := range ids {
		require.False(t, seen[id], "identifier %d issued twice", id)
		seen[id] = true
		all = append(all, id)
	}

	require.Len(t, all, workers*perWorker)
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	assert.Equal(t, int64(1), all[0])
	assert.Equal(t, int64(workers*perWorker), all[len(all)-1])
}

func TestStore_RoundTrip(t *testing.T) {
	s := New[record]()

	created := s.Create(record{Name: "growth", Tags: []string{"tech"}})

	got, err := s.Get(created.RecordID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestStore_GetReturnsIndependentCopy(t *testing.T) {
	s := New[record]()
	created := s.Create(record{Name: "growth", Tags: []string{"tech"}})

	got, err := s.Get(created.RecordID)
	require.NoError(t, err)
	got.Tags[0] = "mutated"

	again, err := s.Get(created.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "tech", again.Tags[0])
}

func TestStore_GetMissing(t *testing.T) {
	s := New[record]()

	_, err := s.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpdatePathIDWins(t *testing.T) {
	s := New[record]()
	created := s.Create(record{Name: "before"})

	updated, err := s.Update(created.RecordID, record{RecordID: 999, Name: "after"})
	require.NoError(t, err)
	assert.Equal(t, created.RecordID, updated.RecordID)

	got, err := s.Get(created.RecordID)
	require.NoError(t, err)
	assert.Equal(t, "after", got.Name)
}

func TestStore_UpdateMissing(t *testing.T) {
	s := New[record]()

	_, err := s.Update(7, record{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_DeleteIsPermanent(t *testing.T) {
	s := New[record]()
	created := s.Create(record{Name: "gone"})

	require.NoError(t, s.Delete(created.RecordID))

	_, err := s.Get(created.RecordID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(created.RecordID), ErrNotFound)

	// The freed identifier is never reissued.
	next := s.Create(record{Name: "new"})
	assert.Greater(t, next.RecordID, created.RecordID)
}

func TestStore_ListSnapshotUnderConcurrentMutation(t *testing.T) {
	s := New[record]()
	for i := 0; i < 50; i++ {
		s.Create(record{Name: "seed"})
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			created := s.Create(record{Name: "churn"})
			_ = s.Delete(created.RecordID)
		}
	}()

	for i := 0; i < 50; i++ {
		for _, r := range s.List() {
			assert.NotZero(t, r.RecordID)
		}
	}
	<-done

	assert.Equal(t, 50, s.Len())
}
