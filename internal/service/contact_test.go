package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"SafeCall/internal/model"
	pkgerrors "SafeCall/pkg/errors"
)

type fixedIDs struct {
	ids  []string
	next int
}

func (f *fixedIDs) NextID() (string, error) {
	if f.next >= len(f.ids) {
		return "", errors.New("no more ids")
	}
	id := f.ids[f.next]
	f.next++
	return id, nil
}

func TestContactStoreSeeded(t *testing.T) {
	s := NewContactStore()

	list := s.List()
	require.Len(t, list, 2)
	require.Equal(t, "1", list[0].ID)
	require.Equal(t, "John Doe", list[0].Name)
	require.Equal(t, "Family", list[0].Relationship)
	require.Equal(t, "555-0123", list[0].Phone)
	require.Equal(t, "2", list[1].ID)
	require.Equal(t, "Jane Smith", list[1].Name)
	require.Equal(t, "555-0456", list[1].Phone)
}

func TestContactStoreAddAppends(t *testing.T) {
	s := NewContactStore()
	ctx := context.Background()

	c, err := s.Add(ctx, model.ContactDraft{Name: "Jane Smith", Relationship: "Friend", Phone: "555-0456"})
	require.NoError(t, err)
	require.NotEmpty(t, c.ID)
	require.NotEqual(t, "1", c.ID)
	require.NotEqual(t, "2", c.ID)

	list := s.List()
	require.Len(t, list, 3)
	require.Equal(t, c, list[2])
}

func TestContactStoreAddUniqueIDs(t *testing.T) {
	s := NewContactStore()
	ctx := context.Background()

	seen := map[string]bool{"1": true, "2": true}
	for i := 0; i < 50; i++ {
		c, err := s.Add(ctx, model.ContactDraft{Name: fmt.Sprintf("c%d", i), Phone: "555-0000"})
		require.NoError(t, err)
		require.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
	require.Equal(t, 52, s.Len())
}

func TestContactStoreAddMissingFields(t *testing.T) {
	s := NewContactStore()
	before := s.List()

	cases := []struct {
		name   string
		draft  model.ContactDraft
		fields []string
	}{
		{"missing name", model.ContactDraft{Phone: "555-0123"}, []string{"name"}},
		{"missing phone", model.ContactDraft{Name: "Bob"}, []string{"phone"}},
		{"blank both", model.ContactDraft{Name: "  ", Relationship: "Friend", Phone: " "}, []string{"name", "phone"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Add(context.Background(), tc.draft)
			require.Error(t, err)
			require.ErrorIs(t, err, pkgerrors.ContactDraftInvalid)

			fe, ok := pkgerrors.AsFieldErrors(err)
			require.True(t, ok)
			require.Equal(t, tc.fields, fe.Names())
			require.Equal(t, before, s.List())
		})
	}
}

func TestContactStoreRetriesOnCollision(t *testing.T) {
	gen := &fixedIDs{ids: []string{"1", "2", "77"}}
	s := NewContactStore(WithIDGenerator(gen))

	c, err := s.Add(context.Background(), model.ContactDraft{Name: "Bob", Phone: "555"})
	require.NoError(t, err)
	require.Equal(t, "77", c.ID)
}

func TestContactStoreIDExhausted(t *testing.T) {
	gen := &fixedIDs{ids: []string{"1", "1", "1", "1", "1", "1"}}
	s := NewContactStore(WithIDGenerator(gen))

	_, err := s.Add(context.Background(), model.ContactDraft{Name: "Bob", Phone: "555"})
	require.ErrorIs(t, err, pkgerrors.ContactIDExhausted)
	require.Equal(t, 2, s.Len())
}

func TestContactStoreRemove(t *testing.T) {
	s := NewContactStore()
	ctx := context.Background()

	require.False(t, s.Remove(ctx, "missing"))
	require.Equal(t, 2, s.Len())

	require.True(t, s.Remove(ctx, "1"))
	_, ok := s.Get("1")
	require.False(t, ok)
	require.Equal(t, 1, s.Len())

	// 重复删除与删除一次效果相同
	require.False(t, s.Remove(ctx, "1"))
	require.Equal(t, 1, s.Len())
	require.Equal(t, "2", s.List()[0].ID)
}

func TestContactStoreWithoutSeed(t *testing.T) {
	s := NewContactStore(WithoutSeed())
	require.Empty(t, s.List())
}

func TestContactStoreListIsSnapshot(t *testing.T) {
	s := NewContactStore()
	list := s.List()
	list[0].Name = "changed"

	c, ok := s.Get("1")
	require.True(t, ok)
	require.Equal(t, "John Doe", c.Name)
}

func TestMillisIDsMonotonic(t *testing.T) {
	g := &millisIDs{now: func() time.Time { return time.UnixMilli(1000) }}

	a, _ := g.NextID()
	b, _ := g.NextID()
	require.Equal(t, "1000", a)
	require.Equal(t, "1001", b)
}
