package navstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPushAndCurrent(t *testing.T) {
	store := New()
	assert.Equal(t, "/", store.Current())

	store.Push("/x")
	assert.Equal(t, "/x", store.Current())
}

func TestPushSamePathNotifiesOnce(t *testing.T) {
	store := New()

	notifications := 0
	unsubscribe := store.Subscribe(func(string) { notifications++ })
	defer unsubscribe()

	store.Push("/x")
	store.Push("/x")

	assert.Equal(t, 1, notifications)
	assert.Equal(t, "/x", store.Current())
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	store := New()

	notifications := 0
	unsubscribe := store.Subscribe(func(string) { notifications++ })

	store.Push("/a")
	unsubscribe()
	store.Push("/b")

	assert.Equal(t, 1, notifications)
}

func TestReplaceDoesNotGrowHistory(t *testing.T) {
	store := New()
	store.Push("/a")
	store.Replace("/b")

	assert.Equal(t, "/b", store.Current())
	// Back skips the replaced entry and lands on the root.
	assert.Equal(t, "/", store.Back())
}

func TestBackAndForward(t *testing.T) {
	store := New()
	store.Push("/a")
	store.Push("/b")

	var seen []string
	unsubscribe := store.Subscribe(func(location string) { seen = append(seen, location) })
	defer unsubscribe()

	assert.Equal(t, "/a", store.Back())
	assert.Equal(t, "/", store.Back())
	// At the oldest entry Back stays put and stays silent.
	assert.Equal(t, "/", store.Back())

	assert.Equal(t, "/a", store.Forward())
	assert.Equal(t, "/b", store.Forward())
	assert.Equal(t, "/b", store.Forward())

	assert.Equal(t, []string{"/a", "/", "/a", "/b"}, seen)
}

func TestPushDropsForwardEntries(t *testing.T) {
	store := New()
	store.Push("/a")
	store.Push("/b")
	store.Back()

	store.Push("/c")
	assert.Equal(t, "/c", store.Current())
	// "/b" was discarded by the new push.
	assert.Equal(t, "/c", store.Forward())
	assert.Equal(t, "/a", store.Back())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/x", "/x"},
		{"x", "/x"},
		{"/x/", "/x"},
		{"", "/"},
		{"/", "/"},
		{"/x?tab=2", "/x?tab=2"},
		{"/x#section", "/x"},
		{"https://example.com/y?q=1", "/y?q=1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "Normalize(%q)", tt.in)
	}
}

func TestPushNormalizedEquivalentIsNoOp(t *testing.T) {
	store := New()
	store.Push("/x")

	notifications := 0
	unsubscribe := store.Subscribe(func(string) { notifications++ })
	defer unsubscribe()

	store.Push("/x/")
	store.Push("x")

	assert.Equal(t, 0, notifications)
}

func TestSyncNotifiesOnlyOnChange(t *testing.T) {
	store := New()
	store.Push("/workspaces")

	var got []string
	unsubscribe := store.Subscribe(func(location string) { got = append(got, location) })
	defer unsubscribe()

	store.Sync("/workspaces")
	assert.Empty(t, got)

	store.Sync("/settings")
	assert.Equal(t, []string{"/settings"}, got)
	assert.Equal(t, "/settings", store.Current())

	// Sync replaces the current entry; history does not grow.
	assert.Equal(t, "/", store.Back())
}
