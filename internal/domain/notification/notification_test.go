package notification

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	n, err := New(uuid.New(), uuid.New(), "", " Asset created ", "")
	require.NoError(t, err)
	assert.Equal(t, LevelInfo, n.Level)
	assert.Equal(t, "Asset created", n.Title)
	assert.False(t, n.IsRead())

	_, err = New(uuid.New(), uuid.Nil, LevelInfo, "x", "")
	require.Error(t, err)

	_, err = New(uuid.New(), uuid.New(), LevelInfo, "  ", "")
	require.Error(t, err)
}

func TestNotification_MarkRead(t *testing.T) {
	n, _ := New(uuid.New(), uuid.New(), LevelWarning, "Budget approved", "")
	first := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)

	n.MarkRead(first)
	n.MarkRead(first.Add(time.Hour))

	assert.True(t, n.IsRead())
	assert.Equal(t, first, *n.ReadAt)
	assert.Equal(t, 2, n.Version)
}
