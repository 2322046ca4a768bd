package jobstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelection(t *testing.T) {
	selection := NewSelection()

	selection.Toggle(3, true)
	selection.Toggle(1, true)
	selection.Toggle(3, true)
	assert.Equal(t, []int{1, 3}, selection.IDs())
	assert.True(t, selection.Has(3))

	selection.Toggle(2, false)
	selection.Toggle(3, false)
	selection.Toggle(3, false)
	assert.Equal(t, []int{1}, selection.IDs())
	assert.False(t, selection.Has(3))

	selection.Clear()
	assert.Equal(t, 0, selection.Len())
	assert.Equal(t, []int{}, selection.IDs())
}

func TestStore_SelectionSurvivesFiltering(t *testing.T) {
	store := newTestStore(t)
	store.ToggleSelection(2, true)

	visible, err := store.Filter(Criteria{Location: "A"})
	assert.NoError(t, err)
	assert.NotContains(t, jobIDs(visible), 2)
	assert.Equal(t, []int{2}, store.Selected())

	store.ClearSelection()
	assert.Empty(t, store.Selected())
}
