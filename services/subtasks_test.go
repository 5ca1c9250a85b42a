package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSubtasksJSONArray(t *testing.T) {
	subtasks, err := ParseSubtasks(`["Buy milk","Buy eggs"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Buy milk", "Buy eggs"}, subtasks)
}

func TestParseSubtasksWrappedObject(t *testing.T) {
	subtasks, err := ParseSubtasks(`{"subtasks":["A","B","C"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, subtasks)
}

func TestParseSubtasksBulletFallback(t *testing.T) {
	raw := "- Step one\n* Step two\nNotes: ignore this\n- Step three"
	subtasks, err := ParseSubtasks(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Step one", "Step two", "Step three"}, subtasks)
}

func TestParseSubtasksBulletFallbackCapsAtFive(t *testing.T) {
	raw := "- one\n- two\n- three\n- four\n- five\n- six\n- seven"
	subtasks, err := ParseSubtasks(raw)
	require.NoError(t, err)
	assert.Len(t, subtasks, 5)
	assert.Equal(t, "five", subtasks[4])
}

func TestParseSubtasksMixedArrayFallsThrough(t *testing.T) {
	// A JSON array holding non-strings is not a subtask list; the bullet
	// scan takes over.
	raw := "[1, 2, 3]\n- real subtask"
	subtasks, err := ParseSubtasks(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"real subtask"}, subtasks)
}

func TestParseSubtasksWhitespaceAroundBullets(t *testing.T) {
	raw := "   - padded step   \n\t* tabbed step\n"
	subtasks, err := ParseSubtasks(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"padded step", "tabbed step"}, subtasks)
}

func TestParseSubtasksNothingUsable(t *testing.T) {
	for _, raw := range []string{
		"",
		"no bullets here\njust prose",
		`{"something":"else"}`,
		`[]`,
		`{"subtasks":[]}`,
		"-\n*",
	} {
		_, err := ParseSubtasks(raw)
		assert.ErrorIs(t, err, ErrNoSubtasks, "input %q", raw)
	}
}
