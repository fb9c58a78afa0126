package tasks

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	t.Parallel()

	seed := Seed()
	require.Len(t, seed, 3)
	assert.Equal(t, []string{"Deep Work: Core Concepts", "Skill Lab: Practical Exercise", "Review & Retrospection"}, seed.Titles())
	for _, task := range seed {
		assert.Equal(t, Pending, task.Status)
		assert.Equal(t, Today, task.Day)
	}
	require.NoError(t, seed.Valid())
}

func TestAdd(t *testing.T) {
	t.Parallel()

	seed := Seed()
	list, task, err := seed.Add("  Mock interview ", " 45m ")
	require.NoError(t, err)

	assert.Len(t, seed, 3, "receiver must not change")
	require.Len(t, list, 4)
	assert.Equal(t, task, list[3])
	assert.Equal(t, "Mock interview", task.Title)
	assert.Equal(t, "45m", task.Duration)
	assert.Equal(t, Pending, task.Status)
	assert.Equal(t, Today, task.Day)
	assert.Len(t, task.ID, 36)

	_, _, err = seed.Add("   ", "")
	assert.Error(t, err)
}

func TestReplaceKeepsStatus(t *testing.T) {
	t.Parallel()

	list, err := Seed().SetStatus("2", Partial)
	require.NoError(t, err)

	list, err = list.Replace("2", "Build a portfolio page", "2h")
	require.NoError(t, err)
	assert.Equal(t, Task{ID: "2", Title: "Build a portfolio page", Duration: "2h", Status: Partial, Day: Today}, list[1])

	_, err = list.Replace("2", " ", "")
	assert.Error(t, err)
}

func TestRemove(t *testing.T) {
	t.Parallel()

	list, err := Seed().Remove("2")
	require.NoError(t, err)
	assert.Equal(t, []string{"Deep Work: Core Concepts", "Review & Retrospection"}, list.Titles())

	_, err = list.Remove("2")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMoveToTomorrow(t *testing.T) {
	t.Parallel()

	list, err := Seed().MoveToTomorrow("1")
	require.NoError(t, err)

	assert.Equal(t, Tomorrow, list[0].Day)
	assert.Len(t, list.Today(), 2)
	assert.Len(t, list, 3)
}

func TestSetStatus(t *testing.T) {
	t.Parallel()

	list, err := Seed().SetStatus("3", Done)
	require.NoError(t, err)
	assert.Equal(t, Done, list[2].Status)

	_, err = list.SetStatus("3", Status("skipped"))
	assert.Error(t, err)
}

func TestPendingToday(t *testing.T) {
	t.Parallel()

	list, err := Seed().SetStatus("1", Done)
	require.NoError(t, err)
	list, err = list.MoveToTomorrow("2")
	require.NoError(t, err)

	assert.Equal(t, []string{"Review & Retrospection"}, list.PendingToday().Titles())
}

func TestFindByPrefix(t *testing.T) {
	t.Parallel()

	list := List{
		{ID: "1", Title: "seed", Status: Pending, Day: Today},
		{ID: "1abc-def", Title: "generated", Status: Pending, Day: Today},
		{ID: "2abc-def", Title: "other", Status: Pending, Day: Today},
		{ID: "2abd-def", Title: "other again", Status: Pending, Day: Today},
	}

	i, err := list.Find("1")
	require.NoError(t, err)
	assert.Equal(t, 0, i)

	i, err = list.Find("1ab")
	require.NoError(t, err)
	assert.Equal(t, 1, i)

	_, err = list.Find("2ab")
	assert.ErrorContains(t, err, "ambiguous")

	_, err = list.Find("")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestParseStatus(t *testing.T) {
	t.Parallel()

	st, err := ParseStatus(" DONE ")
	require.NoError(t, err)
	assert.Equal(t, Done, st)

	_, err = ParseStatus("later")
	assert.Error(t, err)
}

func TestValidRejectsBadDay(t *testing.T) {
	t.Parallel()

	list := List{{ID: "x", Title: "t", Status: Pending, Day: Day("yesterday")}}
	assert.Error(t, list.Valid())
}
