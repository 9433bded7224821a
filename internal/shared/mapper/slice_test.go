package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id    uint
	value int
}

func TestMapSlice(t *testing.T) {
	assert.Nil(t, MapSlice[int, string](nil, strconv.Itoa))
	assert.Equal(t, []string{}, MapSlice([]int{}, strconv.Itoa))
	assert.Equal(t, []string{"1", "2"}, MapSlice([]int{1, 2}, strconv.Itoa))
}

func TestMapSlicePtrWithID(t *testing.T) {
	double := func(r *row) (*int, error) {
		if r.value < 0 {
			return nil, errors.New("negative")
		}
		if r.value == 0 {
			return nil, nil
		}
		v := r.value * 2
		return &v, nil
	}
	getID := func(r *row) uint { return r.id }

	got, err := MapSlicePtrWithID([]*row{{1, 1}, nil, {2, 0}, {3, 3}}, double, getID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, *got[0])
	assert.Equal(t, 6, *got[1])

	_, err = MapSlicePtrWithID([]*row{{7, -1}}, double, getID)
	assert.EqualError(t, err, "failed to map item ID 7: negative")

	got, err = MapSlicePtrWithID[row, int, uint](nil, double, getID)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
