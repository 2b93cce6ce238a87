package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoord(t *testing.T) {
	tests := []struct {
		input string
		want  Coord
	}{
		{"A1", Coord{Row: 'A', Col: 1}},
		{"B7", Coord{Row: 'B', Col: 7}},
		{"J10", Coord{Row: 'J', Col: 10}},
		{"K1", Coord{Row: 'K', Col: 1}}, // parses; bounds are checked at use
	}
	for _, tt := range tests {
		got, err := ParseCoord(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, got, tt.input)
	}
}

func TestParseCoordRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "A", "7", "7A", "AA", "a1", "B-2", "C1x"} {
		_, err := ParseCoord(input)
		assert.ErrorIs(t, err, ErrInvalidCoordinate, input)
	}
}

func TestCoordString(t *testing.T) {
	assert.Equal(t, "A1", Coord{Row: 'A', Col: 1}.String())
	assert.Equal(t, "J10", Coord{Row: 'J', Col: 10}.String())
}

func TestCoordInBounds(t *testing.T) {
	assert.True(t, Coord{Row: 'A', Col: 1}.InBounds())
	assert.True(t, Coord{Row: 'J', Col: 10}.InBounds())
	assert.True(t, Coord{Row: 'E', Col: 5}.InBounds())

	assert.False(t, Coord{Row: 'K', Col: 1}.InBounds())
	assert.False(t, Coord{Row: 'J', Col: 11}.InBounds())
	assert.False(t, Coord{Row: 'A', Col: 0}.InBounds())
	assert.False(t, Coord{Row: '@', Col: 5}.InBounds())
}

func TestCoordStep(t *testing.T) {
	start := Coord{Row: 'E', Col: 5}

	assert.Equal(t, Coord{Row: 'D', Col: 5}, start.Step(North))
	assert.Equal(t, Coord{Row: 'E', Col: 6}, start.Step(East))
	assert.Equal(t, Coord{Row: 'F', Col: 5}, start.Step(South))
	assert.Equal(t, Coord{Row: 'E', Col: 4}, start.Step(West))
}

func TestCoordOffset(t *testing.T) {
	start := Coord{Row: 'C', Col: 3}

	assert.Equal(t, Coord{Row: 'E', Col: 1}, start.Offset(2, -2))
	assert.Equal(t, start, start.Offset(0, 0))
}

func TestCoordEquality(t *testing.T) {
	a := Coord{Row: 'B', Col: 2}
	b := Coord{Row: 'B', Col: 2}
	assert.True(t, a == b)
	assert.NotEqual(t, a, Coord{Row: 'B', Col: 3})
	assert.NotEqual(t, a, Coord{Row: 'C', Col: 2})
}

func TestCoordJSONTextForm(t *testing.T) {
	data, err := json.Marshal(Coord{Row: 'B', Col: 7})
	require.NoError(t, err)
	assert.Equal(t, `"B7"`, string(data))

	var c Coord
	require.NoError(t, json.Unmarshal([]byte(`"J10"`), &c))
	assert.Equal(t, Coord{Row: 'J', Col: 10}, c)

	err = json.Unmarshal([]byte(`"10J"`), &c)
	assert.ErrorIs(t, err, ErrInvalidCoordinate)
}
