package usecase

import (
	"testing"

	"theater-booking/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeatMapIsDeterministic(t *testing.T) {
	first := DefaultSeatMap()
	second := DefaultSeatMap()

	assert.Equal(t, first, second, "every call must produce an identical layout")
}

func TestDefaultSeatMapGeometry(t *testing.T) {
	m := DefaultSeatMap()

	require.Len(t, m, 13)
	require.NoError(t, m.Validate())
	assert.Equal(t, 158, m.SeatCount())

	// Premium rows A-B: 10 seats, no aisle gaps
	for _, row := range m[:2] {
		require.Len(t, row, 10)
		for _, seat := range row {
			require.NotNil(t, seat)
			assert.Equal(t, entity.SeatTypePremium, seat.Type)
			assert.Equal(t, 250, seat.Price)
		}
	}

	// Regular rows C-J: 4 | aisle | 4 | aisle | 4
	for _, row := range m[2:10] {
		require.Len(t, row, 14)
		assert.Nil(t, row[4])
		assert.Nil(t, row[9])
		for i, seat := range row {
			if i == 4 || i == 9 {
				continue
			}
			require.NotNil(t, seat)
			assert.Equal(t, entity.SeatTypeRegular, seat.Type)
			assert.Equal(t, 180, seat.Price)
		}
	}

	// Economy rows K-M: 5 | aisle | 4 | aisle | 5
	for _, row := range m[10:] {
		require.Len(t, row, 16)
		assert.Nil(t, row[5])
		assert.Nil(t, row[10])
	}

	// Seat ids are row label + running number, aisle gaps excluded
	assert.Equal(t, "A1", m[0][0].ID)
	assert.Equal(t, "B10", m[1][9].ID)
	assert.Equal(t, "C5", m[2][5].ID, "numbering continues across the aisle")
	assert.Equal(t, "M14", m[12][15].ID)

	// Fresh layouts are fully available with no booking state
	for _, seat := range m.Flatten() {
		assert.True(t, seat.Available)
		assert.Nil(t, seat.BookedBy)
		assert.Nil(t, seat.Gender)
	}
}
