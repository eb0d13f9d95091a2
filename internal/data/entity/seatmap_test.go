package entity

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMap() SeatMap {
	booker := uuid.New()
	gender := GenderFemale
	return SeatMap{
		{
			{ID: "A1", Row: "A", Number: 1, Type: SeatTypePremium, Price: 250, Available: true},
			nil,
			{ID: "A2", Row: "A", Number: 2, Type: SeatTypePremium, Price: 250, Available: false, BookedBy: &booker, Gender: &gender},
		},
		{
			{ID: "B1", Row: "B", Number: 1, Type: SeatTypeRegular, Price: 180, Available: true},
		},
	}
}

func TestSeatMapFlattenSkipsAisleGaps(t *testing.T) {
	m := sampleMap()

	seats := m.Flatten()

	assert.Len(t, seats, 3)
	assert.Contains(t, seats, "A1")
	assert.Contains(t, seats, "A2")
	assert.Contains(t, seats, "B1")
	assert.Equal(t, 3, m.SeatCount())
}

func TestSeatMapCloneIsDeep(t *testing.T) {
	m := sampleMap()
	clone := m.Clone()

	booker := uuid.New()
	gender := GenderMale
	clone[0][0].Available = false
	clone[0][0].BookedBy = &booker
	clone[0][0].Gender = &gender

	assert.True(t, m[0][0].Available, "mutating the clone must not touch the original")
	assert.Nil(t, m[0][0].BookedBy)
	assert.Nil(t, clone[0][1], "aisle gaps survive cloning")
}

func TestSeatMapValidate(t *testing.T) {
	m := sampleMap()
	require.NoError(t, m.Validate())

	t.Run("duplicate ids", func(t *testing.T) {
		dup := sampleMap()
		dup[1][0].ID = "A1"
		assert.ErrorContains(t, dup.Validate(), "duplicate seat id A1")
	})

	t.Run("availability disagrees with booker", func(t *testing.T) {
		bad := sampleMap()
		bad[0][0].Available = false // no booker set
		assert.ErrorContains(t, bad.Validate(), "availability disagrees")
	})

	t.Run("gender without booker", func(t *testing.T) {
		bad := sampleMap()
		gender := GenderOther
		bad[1][0].Gender = &gender
		assert.ErrorContains(t, bad.Validate(), "gender")
	})
}

func TestSeatMapJSONPreservesAislePositions(t *testing.T) {
	m := sampleMap()

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded SeatMap
	require.NoError(t, json.Unmarshal(data, &decoded))

	require.Len(t, decoded, 2)
	require.Len(t, decoded[0], 3)
	assert.Equal(t, "A1", decoded[0][0].ID)
	assert.Nil(t, decoded[0][1], "aisle gap must stay at its position")
	assert.Equal(t, "A2", decoded[0][2].ID)
	assert.False(t, decoded[0][2].Available)
	assert.Equal(t, m[0][2].BookedBy, decoded[0][2].BookedBy)
	assert.Equal(t, GenderFemale, *decoded[0][2].Gender)
}
