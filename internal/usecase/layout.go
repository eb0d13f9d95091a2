package usecase

import (
	"fmt"

	"theater-booking/internal/data/entity"
)

// DefaultSeatMap builds the stock theater layout:
//
//	rows A-B   premium  10 seats
//	rows C-J   regular  4 | aisle | 4 | aisle | 4
//	rows K-M   economy  5 | aisle | 4 | aisle | 5
//
// It is pure and deterministic: every call returns an identical, fully
// available map. Used to seed new shows and to backfill shows created before
// seat maps existed.
func DefaultSeatMap() entity.SeatMap {
	seatMap := make(entity.SeatMap, 0, 13)
	row := 0

	// Premium rows
	for i := 0; i < 2; i++ {
		seatMap = append(seatMap, buildRow(rowLabel(row), entity.SeatTypePremium, []int{10}))
		row++
	}

	// Regular rows, three sections split by two aisles
	for i := 0; i < 8; i++ {
		seatMap = append(seatMap, buildRow(rowLabel(row), entity.SeatTypeRegular, []int{4, 4, 4}))
		row++
	}

	// Economy rows
	for i := 0; i < 3; i++ {
		seatMap = append(seatMap, buildRow(rowLabel(row), entity.SeatTypeEconomy, []int{5, 4, 5}))
		row++
	}

	return seatMap
}

// buildRow lays out one row as sections of seats separated by aisle gaps.
// Seat numbers run left to right across sections, gaps excluded.
func buildRow(label string, seatType entity.SeatType, sections []int) []*entity.Seat {
	var seats []*entity.Seat
	number := 1

	for i, size := range sections {
		if i > 0 {
			seats = append(seats, nil) // aisle gap
		}
		for j := 0; j < size; j++ {
			seats = append(seats, &entity.Seat{
				ID:        fmt.Sprintf("%s%d", label, number),
				Row:       label,
				Number:    number,
				Type:      seatType,
				Price:     entity.SeatPrice(seatType),
				Available: true,
			})
			number++
		}
	}

	return seats
}

func rowLabel(row int) string {
	return string(rune('A' + row))
}
