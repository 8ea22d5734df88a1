// Package seats manages the seat layout and the available-seat counter of a
// single flight.
package seats

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Domenick1991/flightbooking/internal/domain"
)

// MaxSeatsPerRow is bounded by the column letters A..Z.
const MaxSeatsPerRow = 26

func ValidLayout(rows, perRow int) bool {
	return rows > 0 && perRow > 0 && perRow <= MaxSeatsPerRow
}

// Map returns the seat labels of a rows x perRow cabin in row-major order:
// 1A, 1B, ..., 2A, ... It returns nil for an invalid layout.
func Map(rows, perRow int) []string {
	if !ValidLayout(rows, perRow) {
		return nil
	}
	labels := make([]string, 0, rows*perRow)
	for r := 1; r <= rows; r++ {
		for c := 0; c < perRow; c++ {
			labels = append(labels, Label(r, c))
		}
	}
	return labels
}

func Label(row, col int) string {
	return strconv.Itoa(row) + string(rune('A'+col))
}

// ParseLabel splits a label such as "12C" into its row and zero-based column.
func ParseLabel(label string) (row, col int, err error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) < 2 {
		return 0, 0, fmt.Errorf("invalid seat label %q", label)
	}
	letter := label[len(label)-1]
	if letter < 'A' || letter > 'Z' {
		return 0, 0, fmt.Errorf("invalid seat column in %q", label)
	}
	row, err = strconv.Atoi(label[:len(label)-1])
	if err != nil || row <= 0 {
		return 0, 0, fmt.Errorf("invalid seat row in %q", label)
	}
	return row, int(letter - 'A'), nil
}

// TypeOf classifies a seat by its column: outermost columns are windows,
// the two columns around the centre aisle are aisle seats.
func TypeOf(label string, perRow int) domain.SeatType {
	_, col, err := ParseLabel(label)
	if err != nil {
		return domain.SeatTypeMiddle
	}
	switch {
	case col == 0 || col == perRow-1:
		return domain.SeatTypeWindow
	case perRow >= 4 && (col == perRow/2-1 || col == perRow/2):
		return domain.SeatTypeAisle
	default:
		return domain.SeatTypeMiddle
	}
}
