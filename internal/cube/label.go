package cube

import (
	"fmt"
)

// Label is one of the six facelet colors of a standard cube.
//
// The zero value is Orange. Labels are declared in the fixed order used to
// break ties during classification.
type Label int

const (
	Orange Label = iota
	Red
	Yellow
	White
	Blue
	Green
)

// Labels lists every label in declaration order.
var Labels = [...]Label{Orange, Red, Yellow, White, Blue, Green}

var labelNames = [...]string{
	Orange: "orange",
	Red:    "red",
	Yellow: "yellow",
	White:  "white",
	Blue:   "blue",
	Green:  "green",
}

// String returns the lowercase color name.
func (l Label) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// Valid reports whether l is one of the six defined labels.
func (l Label) Valid() bool {
	return l >= Orange && l <= Green
}

// MarshalText encodes the label as its color name.
func (l Label) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("invalid label %d", int(l))
	}
	return []byte(labelNames[l]), nil
}

// UnmarshalText decodes a color name produced by MarshalText.
func (l *Label) UnmarshalText(text []byte) error {
	parsed, err := ParseLabel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ParseLabel returns the label for a lowercase color name.
func ParseLabel(name string) (Label, error) {
	for _, l := range Labels {
		if labelNames[l] == name {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown color label %q", name)
}

// FaceGrid holds the nine facelet labels of one face, indexed [row][column].
type FaceGrid [3][3]Label

// Rows returns the grid as nested slices of color names.
func (f FaceGrid) Rows() [][]string {
	rows := make([][]string, len(f))
	for i, row := range f {
		rows[i] = make([]string, len(row))
		for j, l := range row {
			rows[i][j] = l.String()
		}
	}
	return rows
}
