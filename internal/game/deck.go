package game

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

const (
	DefaultWidth  = 6
	DefaultHeight = 6

	// MaxDimension bounds each side of a grid.
	MaxDimension = 64
)

// Source is the randomness used for shuffling and planner picks.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSource returns a deterministic PCG source for the given seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

// NewSeed draws a non-zero seed from crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	seed := int64(binary.LittleEndian.Uint64(b[:]) >> 1)
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}

// ValidateDimensions checks that a width×height grid can hold an equal number
// of each card type.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return &ConfigError{Width: width, Height: height, Reason: "dimensions must be positive"}
	}
	if width > MaxDimension || height > MaxDimension {
		return &ConfigError{Width: width, Height: height, Reason: fmt.Sprintf("dimensions must be at most %d", MaxDimension)}
	}
	if (width*height)%numCardTypes != 0 {
		return &ConfigError{Width: width, Height: height, Reason: fmt.Sprintf("cell count %d is not divisible by %d", width*height, numCardTypes)}
	}
	return nil
}

// Generate deals a shuffled grid for one side: width*height/3 cards of each
// type, permuted with Fisher–Yates. The result is indexed [y][x].
func Generate(rng Source, side Side, width, height int) ([][]CardType, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, fmt.Errorf("generate %s grid: %w", side, err)
	}

	n := width * height
	per := n / numCardTypes
	types := make([]CardType, n)
	for i := range types {
		types[i] = CardType(i / per)
	}

	for i := n - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		types[i], types[j] = types[j], types[i]
	}

	grid := make([][]CardType, height)
	for y := 0; y < height; y++ {
		grid[y] = types[y*width : (y+1)*width : (y+1)*width]
	}
	return grid, nil
}

// Flatten returns a grid in row-major order.
func Flatten(grid [][]CardType) []CardType {
	var out []CardType
	for _, row := range grid {
		out = append(out, row...)
	}
	return out
}
