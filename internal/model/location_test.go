package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoordinateDisplay(t *testing.T) {
	cases := []struct {
		coord Coordinate
		want  string
	}{
		{Coordinate{Latitude: 40.7128, Longitude: -74.006}, "40.7128, -74.0060"},
		{Coordinate{Latitude: 0.03125, Longitude: 10.15625}, "0.0313, 10.1563"},
		{Coordinate{Latitude: -0.03125, Longitude: 0}, "-0.0313, 0.0000"},
		{Coordinate{Latitude: 1.00004, Longitude: 179.99999}, "1.0000, 180.0000"},
		{Coordinate{Latitude: -0.00001, Longitude: 12.3}, "-0.0000, 12.3000"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, tc.coord.Display())
	}
}
