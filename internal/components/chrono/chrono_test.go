package chrono

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShanghaiOffset(t *testing.T) {
	loc := Shanghai()

	cases := []time.Time{
		time.Date(2024, time.January, 15, 12, 0, 0, 0, loc),
		time.Date(2024, time.July, 15, 12, 0, 0, 0, loc),
	}
	for _, test := range cases {
		_, offset := test.Zone()
		require.Equal(t, 8*60*60, offset)
	}
}

func TestStandardImplLocation(t *testing.T) {
	loc := Shanghai()
	clock := NewStandardImpl(loc)
	require.Equal(t, loc, clock.Now().Location())
	require.Equal(t, loc, clock.Location())
}
