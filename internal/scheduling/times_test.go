package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:00", 480, false},
		{"12:30", 750, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"8am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "08:00", FormatClock(480))
	assert.Equal(t, "13:05", FormatClock(785))
	assert.Equal(t, "00:00", FormatClock(0))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, overlaps(540, 570, 555, 600))
	assert.False(t, overlaps(540, 570, 570, 600), "touching intervals do not overlap")
	assert.True(t, overlaps(540, 600, 555, 570), "containment is overlap")
}
