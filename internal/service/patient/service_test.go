package patient

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pedassist/clinic-api/internal/model"
)

func TestAge(t *testing.T) {
	svc := NewService(nil, time.UTC)

	tests := []struct {
		name  string
		birth time.Time
		at    time.Time
		want  model.Age
	}{
		{
			name:  "newborn",
			birth: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			at:    time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC),
			want:  model.Age{Years: 0, Months: 0},
		},
		{
			name:  "six months",
			birth: time.Date(2024, time.December, 10, 0, 0, 0, 0, time.UTC),
			at:    time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
			want:  model.Age{Years: 0, Months: 6},
		},
		{
			name:  "day before first birthday",
			birth: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
			at:    time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC),
			want:  model.Age{Years: 0, Months: 11},
		},
		{
			name:  "first birthday",
			birth: time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
			at:    time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC),
			want:  model.Age{Years: 1, Months: 0},
		},
		{
			name:  "toddler",
			birth: time.Date(2022, time.March, 5, 0, 0, 0, 0, time.UTC),
			at:    time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC),
			want:  model.Age{Years: 3, Months: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Age(&model.Patient{BirthDate: tt.birth}, tt.at)
			assert.Equal(t, tt.want, got)
		})
	}
}
