package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewParams_FieldEquivalence(t *testing.T) {
	got := NewParams(2.26, 16, 230000, 30000, 100)
	want := Params{
		Temperature:   2.26,
		Size:          16,
		Sweeps:        230000,
		Equilibration: 30000,
		Stride:        100,
	}
	assert.Equal(t, want, got)
}

func TestParams_ExpectedSamples(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		want int
	}{
		{"reference schedule", NewParams(1, 1, 230000, 30000, 100), 2000},
		{"floor division", NewParams(1, 1, 50, 10, 7), 5},
		{"cutoff equals sweeps", NewParams(1, 1, 100, 100, 10), 0},
		{"cutoff beyond sweeps", NewParams(1, 1, 100, 200, 10), 0},
		{"zero stride", NewParams(1, 1, 100, 10, 0), 0},
		{"stride longer than window", NewParams(1, 1, 100, 10, 91), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.ExpectedSamples())
		})
	}
}

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       Params
		wantErr bool
	}{
		{"valid", NewParams(2.0, 8, 1000, 100, 10), false},
		{"L=1 is valid", NewParams(2.0, 1, 1000, 100, 10), false},
		{"zero temperature", NewParams(0, 8, 1000, 100, 10), true},
		{"negative temperature", NewParams(-1, 8, 1000, 100, 10), true},
		{"NaN temperature", NewParams(math.NaN(), 8, 1000, 100, 10), true},
		{"infinite temperature", NewParams(math.Inf(1), 8, 1000, 100, 10), true},
		{"zero size", NewParams(2.0, 0, 1000, 100, 10), true},
		{"zero sweeps", NewParams(2.0, 8, 0, 0, 10), true},
		{"negative equilibration", NewParams(2.0, 8, 1000, -1, 10), true},
		{"equilibration equals sweeps", NewParams(2.0, 8, 1000, 1000, 10), true},
		{"zero stride", NewParams(2.0, 8, 1000, 100, 0), true},
		{"no samples", NewParams(2.0, 8, 1000, 990, 20), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidParams)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
