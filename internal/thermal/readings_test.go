package thermal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluwatch/fluwatch-go/internal/errors"
)

func TestNormalizedDefaultsBodyRange(t *testing.T) {
	t.Parallel()

	rs := ReadingSet{BodyMean: Float(38.5)}
	norm := rs.Normalized()

	require.NotNil(t, norm.BodyMin)
	require.NotNil(t, norm.BodyMax)
	assert.InDelta(t, 38.0, *norm.BodyMin, 0.001)
	assert.InDelta(t, 39.0, *norm.BodyMax, 0.001)

	// original is untouched
	assert.Nil(t, rs.BodyMin)
	assert.Nil(t, rs.BodyMax)
}

func TestNormalizedKeepsExplicitRange(t *testing.T) {
	t.Parallel()

	rs := ReadingSet{BodyMean: Float(38.5), BodyMin: Float(35.0), BodyMax: Float(42.0)}
	norm := rs.Normalized()

	assert.InDelta(t, 35.0, *norm.BodyMin, 0.001)
	assert.InDelta(t, 42.0, *norm.BodyMax, 0.001)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rs      ReadingSet
		wantErr bool
	}{
		{"empty set is valid", ReadingSet{}, false},
		{"consistent body range", ReadingSet{BodyMean: Float(38.5), BodyMin: Float(38.0), BodyMax: Float(39.0)}, false},
		{"min above max", ReadingSet{BodyMin: Float(40.0), BodyMax: Float(38.0)}, true},
		{"min above mean", ReadingSet{BodyMean: Float(38.0), BodyMin: Float(39.0), BodyMax: Float(40.0)}, true},
		{"mean above max", ReadingSet{BodyMean: Float(41.0), BodyMin: Float(38.0), BodyMax: Float(40.0)}, true},
		{"confidence below zero", ReadingSet{Confidence: Float(-0.1)}, true},
		{"confidence above one", ReadingSet{Confidence: Float(1.1)}, true},
		{"confidence at bounds", ReadingSet{Confidence: Float(1.0)}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.rs.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsValidation(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestBodySpread(t *testing.T) {
	t.Parallel()

	_, ok := ReadingSet{BodyMin: Float(35.0)}.BodySpread()
	assert.False(t, ok)

	spread, ok := ReadingSet{BodyMin: Float(35.0), BodyMax: Float(42.0)}.BodySpread()
	require.True(t, ok)
	assert.InDelta(t, 7.0, spread, 0.001)
}
