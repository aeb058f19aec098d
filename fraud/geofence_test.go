package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/citypulse/citypoints-api/schema"
)

func TestBonamoussadiBoundContains(t *testing.T) {
	assert.True(t, BonamoussadiBound.Contains(schema.Location{Latitude: 4.086, Longitude: 9.74}))
}

func TestBonamoussadiBoundExcludesYaounde(t *testing.T) {
	assert.False(t, BonamoussadiBound.Contains(schema.Location{Latitude: 3.848, Longitude: 11.5021}))
}

func TestCameroonBoundContainsBoth(t *testing.T) {
	assert.True(t, CameroonBound.Contains(schema.Location{Latitude: 4.086, Longitude: 9.74}))
	assert.True(t, CameroonBound.Contains(schema.Location{Latitude: 3.848, Longitude: 11.5021}))
}

func TestCameroonBoundExcludesLagos(t *testing.T) {
	assert.False(t, CameroonBound.Contains(schema.Location{Latitude: 6.5244, Longitude: 3.3792}))
}
