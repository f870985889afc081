package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGameConfig_FieldEquivalence(t *testing.T) {
	got := NewGameConfig(0.4, 2, 50, 100, 3)
	want := GameConfig{
		InfectionProbability:    0.4,
		RecoveryTime:            2,
		VaccinationCost:         50,
		InfectionPenalty:        100,
		MaxVaccinationsPerRound: 3,
	}
	assert.Equal(t, want, got)
}

func TestDefaultGameConfig_IsValid(t *testing.T) {
	cfg := DefaultGameConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, GameConfig{0.3, 3, 50, 100, 2}, cfg)
}

func TestGameConfig_Validate_Boundaries(t *testing.T) {
	tests := []struct {
		name    string
		cfg     GameConfig
		wantErr bool
	}{
		{"probability zero", NewGameConfig(0, 1, 0, 0, 1), false},
		{"probability one", NewGameConfig(1, 1, 0, 0, 1), false},
		{"probability negative", NewGameConfig(-0.1, 1, 0, 0, 1), true},
		{"probability above one", NewGameConfig(1.01, 1, 0, 0, 1), true},
		{"probability NaN", NewGameConfig(math.NaN(), 1, 0, 0, 1), true},
		{"zero recovery time", NewGameConfig(0.3, 0, 0, 0, 1), true},
		{"negative recovery time", NewGameConfig(0.3, -2, 0, 0, 1), true},
		{"negative vaccination cost", NewGameConfig(0.3, 1, -1, 0, 1), true},
		{"negative infection penalty", NewGameConfig(0.3, 1, 0, -1, 1), true},
		{"zero max vaccinations", NewGameConfig(0.3, 1, 0, 0, 0), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGameConfig_Validate_DoesNotClamp(t *testing.T) {
	// GIVEN an out-of-range probability
	cfg := NewGameConfig(1.5, 3, 50, 100, 2)

	// WHEN validated
	err := cfg.Validate()

	// THEN the error names the field and the value is untouched
	assert.ErrorContains(t, err, "infection_probability")
	assert.Equal(t, 1.5, cfg.InfectionProbability)
}
