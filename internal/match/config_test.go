package match

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"defaults", func(*Config) {}, nil},
		{"team too small", func(c *Config) { c.PlayersPerTeam = 1 }, ErrInvalidTeamSize},
		{"not enough players", func(c *Config) { c.FieldPlayers = 7 }, ErrInvalidPopulation},
		{"not enough goalies", func(c *Config) { c.Goalies = 1 }, ErrInvalidPopulation},
		{"zero rounds", func(c *Config) { c.Rounds = 0 }, ErrInvalidRounds},
		{"negative min delay", func(c *Config) { c.MinArrivalDelay = -time.Millisecond }, ErrInvalidDelayBounds},
		{"misordered delays", func(c *Config) { c.MaxArrivalDelay = c.MinArrivalDelay - 1 }, ErrInvalidDelayBounds},
		{"negative match duration", func(c *Config) { c.MatchDuration = -time.Second }, ErrInvalidMatchDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if got := cfg.Validate(); !errors.Is(got, tt.want) {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigDerivedValues(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.TeamSize(); got != 5 {
		t.Errorf("TeamSize() = %d, want 5", got)
	}
	if got := cfg.PlayerAdmissionCap(); got != 8 {
		t.Errorf("PlayerAdmissionCap() = %d, want 8", got)
	}
	if got := cfg.GoalieAdmissionCap(); got != 2 {
		t.Errorf("GoalieAdmissionCap() = %d, want 2", got)
	}
	if got := cfg.MatchParticipants(); got != 10 {
		t.Errorf("MatchParticipants() = %d, want 10", got)
	}
}
