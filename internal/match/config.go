package match

import (
	"errors"
	"time"
)

// teamsPerMatch is fixed: every round forms exactly two teams.
const teamsPerMatch = 2

// goalieAdmissionCap caps goalie admission per round at one goalie per team.
const goalieAdmissionCap = teamsPerMatch

// ErrInvalidPopulation indicates the actor population cannot fill two teams.
var ErrInvalidPopulation = errors.New("population must cover two full teams")

// ErrInvalidTeamSize indicates the per-team field player count is too small.
var ErrInvalidTeamSize = errors.New("players per team must be at least two")

// ErrInvalidRounds indicates a non-positive round count.
var ErrInvalidRounds = errors.New("rounds must be positive")

// ErrInvalidDelayBounds indicates misordered or negative arrival-delay bounds.
var ErrInvalidDelayBounds = errors.New("arrival delay bounds must be ordered and non-negative")

// ErrInvalidMatchDuration indicates a negative simulated match duration.
var ErrInvalidMatchDuration = errors.New("match duration must be non-negative")

// Config holds the fixed simulation parameters for a population of actors.
type Config struct {
	// FieldPlayers is the number of field-player actors spawned per round.
	FieldPlayers int
	// Goalies is the number of goalie actors spawned per round.
	Goalies int
	// PlayersPerTeam is the number of field players on a team, leader
	// included. Each team additionally has exactly one goalie.
	PlayersPerTeam int
	// Rounds is the number of complete arrival/formation/match cycles.
	Rounds int
	// MinArrivalDelay and MaxArrivalDelay bound the random pause each actor
	// takes before trying to join a team.
	MinArrivalDelay time.Duration
	MaxArrivalDelay time.Duration
	// MatchDuration is how long the referee holds the match open.
	MatchDuration time.Duration
	// Seed drives arrival-delay randomness. Zero selects a random seed.
	Seed int64
}

// DefaultConfig mirrors the classic problem constants: ten field players and
// three goalies racing for two teams of four field players plus a goalie.
func DefaultConfig() Config {
	return Config{
		FieldPlayers:    10,
		Goalies:         3,
		PlayersPerTeam:  4,
		Rounds:          1,
		MinArrivalDelay: 50 * time.Millisecond,
		MaxArrivalDelay: 250 * time.Millisecond,
		MatchDuration:   time.Second,
	}
}

// Validate reports the first configuration error, if any.
//
// The population must at least cover the admission caps: admitted actors that
// cannot be placed on a team would block on the formation signal forever, so
// the caps and the per-round team consumption are required to match.
func (c Config) Validate() error {
	if c.PlayersPerTeam < 2 {
		return ErrInvalidTeamSize
	}
	if c.FieldPlayers < c.PlayerAdmissionCap() || c.Goalies < goalieAdmissionCap {
		return ErrInvalidPopulation
	}
	if c.Rounds <= 0 {
		return ErrInvalidRounds
	}
	if c.MinArrivalDelay < 0 || c.MaxArrivalDelay < c.MinArrivalDelay {
		return ErrInvalidDelayBounds
	}
	if c.MatchDuration < 0 {
		return ErrInvalidMatchDuration
	}
	return nil
}

// TeamSize is the full roster of one team: field players plus the goalie.
func (c Config) TeamSize() int {
	return c.PlayersPerTeam + 1
}

// PlayerAdmissionCap is the number of field players admitted per round before
// later arrivals are marked late: exactly two teams' worth.
func (c Config) PlayerAdmissionCap() int {
	return teamsPerMatch * c.PlayersPerTeam
}

// GoalieAdmissionCap is the number of goalies admitted per round.
func (c Config) GoalieAdmissionCap() int {
	return goalieAdmissionCap
}

// MatchParticipants is the number of actors that pass through the start,
// playing and end barriers each round.
func (c Config) MatchParticipants() int {
	return teamsPerMatch * c.TeamSize()
}
