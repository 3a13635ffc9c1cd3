package match

import (
	"context"
	"fmt"
	"time"
)

// RefereePhase is a round-scoped state of the referee's controller.
type RefereePhase int

const (
	PhaseAwaitingTeams RefereePhase = iota
	PhaseStartBarrier
	PhasePlayBarrier
	PhaseEndBarrier
	PhaseReset
	PhaseDone
)

func (p RefereePhase) String() string {
	switch p {
	case PhaseAwaitingTeams:
		return "AwaitingTeams"
	case PhaseStartBarrier:
		return "StartBarrier"
	case PhasePlayBarrier:
		return "PlayBarrier"
	case PhaseEndBarrier:
		return "EndBarrier"
	case PhaseReset:
		return "Reset"
	case PhaseDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Referee is the single actor that advances rounds. Each round it collects
// both team-formation notifications, opens the start barrier, waits for every
// participant to report playing, holds the match open for the configured
// duration, opens the end barrier, and resets the round counters.
type Referee struct {
	arena *Arena
	set   *SyncSet
	cfg   Config
	sleep func(time.Duration)
}

// NewReferee creates the referee actor.
func NewReferee(arena *Arena, set *SyncSet, cfg Config) *Referee {
	return &Referee{
		arena: arena,
		set:   set,
		cfg:   cfg,
		sleep: time.Sleep,
	}
}

// Arrive marks the referee present. It runs once, before the first round.
func (r *Referee) Arrive(ctx context.Context) error {
	r.set.Mu.Lock()
	err := r.arena.SetRefereeStatus(ctx, RefereeArriving)
	r.set.Mu.Unlock()
	if err != nil {
		return fmt.Errorf("referee arrive: %w", err)
	}
	return nil
}

// RunRound drives one complete round through the controller phases.
func (r *Referee) RunRound(ctx context.Context) error {
	phase := PhaseAwaitingTeams
	for phase != PhaseDone {
		next, err := r.step(ctx, phase)
		if err != nil {
			return fmt.Errorf("referee %s: %w", phase, err)
		}
		phase = next
	}
	return nil
}

// step executes one controller phase and returns the next.
func (r *Referee) step(ctx context.Context, phase RefereePhase) (RefereePhase, error) {
	s := r.set
	switch phase {
	case PhaseAwaitingTeams:
		s.Mu.Lock()
		err := r.arena.SetRefereeStatus(ctx, RefereeWaitingTeams)
		s.Mu.Unlock()
		if err != nil {
			return phase, err
		}
		s.RefereeWaitTeams.WaitN(teamsPerMatch)
		return PhaseStartBarrier, nil

	case PhaseStartBarrier:
		s.Mu.Lock()
		err := r.arena.SetRefereeStatus(ctx, RefereeStartingMatch)
		s.Mu.Unlock()
		if err != nil {
			return phase, err
		}
		s.PlayersWaitReferee.ReleaseN(r.cfg.MatchParticipants())
		return PhasePlayBarrier, nil

	case PhasePlayBarrier:
		s.Playing.WaitN(r.cfg.MatchParticipants())
		s.Mu.Lock()
		err := r.arena.SetRefereeStatus(ctx, RefereeRefereeing)
		s.Mu.Unlock()
		if err != nil {
			return phase, err
		}
		r.sleep(r.cfg.MatchDuration)
		return PhaseEndBarrier, nil

	case PhaseEndBarrier:
		s.Mu.Lock()
		err := r.arena.SetRefereeStatus(ctx, RefereeEndingMatch)
		s.Mu.Unlock()
		if err != nil {
			return phase, err
		}
		s.PlayersWaitEnd.ReleaseN(r.cfg.MatchParticipants())
		return PhaseReset, nil

	case PhaseReset:
		s.Mu.Lock()
		err := r.arena.ResetRound(ctx)
		s.Mu.Unlock()
		if err != nil {
			return phase, err
		}
		return PhaseDone, nil

	default:
		return phase, fmt.Errorf("invalid phase %d", int(phase))
	}
}
