package match

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Goalie is a goalie actor. Its life cycle mirrors Player's; the two roles
// differ only in which free-count they touch and which wait-for-team signal
// they block on during formation.
type Goalie struct {
	id    int
	arena *Arena
	set   *SyncSet
	cfg   Config
	rng   *rand.Rand
	sleep func(time.Duration)
}

// NewGoalie creates a goalie actor. The id must index into the configured
// population.
func NewGoalie(id int, arena *Arena, set *SyncSet, cfg Config, seed int64) (*Goalie, error) {
	if id < 0 || id >= cfg.Goalies {
		return nil, fmt.Errorf("goalie id %d out of range [0,%d)", id, cfg.Goalies)
	}
	return &Goalie{
		id:    id,
		arena: arena,
		set:   set,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		sleep: time.Sleep,
	}, nil
}

// Run executes the goalie's full life cycle. The returned team id is zero
// when the goalie arrived too late to play.
func (g *Goalie) Run(ctx context.Context) (int, error) {
	if err := g.arrive(ctx); err != nil {
		return 0, err
	}
	team, err := g.constituteTeam(ctx)
	if err != nil || team == 0 {
		return team, err
	}
	if err := g.waitReferee(ctx, team); err != nil {
		return team, err
	}
	if err := g.playUntilEnd(ctx, team); err != nil {
		return team, err
	}
	return team, nil
}

func (g *Goalie) arrive(ctx context.Context) error {
	g.set.Mu.Lock()
	err := g.arena.SetGoalieStatus(ctx, g.id, StatusArriving)
	g.set.Mu.Unlock()
	if err != nil {
		return fmt.Errorf("goalie %d arrive: %w", g.id, err)
	}
	g.sleep(arrivalDelay(g.rng, g.cfg))
	return nil
}

// constituteTeam admits the goalie and resolves its formation role.
//
// A goalie leads when a full set of free field players is available; it
// completes the team itself, so the handshake recruits field players only.
// Otherwise the goalie waits on the goalie-specific wait-for-team signal.
func (g *Goalie) constituteTeam(ctx context.Context) (int, error) {
	s := g.set
	s.Mu.Lock()

	if !g.arena.AdmitGoalie() {
		err := g.arena.SetGoalieStatus(ctx, g.id, StatusLate)
		s.Mu.Unlock()
		if err != nil {
			return 0, fmt.Errorf("goalie %d late: %w", g.id, err)
		}
		return 0, nil
	}

	if g.arena.TryLeadAsGoalie() {
		if err := g.arena.SetGoalieStatus(ctx, g.id, StatusFormingTeam); err != nil {
			s.Mu.Unlock()
			return 0, fmt.Errorf("goalie %d forming: %w", g.id, err)
		}
		for i := 0; i < g.cfg.PlayersPerTeam; i++ {
			s.PlayersWaitTeam.Release()
			s.PlayerRegistered.Wait()
		}
		team := g.arena.TakeTeamID()
		s.Mu.Unlock()

		s.RefereeWaitTeams.Release()
		return team, nil
	}

	g.arena.AddFreeGoalie()
	if err := g.arena.SetGoalieStatus(ctx, g.id, StatusWaitingTeams); err != nil {
		s.Mu.Unlock()
		return 0, fmt.Errorf("goalie %d waiting teams: %w", g.id, err)
	}
	s.Mu.Unlock()

	s.GoaliesWaitTeam.Wait()
	team := g.arena.TeamID()
	s.PlayerRegistered.Release()
	return team, nil
}

func (g *Goalie) waitReferee(ctx context.Context, team int) error {
	s := g.set
	s.Mu.Lock()
	err := g.arena.SetGoalieStatus(ctx, g.id, waitingStart(team))
	s.Mu.Unlock()
	if err != nil {
		return fmt.Errorf("goalie %d wait referee: %w", g.id, err)
	}
	s.PlayersWaitReferee.Wait()
	return nil
}

func (g *Goalie) playUntilEnd(ctx context.Context, team int) error {
	s := g.set
	s.Mu.Lock()
	err := g.arena.SetGoalieStatus(ctx, g.id, playing(team))
	if err == nil {
		s.Playing.Release()
	}
	s.Mu.Unlock()
	if err != nil {
		return fmt.Errorf("goalie %d playing: %w", g.id, err)
	}
	s.PlayersWaitEnd.Wait()
	return nil
}
