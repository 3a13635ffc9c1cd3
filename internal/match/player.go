package match

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Player is a field-player actor. Its life cycle is arrive, constitute a
// team, wait for the referee, then play until the match ends. A late player
// short-circuits after constitution.
type Player struct {
	id    int
	arena *Arena
	set   *SyncSet
	cfg   Config
	rng   *rand.Rand
	sleep func(time.Duration)
}

// NewPlayer creates a field-player actor. The id must index into the
// configured population.
func NewPlayer(id int, arena *Arena, set *SyncSet, cfg Config, seed int64) (*Player, error) {
	if id < 0 || id >= cfg.FieldPlayers {
		return nil, fmt.Errorf("player id %d out of range [0,%d)", id, cfg.FieldPlayers)
	}
	return &Player{
		id:    id,
		arena: arena,
		set:   set,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		sleep: time.Sleep,
	}, nil
}

// Run executes the player's full life cycle. The returned team id is zero
// when the player arrived too late to play.
func (p *Player) Run(ctx context.Context) (int, error) {
	if err := p.arrive(ctx); err != nil {
		return 0, err
	}
	team, err := p.constituteTeam(ctx)
	if err != nil || team == 0 {
		return team, err
	}
	if err := p.waitReferee(ctx, team); err != nil {
		return team, err
	}
	if err := p.playUntilEnd(ctx, team); err != nil {
		return team, err
	}
	return team, nil
}

// arrive marks the player as arriving and pauses for a bounded random delay.
func (p *Player) arrive(ctx context.Context) error {
	p.set.Mu.Lock()
	err := p.arena.SetPlayerStatus(ctx, p.id, StatusArriving)
	p.set.Mu.Unlock()
	if err != nil {
		return fmt.Errorf("player %d arrive: %w", p.id, err)
	}
	p.sleep(arrivalDelay(p.rng, p.cfg))
	return nil
}

// constituteTeam admits the player and resolves its formation role.
//
// The leader path keeps the mutex for the entire recruit/acknowledge
// handshake: one wait-for-team release plus one registered wait per
// recruited field player, then one pair for the goalie. Holding the lock
// throughout serializes formations system-wide, which is what makes the
// followers' unlocked team-id read safe.
func (p *Player) constituteTeam(ctx context.Context) (int, error) {
	s := p.set
	s.Mu.Lock()

	if !p.arena.AdmitPlayer() {
		err := p.arena.SetPlayerStatus(ctx, p.id, StatusLate)
		s.Mu.Unlock()
		if err != nil {
			return 0, fmt.Errorf("player %d late: %w", p.id, err)
		}
		return 0, nil
	}

	if p.arena.TryLeadAsPlayer() {
		if err := p.arena.SetPlayerStatus(ctx, p.id, StatusFormingTeam); err != nil {
			s.Mu.Unlock()
			return 0, fmt.Errorf("player %d forming: %w", p.id, err)
		}
		for i := 0; i < p.cfg.PlayersPerTeam-1; i++ {
			s.PlayersWaitTeam.Release()
			s.PlayerRegistered.Wait()
		}
		s.GoaliesWaitTeam.Release()
		s.PlayerRegistered.Wait()
		team := p.arena.TakeTeamID()
		s.Mu.Unlock()

		s.RefereeWaitTeams.Release()
		return team, nil
	}

	p.arena.AddFreePlayer()
	if err := p.arena.SetPlayerStatus(ctx, p.id, StatusWaitingTeams); err != nil {
		s.Mu.Unlock()
		return 0, fmt.Errorf("player %d waiting teams: %w", p.id, err)
	}
	s.Mu.Unlock()

	s.PlayersWaitTeam.Wait()
	team := p.arena.TeamID()
	s.PlayerRegistered.Release()
	return team, nil
}

// waitReferee parks the player on the match-start barrier.
func (p *Player) waitReferee(ctx context.Context, team int) error {
	s := p.set
	s.Mu.Lock()
	err := p.arena.SetPlayerStatus(ctx, p.id, waitingStart(team))
	s.Mu.Unlock()
	if err != nil {
		return fmt.Errorf("player %d wait referee: %w", p.id, err)
	}
	s.PlayersWaitReferee.Wait()
	return nil
}

// playUntilEnd reports the player as playing and parks it on the match-end
// barrier.
func (p *Player) playUntilEnd(ctx context.Context, team int) error {
	s := p.set
	s.Mu.Lock()
	err := p.arena.SetPlayerStatus(ctx, p.id, playing(team))
	if err == nil {
		s.Playing.Release()
	}
	s.Mu.Unlock()
	if err != nil {
		return fmt.Errorf("player %d playing: %w", p.id, err)
	}
	s.PlayersWaitEnd.Wait()
	return nil
}

// arrivalDelay draws a delay within the configured bounds.
func arrivalDelay(rng *rand.Rand, cfg Config) time.Duration {
	window := cfg.MaxArrivalDelay - cfg.MinArrivalDelay
	if window <= 0 {
		return cfg.MinArrivalDelay
	}
	return cfg.MinArrivalDelay + time.Duration(rng.Int63n(int64(window)))
}
