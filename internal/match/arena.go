package match

import "context"

// RoundCounters is the round-scoped shared state. All fields except
// NextTeamID are reset by the referee between rounds.
type RoundCounters struct {
	// PlayersArrived counts field-player arrivals this round, late included.
	PlayersArrived int
	// GoaliesArrived counts goalie arrivals this round, late included.
	GoaliesArrived int
	// FreePlayers counts on-time field players not yet attached to a team.
	FreePlayers int
	// FreeGoalies counts on-time goalies not yet attached to a team.
	FreeGoalies int
	// NextTeamID is the id the next formed team will take. It is never
	// reset, so team ids increase across rounds.
	NextTeamID int
}

// Snapshot is a full copy of the arena state, taken after a mutation while
// the mutating actor still holds the lock.
type Snapshot struct {
	Players  []Status
	Goalies  []Status
	Referee  RefereeStatus
	Counters RoundCounters
}

// Recorder consumes arena snapshots. Record is always invoked under the
// SyncSet mutex, so implementations observe mutations in a total order and
// must not re-enter the arena.
type Recorder interface {
	Record(ctx context.Context, snap Snapshot) error
}

// Arena is the single block of shared mutable state: per-actor statuses and
// the round counters.
//
// No Arena method synchronizes on its own. Every call must be made while
// holding the SyncSet mutex; the method docs restate this where the caller
// sequence is not obvious.
type Arena struct {
	cfg      Config
	players  []Status
	goalies  []Status
	referee  RefereeStatus
	counters RoundCounters
	recorder Recorder
}

// NewArena creates the shared arena for one simulation.
func NewArena(cfg Config, recorder Recorder) *Arena {
	return &Arena{
		cfg:      cfg,
		players:  make([]Status, cfg.FieldPlayers),
		goalies:  make([]Status, cfg.Goalies),
		counters: RoundCounters{NextTeamID: 1},
		recorder: recorder,
	}
}

// record persists the current state. Failure is returned to the mutating
// actor, which treats it as fatal.
func (a *Arena) record(ctx context.Context) error {
	if a.recorder == nil {
		return nil
	}
	return a.recorder.Record(ctx, a.Snapshot())
}

// Snapshot copies the full arena state. Callers must hold the mutex.
func (a *Arena) Snapshot() Snapshot {
	snap := Snapshot{
		Players:  make([]Status, len(a.players)),
		Goalies:  make([]Status, len(a.goalies)),
		Referee:  a.referee,
		Counters: a.counters,
	}
	copy(snap.Players, a.players)
	copy(snap.Goalies, a.goalies)
	return snap
}

// SetPlayerStatus mutates one field player's status and records the state.
// Callers must hold the mutex.
func (a *Arena) SetPlayerStatus(ctx context.Context, id int, status Status) error {
	a.players[id] = status
	return a.record(ctx)
}

// SetGoalieStatus mutates one goalie's status and records the state.
// Callers must hold the mutex.
func (a *Arena) SetGoalieStatus(ctx context.Context, id int, status Status) error {
	a.goalies[id] = status
	return a.record(ctx)
}

// SetRefereeStatus mutates the referee's status and records the state.
// Callers must hold the mutex.
func (a *Arena) SetRefereeStatus(ctx context.Context, status RefereeStatus) error {
	a.referee = status
	return a.record(ctx)
}

// AdmitPlayer counts one field-player arrival and reports whether it is
// within the admission cap. Callers must hold the mutex.
func (a *Arena) AdmitPlayer() bool {
	a.counters.PlayersArrived++
	return a.counters.PlayersArrived <= a.cfg.PlayerAdmissionCap()
}

// AdmitGoalie counts one goalie arrival and reports whether it is within the
// admission cap. Callers must hold the mutex.
func (a *Arena) AdmitGoalie() bool {
	a.counters.GoaliesArrived++
	return a.counters.GoaliesArrived <= a.cfg.GoalieAdmissionCap()
}

// TryLeadAsPlayer tests the player-leader formation condition: enough free
// teammates and a free goalie. On success it atomically consumes the team's
// composition and the caller becomes the formation leader. Callers must hold
// the mutex.
func (a *Arena) TryLeadAsPlayer() bool {
	if a.counters.FreePlayers < a.cfg.PlayersPerTeam-1 || a.counters.FreeGoalies < 1 {
		return false
	}
	a.counters.FreePlayers -= a.cfg.PlayersPerTeam - 1
	a.counters.FreeGoalies--
	return true
}

// TryLeadAsGoalie tests the goalie-leader formation condition: a full set of
// free field players. The goalie itself completes the team, so no free goalie
// is consumed. Callers must hold the mutex.
func (a *Arena) TryLeadAsGoalie() bool {
	if a.counters.FreePlayers < a.cfg.PlayersPerTeam {
		return false
	}
	a.counters.FreePlayers -= a.cfg.PlayersPerTeam
	return true
}

// AddFreePlayer registers an on-time field player available for formation.
// Callers must hold the mutex.
func (a *Arena) AddFreePlayer() {
	a.counters.FreePlayers++
}

// AddFreeGoalie registers an on-time goalie available for formation.
// Callers must hold the mutex.
func (a *Arena) AddFreeGoalie() {
	a.counters.FreeGoalies++
}

// TakeTeamID consumes the next team id: the pre-increment value is assigned
// to the completed team. Callers must hold the mutex.
func (a *Arena) TakeTeamID() int {
	id := a.counters.NextTeamID
	a.counters.NextTeamID++
	return id
}

// TeamID reads the forming team's id without locking.
//
// Followers call this after being woken from the wait-for-team signal, while
// the leader still holds the mutex: the leader keeps exclusive arena
// ownership until every follower has acknowledged registration, so no other
// mutator can interleave with this read.
func (a *Arena) TeamID() int {
	return a.counters.NextTeamID
}

// ResetRound clears the round-scoped counters for the next round and records
// the state. NextTeamID is deliberately untouched. Callers must hold the
// mutex.
func (a *Arena) ResetRound(ctx context.Context) error {
	a.counters.PlayersArrived = 0
	a.counters.GoaliesArrived = 0
	a.counters.FreePlayers = 0
	a.counters.FreeGoalies = 0
	return a.record(ctx)
}
