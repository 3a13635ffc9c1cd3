package match

import (
	"context"
	"testing"
)

// fastConfig removes every simulated delay so protocol tests run at full
// speed while exercising the exact same handshake and barriers.
func fastConfig(rounds int) Config {
	cfg := DefaultConfig()
	cfg.Rounds = rounds
	cfg.MinArrivalDelay = 0
	cfg.MaxArrivalDelay = 0
	cfg.MatchDuration = 0
	cfg.Seed = 1
	return cfg
}

func TestSimulationRejectsInvalidConfig(t *testing.T) {
	cfg := fastConfig(1)
	cfg.FieldPlayers = 3
	if _, err := NewSimulation(cfg, nil); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestSimulationSingleRound(t *testing.T) {
	cfg := fastConfig(1)
	sim, err := NewSimulation(cfg, nil)
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}

	results, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 round result, got %d", len(results))
	}

	assertRound(t, cfg, results[0], 1)
}

func TestSimulationMultipleRounds(t *testing.T) {
	const rounds = 3
	cfg := fastConfig(rounds)
	sim, err := NewSimulation(cfg, nil)
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}

	results, err := sim.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(results) != rounds {
		t.Fatalf("expected %d round results, got %d", rounds, len(results))
	}

	for i, result := range results {
		assertRound(t, cfg, result, i+1)
	}
}

// assertRound checks the exactly-once assignment, team composition and
// admission-cap properties for one completed round.
func assertRound(t *testing.T, cfg Config, result RoundResult, round int) {
	t.Helper()

	wantTeams := map[int]bool{2*round - 1: true, 2 * round: true}

	playerCounts := map[int]int{}
	latePlayers := 0
	for id, team := range result.PlayerTeams {
		if team == 0 {
			latePlayers++
			continue
		}
		if !wantTeams[team] {
			t.Errorf("round %d: player %d assigned unexpected team %d", round, id, team)
		}
		playerCounts[team]++
	}

	goalieCounts := map[int]int{}
	lateGoalies := 0
	for id, team := range result.GoalieTeams {
		if team == 0 {
			lateGoalies++
			continue
		}
		if !wantTeams[team] {
			t.Errorf("round %d: goalie %d assigned unexpected team %d", round, id, team)
		}
		goalieCounts[team]++
	}

	if got := result.TeamsFormed(); got != 2 {
		t.Errorf("round %d: %d teams formed, want 2", round, got)
	}
	if wantLate := cfg.FieldPlayers - cfg.PlayerAdmissionCap(); latePlayers != wantLate {
		t.Errorf("round %d: %d late players, want %d", round, latePlayers, wantLate)
	}
	if wantLate := cfg.Goalies - cfg.GoalieAdmissionCap(); lateGoalies != wantLate {
		t.Errorf("round %d: %d late goalies, want %d", round, lateGoalies, wantLate)
	}
	for team := range wantTeams {
		if got := playerCounts[team]; got != cfg.PlayersPerTeam {
			t.Errorf("round %d: team %d has %d field players, want %d", round, team, got, cfg.PlayersPerTeam)
		}
		if got := goalieCounts[team]; got != 1 {
			t.Errorf("round %d: team %d has %d goalies, want 1", round, team, got)
		}
	}
}

func TestSimulationBarrierOrdering(t *testing.T) {
	const rounds = 2
	cfg := fastConfig(rounds)
	recorder := &memoryRecorder{}
	sim, err := NewSimulation(cfg, recorder)
	if err != nil {
		t.Fatalf("new simulation: %v", err)
	}
	if _, err := sim.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	snapshots := recorder.snapshots
	if len(snapshots) == 0 {
		t.Fatal("expected journal snapshots")
	}

	// Counter invariants hold in every observed state.
	for i, snap := range snapshots {
		if snap.Counters.FreePlayers < 0 || snap.Counters.FreeGoalies < 0 {
			t.Fatalf("snapshot %d: negative free counts: %+v", i, snap.Counters)
		}
	}

	// No participant is observed playing before the referee has opened the
	// round's start barrier, and both teams are formed by that point.
	starts := []int{}
	for i, snap := range snapshots {
		if snap.Referee == RefereeStartingMatch &&
			(i == 0 || snapshots[i-1].Referee != RefereeStartingMatch) {
			starts = append(starts, i)
		}
	}
	if len(starts) != rounds {
		t.Fatalf("observed %d start-barrier transitions, want %d", len(starts), rounds)
	}
	for round, start := range starts {
		wantFormed := 2*(round+1) + 1
		if got := snapshots[start].Counters.NextTeamID; got != wantFormed {
			t.Errorf("round %d: NextTeamID at start barrier = %d, want %d", round+1, got, wantFormed)
		}

		lower := 0
		if round > 0 {
			lower = starts[round-1] + 1
		}
		for i := lower; i < start; i++ {
			for id, status := range snapshots[i].Players {
				if status == StatusPlayingTeam1 || status == StatusPlayingTeam2 {
					if statusFromPriorRound(snapshots, i, id, round) {
						continue
					}
					t.Fatalf("round %d: player %d playing at snapshot %d before start barrier %d",
						round+1, id, i, start)
				}
			}
		}
	}

	// The final snapshot is the last round's reset: counters cleared and
	// NextTeamID preserved beyond every issued id.
	final := snapshots[len(snapshots)-1].Counters
	if final.PlayersArrived != 0 || final.GoaliesArrived != 0 ||
		final.FreePlayers != 0 || final.FreeGoalies != 0 {
		t.Errorf("final counters not reset: %+v", final)
	}
	if final.NextTeamID != 2*rounds+1 {
		t.Errorf("final NextTeamID = %d, want %d", final.NextTeamID, 2*rounds+1)
	}
}

// statusFromPriorRound reports whether a playing status seen before a start
// barrier is a leftover from the previous round. Statuses persist between an
// actor's rounds until its next arrival overwrites them, so a stale playing
// entry is expected until then.
func statusFromPriorRound(snapshots []Snapshot, index, id, round int) bool {
	if round == 0 {
		return false
	}
	// If the actor has not re-arrived since the previous round's end, its
	// status is stale rather than premature.
	for i := index; i >= 0; i-- {
		if snapshots[i].Referee == RefereeEndingMatch {
			return true
		}
		if snapshots[i].Players[id] == StatusArriving {
			return false
		}
	}
	return false
}
