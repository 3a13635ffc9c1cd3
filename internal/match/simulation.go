package match

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/matchday/internal/platform/random"
)

const tracerName = "github.com/louisbranch/matchday/internal/match"

// RoundResult reports the team assignment of every actor for one round.
// A zero entry means the actor arrived too late to play.
type RoundResult struct {
	PlayerTeams []int
	GoalieTeams []int
}

// TeamsFormed counts the distinct teams assigned in this round.
func (r RoundResult) TeamsFormed() int {
	teams := map[int]struct{}{}
	for _, team := range r.PlayerTeams {
		if team != 0 {
			teams[team] = struct{}{}
		}
	}
	for _, team := range r.GoalieTeams {
		if team != 0 {
			teams[team] = struct{}{}
		}
	}
	return len(teams)
}

// Simulation owns the shared arena, the synchronization set and the actor
// population, and replays the configured number of rounds.
type Simulation struct {
	cfg    Config
	arena  *Arena
	set    *SyncSet
	seed   int64
	tracer trace.Tracer
}

// NewSimulation validates the configuration and builds the shared resources.
// The recorder may be nil when no journal is wanted.
func NewSimulation(cfg Config, recorder Recorder) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("simulation config: %w", err)
	}
	seed := cfg.Seed
	if seed == 0 {
		generated, err := random.NewSeed()
		if err != nil {
			return nil, fmt.Errorf("simulation seed: %w", err)
		}
		seed = generated
	}
	return &Simulation{
		cfg:    cfg,
		arena:  NewArena(cfg, recorder),
		set:    NewSyncSet(),
		seed:   seed,
		tracer: otel.Tracer(tracerName),
	}, nil
}

// Run simulates every configured round and returns one result per round.
//
// Each round spawns a fresh population of field players and goalies alongside
// the referee's round controller, then joins them all before the next round
// begins. Any actor error aborts the run; the protocol's invariants cannot be
// trusted after a failed primitive operation, so there is no retry.
func (s *Simulation) Run(ctx context.Context) ([]RoundResult, error) {
	referee := NewReferee(s.arena, s.set, s.cfg)
	if err := referee.Arrive(ctx); err != nil {
		return nil, err
	}

	results := make([]RoundResult, 0, s.cfg.Rounds)
	for round := 1; round <= s.cfg.Rounds; round++ {
		result, err := s.runRound(ctx, referee, round)
		if err != nil {
			return results, fmt.Errorf("round %d: %w", round, err)
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *Simulation) runRound(ctx context.Context, referee *Referee, round int) (RoundResult, error) {
	ctx, span := s.tracer.Start(ctx, "match.round",
		trace.WithAttributes(attribute.Int("match.round", round)))
	defer span.End()

	result := RoundResult{
		PlayerTeams: make([]int, s.cfg.FieldPlayers),
		GoalieTeams: make([]int, s.cfg.Goalies),
	}

	var group errgroup.Group
	group.Go(func() error {
		return referee.RunRound(ctx)
	})
	for id := 0; id < s.cfg.FieldPlayers; id++ {
		player, err := NewPlayer(id, s.arena, s.set, s.cfg, s.actorSeed(round, id))
		if err != nil {
			return result, err
		}
		id := id
		group.Go(func() error {
			team, err := player.Run(ctx)
			result.PlayerTeams[id] = team
			return err
		})
	}
	for id := 0; id < s.cfg.Goalies; id++ {
		goalie, err := NewGoalie(id, s.arena, s.set, s.cfg, s.actorSeed(round, s.cfg.FieldPlayers+id))
		if err != nil {
			return result, err
		}
		id := id
		group.Go(func() error {
			team, err := goalie.Run(ctx)
			result.GoalieTeams[id] = team
			return err
		})
	}
	if err := group.Wait(); err != nil {
		return result, err
	}
	return result, nil
}

// actorSeed derives a per-actor seed so arrival delays differ across actors
// and rounds while staying reproducible for a fixed Config.Seed.
func (s *Simulation) actorSeed(round, actor int) int64 {
	population := int64(s.cfg.FieldPlayers + s.cfg.Goalies)
	return s.seed + int64(round)*population + int64(actor)
}
