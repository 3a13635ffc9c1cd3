// Package matchday parses simulation command flags and runs the simulation.
package matchday

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/louisbranch/matchday/internal/journal"
	journalsqlite "github.com/louisbranch/matchday/internal/journal/sqlite"
	"github.com/louisbranch/matchday/internal/match"
	entrypoint "github.com/louisbranch/matchday/internal/platform/cmd"
)

// Config holds simulation command configuration.
type Config struct {
	FieldPlayers    int           `env:"MATCHDAY_FIELD_PLAYERS" envDefault:"10"`
	Goalies         int           `env:"MATCHDAY_GOALIES" envDefault:"3"`
	PlayersPerTeam  int           `env:"MATCHDAY_PLAYERS_PER_TEAM" envDefault:"4"`
	Rounds          int           `env:"MATCHDAY_ROUNDS" envDefault:"1"`
	MinArrivalDelay time.Duration `env:"MATCHDAY_MIN_ARRIVAL_DELAY" envDefault:"50ms"`
	MaxArrivalDelay time.Duration `env:"MATCHDAY_MAX_ARRIVAL_DELAY" envDefault:"250ms"`
	MatchDuration   time.Duration `env:"MATCHDAY_MATCH_DURATION" envDefault:"1s"`
	Seed            int64         `env:"MATCHDAY_SEED"`
	JournalPath     string        `env:"MATCHDAY_JOURNAL_PATH"`
	JournalDB       string        `env:"MATCHDAY_JOURNAL_DB"`
	JournalStrict   bool          `env:"MATCHDAY_JOURNAL_STRICT"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.FieldPlayers, "players", cfg.FieldPlayers, "Number of field players spawned per round")
	fs.IntVar(&cfg.Goalies, "goalies", cfg.Goalies, "Number of goalies spawned per round")
	fs.IntVar(&cfg.PlayersPerTeam, "players-per-team", cfg.PlayersPerTeam, "Field players on each team, leader included")
	fs.IntVar(&cfg.Rounds, "rounds", cfg.Rounds, "Number of rounds to simulate")
	fs.DurationVar(&cfg.MinArrivalDelay, "min-arrival-delay", cfg.MinArrivalDelay, "Lower bound for random arrival delays")
	fs.DurationVar(&cfg.MaxArrivalDelay, "max-arrival-delay", cfg.MaxArrivalDelay, "Upper bound for random arrival delays")
	fs.DurationVar(&cfg.MatchDuration, "match-duration", cfg.MatchDuration, "Simulated match duration")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Arrival-delay seed (0 selects a random seed)")
	fs.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "Text journal file (empty writes to stdout)")
	fs.StringVar(&cfg.JournalDB, "journal-db", cfg.JournalDB, "SQLite journal path (empty disables)")
	fs.BoolVar(&cfg.JournalStrict, "journal-strict", cfg.JournalStrict, "Treat journal failures as fatal protocol errors")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MatchConfig maps the command configuration onto the simulation parameters.
func (c Config) MatchConfig() match.Config {
	return match.Config{
		FieldPlayers:    c.FieldPlayers,
		Goalies:         c.Goalies,
		PlayersPerTeam:  c.PlayersPerTeam,
		Rounds:          c.Rounds,
		MinArrivalDelay: c.MinArrivalDelay,
		MaxArrivalDelay: c.MaxArrivalDelay,
		MatchDuration:   c.MatchDuration,
		Seed:            c.Seed,
	}
}

// Run wires the journal destinations and executes the simulation.
func Run(ctx context.Context, cfg Config) error {
	recorder, cleanup, err := buildRecorder(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sim, err := match.NewSimulation(cfg.MatchConfig(), recorder)
	if err != nil {
		return err
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMatchday, func(ctx context.Context) error {
		results, err := sim.Run(ctx)
		if err != nil {
			return err
		}
		for i, result := range results {
			log.Printf("round %d: %d teams formed, %d late players, %d late goalies",
				i+1, result.TeamsFormed(), countLate(result.PlayerTeams), countLate(result.GoalieTeams))
		}
		return nil
	})
}

// buildRecorder assembles the journal chain from the configured destinations.
// Journal failures are downgraded to log lines unless strict mode is set; a
// broken journal file should not wedge actors that are blocked mid-protocol.
func buildRecorder(cfg Config) (match.Recorder, func(), error) {
	cleanup := func() {}
	recorders := []match.Recorder{}

	if cfg.JournalPath != "" {
		f, err := os.Create(cfg.JournalPath)
		if err != nil {
			return nil, cleanup, fmt.Errorf("create journal file: %w", err)
		}
		cleanup = func() { _ = f.Close() }
		recorders = append(recorders, journal.NewWriter(f))
	} else {
		recorders = append(recorders, journal.NewWriter(os.Stdout))
	}

	if cfg.JournalDB != "" {
		store, err := journalsqlite.Open(cfg.JournalDB)
		if err != nil {
			return nil, cleanup, fmt.Errorf("open journal db: %w", err)
		}
		fileCleanup := cleanup
		cleanup = func() {
			_ = store.Close()
			fileCleanup()
		}
		recorders = append(recorders, store)
	}

	recorder := journal.Multi(recorders...)
	if !cfg.JournalStrict {
		recorder = journal.BestEffort(recorder)
	}
	return recorder, cleanup, nil
}

func countLate(teams []int) int {
	late := 0
	for _, team := range teams {
		if team == 0 {
			late++
		}
	}
	return late
}
