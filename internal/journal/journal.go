// Package journal records arena snapshots emitted by the match protocol.
//
// Recorders are invoked under the protocol mutex, immediately after each
// status mutation, so the journal observes every state in mutation order.
package journal

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/louisbranch/matchday/internal/match"
)

// Writer journals snapshots as aligned text, one line per state transition.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	header bool
	seq    int
}

// NewWriter creates a text journal that writes to out.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Record writes one line describing the full snapshot.
func (w *Writer) Record(ctx context.Context, snap match.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.header {
		if err := w.writeHeader(snap); err != nil {
			return err
		}
		w.header = true
	}

	w.seq++
	fields := make([]string, 0, len(snap.Players)+len(snap.Goalies)+6)
	fields = append(fields, fmt.Sprintf("%4d", w.seq))
	for _, status := range snap.Players {
		fields = append(fields, abbreviate(status))
	}
	for _, status := range snap.Goalies {
		fields = append(fields, abbreviate(status))
	}
	fields = append(fields,
		abbreviateReferee(snap.Referee),
		fmt.Sprintf("%2d", snap.Counters.PlayersArrived),
		fmt.Sprintf("%2d", snap.Counters.GoaliesArrived),
		fmt.Sprintf("%2d", snap.Counters.FreePlayers),
		fmt.Sprintf("%2d", snap.Counters.FreeGoalies),
		fmt.Sprintf("%2d", snap.Counters.NextTeamID),
	)
	_, err := fmt.Fprintln(w.out, strings.Join(fields, "  "))
	if err != nil {
		return fmt.Errorf("write journal line: %w", err)
	}
	return nil
}

func (w *Writer) writeHeader(snap match.Snapshot) error {
	fields := make([]string, 0, len(snap.Players)+len(snap.Goalies)+6)
	fields = append(fields, " SEQ")
	for id := range snap.Players {
		fields = append(fields, fmt.Sprintf("PL%02d", id))
	}
	for id := range snap.Goalies {
		fields = append(fields, fmt.Sprintf("GL%02d", id))
	}
	fields = append(fields, " REF", "PA", "GA", "FP", "FG", "TI")
	_, err := fmt.Fprintln(w.out, strings.Join(fields, "  "))
	if err != nil {
		return fmt.Errorf("write journal header: %w", err)
	}
	return nil
}

func abbreviate(status match.Status) string {
	switch status {
	case match.StatusArriving:
		return "ARRV"
	case match.StatusLate:
		return "LATE"
	case match.StatusFormingTeam:
		return "FORM"
	case match.StatusWaitingTeams:
		return "WAIT"
	case match.StatusWaitingStartTeam1:
		return "WST1"
	case match.StatusWaitingStartTeam2:
		return "WST2"
	case match.StatusPlayingTeam1:
		return "PLY1"
	case match.StatusPlayingTeam2:
		return "PLY2"
	default:
		return "????"
	}
}

func abbreviateReferee(status match.RefereeStatus) string {
	switch status {
	case match.RefereeArriving:
		return "ARRV"
	case match.RefereeWaitingTeams:
		return "WAIT"
	case match.RefereeStartingMatch:
		return "STRT"
	case match.RefereeRefereeing:
		return "PLAY"
	case match.RefereeEndingMatch:
		return " END"
	default:
		return "????"
	}
}

// Multi fans a snapshot out to several recorders, stopping at the first
// failure.
func Multi(recorders ...match.Recorder) match.Recorder {
	return multi(recorders)
}

type multi []match.Recorder

func (m multi) Record(ctx context.Context, snap match.Snapshot) error {
	for _, recorder := range m {
		if recorder == nil {
			continue
		}
		if err := recorder.Record(ctx, snap); err != nil {
			return err
		}
	}
	return nil
}

// BestEffort downgrades recording failures to log lines so a broken journal
// destination cannot stall the protocol.
func BestEffort(recorder match.Recorder) match.Recorder {
	return bestEffort{recorder: recorder}
}

type bestEffort struct {
	recorder match.Recorder
}

func (b bestEffort) Record(ctx context.Context, snap match.Snapshot) error {
	if b.recorder == nil {
		return nil
	}
	if err := b.recorder.Record(ctx, snap); err != nil {
		log.Printf("journal record: %v", err)
	}
	return nil
}
