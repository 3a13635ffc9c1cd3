// Package match implements a soccer-match formation and lifecycle simulation
// coordinated entirely through shared state and counting signals.
//
// A fixed population of field players and goalies races to self-organize into
// two teams per round. The first actor whose arrival satisfies the formation
// condition leads the formation handshake; the referee then drives every team
// through the match-start, playing, and match-end barriers before resetting
// the round. All shared state lives in Arena and is mutated only under the
// SyncSet mutex; all cross-actor coordination flows through the SyncSet
// counting signals.
package match
