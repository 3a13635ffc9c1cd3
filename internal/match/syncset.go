package match

import (
	"sync"

	"github.com/louisbranch/matchday/internal/platform/semaphore"
)

// SyncSet bundles the mutual-exclusion lock and the seven counting signals
// the protocol runs on.
//
// Mu guards every Arena read-modify-write. The signals carry the formation
// handshake and the three match barriers:
//
//   - PlayersWaitTeam / GoaliesWaitTeam: a forming leader releases one unit
//     per recruited follower of that role.
//   - PlayerRegistered: each woken follower acknowledges its registration.
//   - RefereeWaitTeams: each completed team notifies the referee once.
//   - PlayersWaitReferee: the referee opens the match-start barrier.
//   - Playing: each participant reports it has started playing.
//   - PlayersWaitEnd: the referee opens the match-end barrier.
type SyncSet struct {
	Mu sync.Mutex

	PlayersWaitTeam    *semaphore.Semaphore
	GoaliesWaitTeam    *semaphore.Semaphore
	PlayerRegistered   *semaphore.Semaphore
	RefereeWaitTeams   *semaphore.Semaphore
	PlayersWaitReferee *semaphore.Semaphore
	Playing            *semaphore.Semaphore
	PlayersWaitEnd     *semaphore.Semaphore
}

// NewSyncSet creates the synchronization set with every signal at zero.
func NewSyncSet() *SyncSet {
	return &SyncSet{
		PlayersWaitTeam:    semaphore.New(0),
		GoaliesWaitTeam:    semaphore.New(0),
		PlayerRegistered:   semaphore.New(0),
		RefereeWaitTeams:   semaphore.New(0),
		PlayersWaitReferee: semaphore.New(0),
		Playing:            semaphore.New(0),
		PlayersWaitEnd:     semaphore.New(0),
	}
}
