package match

// Status represents the lifecycle state of a field player or goalie.
type Status int

const (
	StatusArriving Status = iota
	StatusLate
	StatusFormingTeam
	StatusWaitingTeams
	StatusWaitingStartTeam1
	StatusWaitingStartTeam2
	StatusPlayingTeam1
	StatusPlayingTeam2
)

func (s Status) String() string {
	switch s {
	case StatusArriving:
		return "Arriving"
	case StatusLate:
		return "Late"
	case StatusFormingTeam:
		return "Forming team"
	case StatusWaitingTeams:
		return "Waiting teams"
	case StatusWaitingStartTeam1:
		return "Waiting start team 1"
	case StatusWaitingStartTeam2:
		return "Waiting start team 2"
	case StatusPlayingTeam1:
		return "Playing team 1"
	case StatusPlayingTeam2:
		return "Playing team 2"
	default:
		return "Unknown"
	}
}

// TeamSlot maps a globally increasing team id to its slot within a match.
// Odd ids fill slot 1 and even ids fill slot 2, since exactly two teams form
// per round and ids are never reset.
func TeamSlot(team int) int {
	if team%2 == 1 {
		return 1
	}
	return 2
}

// waitingStart maps a team id to the matching waiting-for-start status.
func waitingStart(team int) Status {
	if TeamSlot(team) == 1 {
		return StatusWaitingStartTeam1
	}
	return StatusWaitingStartTeam2
}

// playing maps a team id to the matching in-play status.
func playing(team int) Status {
	if TeamSlot(team) == 1 {
		return StatusPlayingTeam1
	}
	return StatusPlayingTeam2
}

// RefereeStatus represents the lifecycle state of the referee.
type RefereeStatus int

const (
	RefereeArriving RefereeStatus = iota
	RefereeWaitingTeams
	RefereeStartingMatch
	RefereeRefereeing
	RefereeEndingMatch
)

func (s RefereeStatus) String() string {
	switch s {
	case RefereeArriving:
		return "Arriving"
	case RefereeWaitingTeams:
		return "Waiting teams"
	case RefereeStartingMatch:
		return "Starting match"
	case RefereeRefereeing:
		return "Refereeing"
	case RefereeEndingMatch:
		return "Ending match"
	default:
		return "Unknown"
	}
}
