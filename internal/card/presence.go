package card

// Presence classifies a user's connectivity, mapped from the numeric
// presence code the Roblox API returns.
type Presence int

const (
	PresenceOffline Presence = iota
	// PresenceOnline means connected but not in a game.
	PresenceOnline
	PresenceInGame
	// PresenceUnknown covers codes outside the documented range (the API
	// occasionally grows new ones, e.g. studio sessions). It displays
	// exactly like offline.
	PresenceUnknown
)

var presenceByCode = map[int]Presence{
	0: PresenceOffline,
	1: PresenceOnline,
	2: PresenceInGame,
}

// PresenceFromCode maps an upstream presence code to its Presence.
// Unrecognized codes map to PresenceUnknown rather than failing.
func PresenceFromCode(code int) Presence {
	if p, ok := presenceByCode[code]; ok {
		return p
	}
	return PresenceUnknown
}

// IsOnline reports whether the user is connected at all.
func (p Presence) IsOnline() bool {
	return p == PresenceOnline || p == PresenceInGame
}

func (p Presence) String() string {
	switch p {
	case PresenceOffline:
		return "offline"
	case PresenceOnline:
		return "online"
	case PresenceInGame:
		return "in-game"
	default:
		return "unknown"
	}
}
