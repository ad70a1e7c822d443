package roblox

// User is the resolved identity for a username.
type User struct {
	ID          int64
	Name        string
	DisplayName string
}

// Presence is the raw presence record for a user. Type is the upstream's
// numeric presence code (0 offline, 1 online, 2 in-game); the place and
// universe IDs are only set while in-game, and not always then.
type Presence struct {
	Type       int
	PlaceID    int64
	UniverseID int64
}

// Wire types for the four Roblox endpoints.

type usernamesRequest struct {
	Usernames          []string `json:"usernames"`
	ExcludeBannedUsers bool     `json:"excludeBannedUsers"`
}

type usernamesResponse struct {
	Data []struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		DisplayName string `json:"displayName"`
	} `json:"data"`
}

type presenceRequest struct {
	UserIDs []int64 `json:"userIds"`
}

type presenceResponse struct {
	UserPresences []struct {
		UserPresenceType int   `json:"userPresenceType"`
		PlaceID          int64 `json:"placeId"`
		UniverseID       int64 `json:"universeId"`
	} `json:"userPresences"`
}

type gamesResponse struct {
	Data []struct {
		Name string `json:"name"`
	} `json:"data"`
}

type thumbnailResponse struct {
	Data []struct {
		ImageURL string `json:"imageUrl"`
	} `json:"data"`
}
