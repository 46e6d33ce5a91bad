package constants

const (
	// MAX_USER_ROOMS is the maximum number of rooms a single user may belong to.
	MAX_USER_ROOMS = 20

	// MAX_ROOM_USERS is the maximum number of members a single room may hold.
	MAX_ROOM_USERS = 50

	CHANNEL_SIZE               = 100 // event channel buffer size
	REFRESH_TOKEN_EXPIRY_HOURS = 168 // refresh token lifetime, 168 hours = 7 days
)
