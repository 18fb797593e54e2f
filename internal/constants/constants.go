package constants

// Context keys
const (
	ContextKeyUserID  = "user_id"
	ContextKeyClaims  = "session_claims"
	ContextKeyEvent   = "event"
	ContextKeyNews    = "news"
	ContextKeyProject = "project"
	ContextKeyMember  = "member"
)

// Session
const (
	SessionCookieName = "alumni_session"
	SessionTokenKey   = "token"
	SessionMaxAge     = 86400 * 7
)

// Roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Pagination
const (
	MinPageSize       = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
	MemberPageSize    = 12
	MaxMemberPageSize = 50
)

// Auth
const (
	MinPasswordLength = 8
)

// Uploads
const (
	DefaultMaxUploadMB = 10
	MaxGalleryImages   = 20
)

// Storage key prefixes
const (
	MediaKindEvent   = "events"
	MediaKindNews    = "news"
	MediaKindProject = "projects"
	MediaKindMember  = "members"
)
