package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer
// credential on authenticated broker requests. The client treats the token
// as an opaque string and never inspects it.
const AuthorizationHeaderName = "Authorization"

// DefaultContentType is assumed when a file handle reports no media type.
const DefaultContentType = "application/octet-stream"

const (
	// MinExpiresInDays and MaxExpiresInDays bound the requested link lifetime.
	MinExpiresInDays = 1
	MaxExpiresInDays = 30
	// DefaultExpiresInDays is applied when a registration omits the value.
	DefaultExpiresInDays = 7
)

// File lifecycle statuses owned by the broker. The client never sets these.
const (
	FileStatusUploading = "uploading"
	FileStatusReady     = "ready"
	FileStatusDeleted   = "deleted"
)
