package constants

const (
	// HTTP Headers
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"

	// Context keys
	ContextKeyRequestID = "request_id"
	ContextKeyAdmin     = "admin_username"

	// Database table names
	TableReservations       = "reservations"
	TablePasskeyCredentials = "passkey_credentials"
	TableWebAuthnChallenges = "webauthn_challenges"

	// Challenge store backends
	ChallengeStoreDatabase = "database"
	ChallengeStoreRedis    = "redis"

	// Scheduler job tags
	JobTagMaintenance = "maintenance"
)
