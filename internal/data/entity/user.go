package entity

// User is a TrackJobs account. PasswordHash is nil for OAuth-only accounts;
// OAuthProvider/OAuthProviderID are nil for password accounts. Email is
// stored lower-cased and is globally unique.
type User struct {
	Base
	Email           string  `db:"email"`
	PasswordHash    *string `db:"password_hash"`
	EmailVerified   bool    `db:"email_verified"`
	OAuthProvider   *string `db:"oauth_provider"`
	OAuthProviderID *string `db:"oauth_provider_id"`
}
