package ports

// AuthMetrics records the outcome of account operations. Results are short
// label values such as "created", "duplicate" or "invalid_credentials".
type AuthMetrics interface {
	RegistrationAttempt(result string)
	LoginAttempt(result string)
	VerificationMail(result string)
}
