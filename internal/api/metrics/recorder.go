package metrics

// Recorder implements ports.AuthMetrics over the package counters.
type Recorder struct{}

func NewRecorder() Recorder {
	return Recorder{}
}

func (Recorder) RegistrationAttempt(result string) {
	RegistrationsTotal.WithLabelValues(result).Inc()
}

func (Recorder) LoginAttempt(result string) {
	LoginsTotal.WithLabelValues(result).Inc()
}

func (Recorder) VerificationMail(result string) {
	VerificationMailsTotal.WithLabelValues(result).Inc()
}
