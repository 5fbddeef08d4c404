package draftsim

import "errors"

// Sentinel errors for draft simulations.
var (
	ErrInvalidConfig    = errors.New("invalid simulation config")
	ErrUnexpectedStatus = errors.New("unexpected response status")
	ErrVerification     = errors.New("draft verification failed")
	ErrSimulationFailed = errors.New("simulation failed")
)
