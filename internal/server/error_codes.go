package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument  = 1000
	ErrCodeInvalidJSON      = 1001
	ErrCodeRequestTooLarge  = 1002
	ErrCodeInvalidForm      = 1003
	ErrCodeInvalidID        = 1004
	ErrCodeUnsupportedMedia = 1005
	ErrCodeMissingRequired  = 1009
	ErrCodeInvalidPublicKey = 1020
	ErrCodeInvalidNote      = 1021

	// Domain state (2xxx)
	ErrCodeKeyNotFound = 2001
	ErrCodeKeyIDExists = 2101

	// Internal/system (4xxx)
	ErrCodeInternal     = 4001
	ErrCodeStoreFailure = 4002
	ErrCodeRenderFailed = 4003
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 415:
		return ErrCodeUnsupportedMedia
	case 404:
		return ErrCodeKeyNotFound
	case 500:
		return ErrCodeInternal
	default:
		return 0
	}
}
