package errors

import "net/http"

// Ceremony and check-in failure kinds.
const (
	ErrorTypeChallengeInvalid    ErrorType = "challenge_invalid"
	ErrorTypeVerificationFailed  ErrorType = "verification_failed"
	ErrorTypeUnknownCredential   ErrorType = "unknown_credential"
	ErrorTypeDuplicateCredential ErrorType = "duplicate_credential"
	ErrorTypeInvalidSecret       ErrorType = "invalid_secret"
	ErrorTypeBiometricRequired   ErrorType = "biometric_required"
)

// NewChallengeInvalidError is returned when the ceremony challenge is missing,
// expired or already consumed. The client restarts the ceremony.
func NewChallengeInvalidError() *AppError {
	return &AppError{
		Type:    ErrorTypeChallengeInvalid,
		Message: "Session expired, please start again",
		Code:    http.StatusBadRequest,
	}
}

// NewAttestationFailedError reports a registration response that did not verify.
func NewAttestationFailedError(details ...string) *AppError {
	return newAppError(ErrorTypeVerificationFailed, http.StatusBadRequest, "Registration could not be verified", details)
}

// NewAssertionFailedError reports an authentication response that did not verify,
// including a non-increasing signature counter.
func NewAssertionFailedError(details ...string) *AppError {
	return newAppError(ErrorTypeVerificationFailed, http.StatusUnauthorized, "Authentication failed, please retry", details)
}

func NewUnknownCredentialError() *AppError {
	return &AppError{
		Type:    ErrorTypeUnknownCredential,
		Message: "This passkey is not registered, please register this device first",
		Code:    http.StatusNotFound,
	}
}

func NewDuplicateCredentialError() *AppError {
	return &AppError{
		Type:    ErrorTypeDuplicateCredential,
		Message: "This passkey is already registered",
		Code:    http.StatusConflict,
	}
}

func NewInvalidSecretError() *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidSecret,
		Message: "Secret code does not match, please check the code and retry",
		Code:    http.StatusUnauthorized,
	}
}

func NewBiometricRequiredError(details ...string) *AppError {
	return newAppError(ErrorTypeBiometricRequired, http.StatusUnauthorized, "Passkey authentication is required before check-in", details)
}

func NewReservationNotFoundError() *AppError {
	return NewNotFoundError("Reservation not found")
}
