package errs

import "fmt"

// ProviderError is a failure reported by the external identity provider.
// Code is the provider-native symbolic code (for example EMAIL_EXISTS or
// INVALID_LOGIN_CREDENTIALS) and is returned to the client verbatim, as the
// login and signup endpoints contractually expose provider errors.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message != "" && e.Message != e.Code {
		return fmt.Sprintf("identity provider: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("identity provider: %s", e.Code)
}

func NewProviderError(code, message string) *ProviderError {
	if message == "" {
		message = code
	}
	return &ProviderError{Code: code, Message: message}
}
