package auth

import (
	goerrors "github.com/goliatone/go-errors"
)

// Client-facing messages. These strings are a wire contract with the web
// client; change them only together with the client.
const (
	MsgAllFieldsRequired   = "All fields are required."
	MsgEmailExistsUser     = "Email already exists in User table."
	MsgEmailExistsAuth     = "Email already exists in Auth table."
	MsgCheckEmailUser      = "Error checking email in User table."
	MsgCheckEmailAuth      = "Error checking email in Auth table."
	MsgHashingFailed       = "Error hashing password."
	MsgInsertUserFailed    = "Error inserting into User table."
	MsgInsertAuthFailed    = "Error inserting into Auth table."
	MsgInsertContextFailed = "Error inserting into Context table."
	MsgBackfillFailed      = "Error updating User table with context_id."
	MsgRegistrationFailed  = "Registration failed. Please try again."
	MsgRegistered          = "User registered successfully."

	MsgLoginFieldsRequired = "Email and password are required"
	MsgDatabaseError       = "Database error"
	MsgInvalidCredentials  = "Invalid email or password"
	MsgCompareFailed       = "Error comparing passwords"
	MsgLoginSuccess        = "login success"
	MsgLoggedOut           = "Logged out successfully"

	MsgNoToken      = "No token provided"
	MsgInvalidToken = "Invalid or expired token"
	MsgTokenValid   = "Token is valid"
)

const (
	TextCodeEmptyPassword = "auth_empty_password"
	TextCodeInvalidCreds  = "auth_invalid_credentials"
	TextCodeEmailExists   = "auth_email_exists"
	TextCodeTokenExpired  = "auth_token_expired"
	TextCodeTokenInvalid  = "auth_token_invalid"
	TextCodeTokenMissing  = "auth_token_missing"
)

// ErrNoEmptyString is returned when an empty password reaches the hasher.
var ErrNoEmptyString = goerrors.New("password cannot be empty", goerrors.CategoryValidation).
	WithTextCode(TextCodeEmptyPassword).
	WithCode(goerrors.CodeBadRequest)

// ErrMismatchedHashAndPassword is returned when a password does not match its hash.
var ErrMismatchedHashAndPassword = goerrors.New("the credentials provided are invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned when a session token is past its expiry.
var ErrTokenExpired = goerrors.New("token is expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenInvalid is returned for any other token verification failure.
var ErrTokenInvalid = goerrors.New("token is invalid", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenInvalid).
	WithCode(goerrors.CodeUnauthorized)

// ErrNoToken is returned when a request carries no session cookie.
var ErrNoToken = goerrors.New("no token provided", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMissing).
	WithCode(goerrors.CodeUnauthorized)

// clientMessage extracts the message to put on the wire for err, falling back
// to the generic registration failure when the error carries none.
func clientMessage(err error, fallback string) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}
	return fallback
}

// statusCode extracts the HTTP status for err, mapping by category when the
// error carries no explicit code. Defaults to 500.
func statusCode(err error) int {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		if richErr.Code != 0 {
			return richErr.Code
		}
		switch richErr.Category {
		case goerrors.CategoryValidation, goerrors.CategoryBadInput, goerrors.CategoryConflict:
			return goerrors.CodeBadRequest
		case goerrors.CategoryAuth:
			return goerrors.CodeUnauthorized
		}
	}
	return goerrors.CodeInternal
}
