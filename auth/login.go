package auth

import (
	"context"
	"database/sql"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"

	"github.com/eduline/lms-server/store"
)

// LoginUserMessage is the login request payload.
type LoginUserMessage struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (e LoginUserMessage) Type() string { return "user.login" }

// Validate runs validation rules.
func (e LoginUserMessage) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&e,
			validation.Field(&e.Email, validation.Required),
			validation.Field(&e.Password, validation.Required),
		)
	}, MsgLoginFieldsRequired)
}

// LoginResult is what a successful login hands the controller.
type LoginResult struct {
	Token      string
	Credential *store.AuthCredential
}

// CredentialReader is the lookup slice of the credentials repository.
type CredentialReader interface {
	GetByEmail(ctx context.Context, email string) (*store.AuthCredential, error)
}

// LoginUserHandler verifies credentials and issues a session token. Unknown
// email and wrong password produce the same client message so the endpoint
// does not leak which emails are registered.
type LoginUserHandler struct {
	credentials CredentialReader
	hasher      PasswordHasher
	tokens      *TokenService
	logger      Logger
}

// NewLoginUserHandler wires the login workflow.
func NewLoginUserHandler(credentials CredentialReader, hasher PasswordHasher, tokens *TokenService, logger Logger) *LoginUserHandler {
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	if logger == nil {
		logger = defLogger{}
	}
	return &LoginUserHandler{
		credentials: credentials,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
	}
}

func (h *LoginUserHandler) Execute(ctx context.Context, event LoginUserMessage) (*LoginResult, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during login",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *LoginUserHandler) execute(ctx context.Context, event LoginUserMessage) (*LoginResult, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	cred, err := h.credentials.GetByEmail(ctx, event.Email)
	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, goerrors.New(MsgInvalidCredentials, goerrors.CategoryAuth).
				WithTextCode(TextCodeInvalidCreds).
				WithCode(goerrors.CodeUnauthorized)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, MsgDatabaseError).
			WithCode(goerrors.CodeInternal)
	}

	if err := h.hasher.Compare(event.Password, cred.Password); err != nil {
		if goerrors.Is(err, ErrMismatchedHashAndPassword) {
			return nil, goerrors.New(MsgInvalidCredentials, goerrors.CategoryAuth).
				WithTextCode(TextCodeInvalidCreds).
				WithCode(goerrors.CodeUnauthorized)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, MsgCompareFailed).
			WithCode(goerrors.CodeInternal)
	}

	token, err := h.tokens.Generate(cred.UserID)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, MsgDatabaseError).
			WithCode(goerrors.CodeInternal)
	}

	h.logger.Info("user logged in", "email", event.Email)

	return &LoginResult{Token: token, Credential: cred}, nil
}
