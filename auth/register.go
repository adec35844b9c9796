package auth

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"

	"github.com/eduline/lms-server/store"
)

// UserStore is the slice of the users repository registration needs.
type UserStore interface {
	Create(ctx context.Context, user *store.User) error
	EmailExists(ctx context.Context, email string) (bool, error)
	SetContextID(ctx context.Context, userID, contextID uuid.UUID) error
	DeleteByEmail(ctx context.Context, email string) error
}

// CredentialStore is the slice of the credentials repository registration needs.
type CredentialStore interface {
	Create(ctx context.Context, cred *store.AuthCredential) error
	EmailExists(ctx context.Context, email string) (bool, error)
	DeleteByEmail(ctx context.Context, email string) error
}

// ContextStore creates the per-user context row.
type ContextStore interface {
	Create(ctx context.Context, row *store.Context) error
}

// WelcomeSender delivers the post-registration welcome mail.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, email, name string) error
}

// RegisterUserMessage is the registration request payload.
type RegisterUserMessage struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhoneNo  string `json:"phone_no"`
	Password string `json:"password"`

	// UseHashid derives the user id deterministically from the email
	// instead of generating a random one.
	UseHashid bool `json:"-"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Validate runs validation rules. Every field is required; the client
// contract collapses all field errors into one message.
func (e RegisterUserMessage) Validate() *goerrors.Error {
	return goerrors.ValidateWithOzzo(func() error {
		return validation.ValidateStruct(&e,
			validation.Field(&e.Name, validation.Required),
			validation.Field(&e.Email, validation.Required),
			validation.Field(&e.PhoneNo, validation.Required),
			validation.Field(&e.Password, validation.Required),
		)
	}, MsgAllFieldsRequired)
}

// RegisterUserHandler runs the multi-step registration sequence. Each step
// that commits state registers a compensation; on failure the accumulated
// compensations run in reverse order, best effort. The context row is never
// compensated, so a failure after step six can leave it orphaned.
type RegisterUserHandler struct {
	users       UserStore
	credentials CredentialStore
	contexts    ContextStore
	sender      WelcomeSender
	hasher      PasswordHasher
	logger      Logger
}

// NewRegisterUserHandler wires the registration workflow.
func NewRegisterUserHandler(
	users UserStore,
	credentials CredentialStore,
	contexts ContextStore,
	sender WelcomeSender,
	hasher PasswordHasher,
	logger Logger,
) *RegisterUserHandler {
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	if logger == nil {
		logger = defLogger{}
	}
	return &RegisterUserHandler{
		users:       users,
		credentials: credentials,
		contexts:    contexts,
		sender:      sender,
		hasher:      hasher,
		logger:      logger,
	}
}

type compensation struct {
	step string
	fn   func(context.Context) error
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*store.User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*store.User, error) {
	if err := event.Validate(); err != nil {
		return nil, err
	}

	exists, err := h.users.EmailExists(ctx, event.Email)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, MsgCheckEmailUser).
			WithCode(goerrors.CodeInternal)
	}
	if exists {
		return nil, goerrors.New(MsgEmailExistsUser, goerrors.CategoryConflict).
			WithTextCode(TextCodeEmailExists).
			WithCode(goerrors.CodeBadRequest)
	}

	exists, err = h.credentials.EmailExists(ctx, event.Email)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, MsgCheckEmailAuth).
			WithCode(goerrors.CodeInternal)
	}
	if exists {
		return nil, goerrors.New(MsgEmailExistsAuth, goerrors.CategoryConflict).
			WithTextCode(TextCodeEmailExists).
			WithCode(goerrors.CodeBadRequest)
	}

	hash, err := h.hasher.Hash(event.Password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, MsgHashingFailed).
			WithCode(goerrors.CodeInternal)
	}

	user := &store.User{
		ID:       uuid.New(),
		Name:     event.Name,
		Email:    event.Email,
		PhoneNo:  normalizePhone(event.PhoneNo),
		Password: hash,
	}
	if event.UseHashid {
		if id, err := hashid.NewUUID(event.Email); err == nil {
			user.ID = id
		}
	}

	var compensations []compensation

	fail := func(richErr *goerrors.Error) error {
		h.rollback(ctx, event.Email, compensations)
		return richErr.WithCode(goerrors.CodeInternal)
	}

	if err := h.users.Create(ctx, user); err != nil {
		return nil, fail(goerrors.Wrap(err, goerrors.CategoryInternal, MsgInsertUserFailed))
	}
	compensations = append(compensations, compensation{
		step: "insert user",
		fn: func(ctx context.Context) error {
			return h.users.DeleteByEmail(ctx, event.Email)
		},
	})

	cred := &store.AuthCredential{
		ID:       uuid.New(),
		Email:    event.Email,
		Password: hash,
		UserID:   user.ID,
	}
	if err := h.credentials.Create(ctx, cred); err != nil {
		return nil, fail(goerrors.Wrap(err, goerrors.CategoryInternal, MsgInsertAuthFailed))
	}
	compensations = append(compensations, compensation{
		step: "insert credential",
		fn: func(ctx context.Context) error {
			return h.credentials.DeleteByEmail(ctx, event.Email)
		},
	})

	// The context row registers no compensation. Rollback of a later step
	// leaves it orphaned.
	userContext := &store.Context{
		ID:           uuid.New(),
		ContextLevel: store.UserContextLevel,
		InstanceID:   user.ID,
	}
	if err := h.contexts.Create(ctx, userContext); err != nil {
		return nil, fail(goerrors.Wrap(err, goerrors.CategoryInternal, MsgInsertContextFailed))
	}

	if err := h.users.SetContextID(ctx, user.ID, userContext.ID); err != nil {
		return nil, fail(goerrors.Wrap(err, goerrors.CategoryInternal, MsgBackfillFailed))
	}

	if h.sender != nil {
		if err := h.sender.SendWelcome(ctx, event.Email, event.Name); err != nil {
			return nil, fail(goerrors.Wrap(err, goerrors.CategoryOperation, MsgRegistrationFailed))
		}
	}

	user.ContextID = &userContext.ID
	return user, nil
}

// normalizePhone canonicalizes international numbers to E.164. Numbers
// without a country prefix are stored as submitted.
func normalizePhone(phone string) string {
	num, err := phonenumbers.Parse(phone, "")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return phone
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

// rollback runs the accumulated compensations newest first. Compensation
// failures are logged and swallowed; the caller's error is the one that
// reaches the client.
func (h *RegisterUserHandler) rollback(ctx context.Context, email string, compensations []compensation) {
	for i := len(compensations) - 1; i >= 0; i-- {
		c := compensations[i]
		if err := c.fn(ctx); err != nil {
			h.logger.Error("registration rollback step failed", "step", c.step, "email", email, "error", err)
		}
	}
}
