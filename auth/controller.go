package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

// Controller binds the auth workflows to HTTP.
type Controller struct {
	Debug        bool
	Logger       Logger
	CookieName   string
	CookieMaxAge time.Duration
	SecureCookie bool

	// DeterministicIDs turns on email-derived user ids for registrations.
	DeterministicIDs bool

	register *RegisterUserHandler
	login    *LoginUserHandler
	tokens   *TokenService
}

type ControllerOption func(*Controller) *Controller

// NewController creates the auth controller with the given workflows.
func NewController(register *RegisterUserHandler, login *LoginUserHandler, tokens *TokenService, opts ...ControllerOption) *Controller {
	c := &Controller{
		Logger:       defLogger{},
		CookieName:   "authToken",
		CookieMaxAge: time.Hour,
		register:     register,
		login:        login,
		tokens:       tokens,
	}

	for _, opt := range opts {
		if opt != nil {
			c = opt(c)
		}
	}

	return c
}

func WithLogger(logger Logger) ControllerOption {
	return func(c *Controller) *Controller {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func WithDebug(debug bool) ControllerOption {
	return func(c *Controller) *Controller {
		c.Debug = debug
		return c
	}
}

func WithDeterministicIDs(enabled bool) ControllerOption {
	return func(c *Controller) *Controller {
		c.DeterministicIDs = enabled
		return c
	}
}

func WithCookie(name string, maxAge time.Duration, secure bool) ControllerOption {
	return func(c *Controller) *Controller {
		if name != "" {
			c.CookieName = name
		}
		if maxAge > 0 {
			c.CookieMaxAge = maxAge
		}
		c.SecureCookie = secure
		return c
	}
}

// RegisterRoutes mounts the auth endpoints under /auth.
func (c *Controller) RegisterRoutes(app fiber.Router) {
	grp := app.Group("/auth")
	grp.Post("/register", c.RegisterPost)
	grp.Post("/login", c.LoginPost)
	grp.Post("/logout", c.LogoutPost)
	grp.Get("/check-token", c.CheckToken)
}

// RegisterPost handles POST /auth/register.
func (c *Controller) RegisterPost(ctx *fiber.Ctx) error {
	var msg RegisterUserMessage
	if err := ctx.BodyParser(&msg); err != nil {
		c.Logger.Error("register: failed to parse payload", "error", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": MsgAllFieldsRequired,
		})
	}

	msg.UseHashid = c.DeterministicIDs

	if c.Debug {
		c.Logger.Debug("register payload: %s", print.MaybePrettyJSON(msg))
	}

	if _, err := c.register.Execute(ctx.UserContext(), msg); err != nil {
		c.Logger.Error("register failed", "email", msg.Email, "error", err)
		return ctx.Status(statusCode(err)).JSON(fiber.Map{
			"message": clientMessage(err, MsgRegistrationFailed),
		})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": MsgRegistered,
	})
}

// LoginPost handles POST /auth/login. Failures respond 200 with a message;
// clients branch on the message field, not the status.
func (c *Controller) LoginPost(ctx *fiber.Ctx) error {
	var msg LoginUserMessage
	if err := ctx.BodyParser(&msg); err != nil {
		c.Logger.Error("login: failed to parse payload", "error", err)
		return ctx.JSON(fiber.Map{
			"message": MsgLoginFieldsRequired,
		})
	}

	result, err := c.login.Execute(ctx.UserContext(), msg)
	if err != nil {
		c.Logger.Info("login failed", "email", msg.Email, "error", err)
		return ctx.JSON(fiber.Map{
			"message": clientMessage(err, MsgDatabaseError),
		})
	}

	c.setCookieToken(ctx, result.Token)

	return ctx.JSON(fiber.Map{
		"message": MsgLoginSuccess,
		"token":   result.Token,
		"user":    result.Credential,
	})
}

// LogoutPost handles POST /auth/logout. Tokens are stateless; issued tokens
// stay valid until expiry, only the cookie is dropped.
func (c *Controller) LogoutPost(ctx *fiber.Ctx) error {
	c.cookieDel(ctx)
	return ctx.JSON(fiber.Map{
		"message": MsgLoggedOut,
	})
}

// CheckToken handles GET /auth/check-token.
func (c *Controller) CheckToken(ctx *fiber.Ctx) error {
	token := ctx.Cookies(c.CookieName)
	if token == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": MsgNoToken,
		})
	}

	claims, err := c.tokens.Validate(token)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			c.Logger.Info("check-token rejected", "text_code", richErr.TextCode)
		}
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": MsgInvalidToken,
		})
	}

	return ctx.JSON(fiber.Map{
		"message": MsgTokenValid,
		"userId":  claims.UID,
	})
}

func (c *Controller) setCookieToken(ctx *fiber.Ctx, val string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.CookieName,
		Value:    val,
		Expires:  time.Now().Add(c.CookieMaxAge),
		MaxAge:   int(c.CookieMaxAge / time.Second),
		HTTPOnly: true,
		Secure:   c.SecureCookie,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

func (c *Controller) cookieDel(ctx *fiber.Ctx) {
	ctx.Cookie(&fiber.Cookie{
		Name:     c.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   c.SecureCookie,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}
