package auth

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// Registrar executes a user registration request
type Registrar interface {
	Execute(ctx context.Context, event RegisterUserMessage) error
}

// SignupPayload carries the sign-up form fields
type SignupPayload struct {
	FirstName   string `form:"firstName" json:"first_name"`
	LastName    string `form:"lastName" json:"last_name"`
	Gender      string `form:"gender" json:"gender"`
	DateOfBirth string `form:"dob" json:"dob"`
	Email       string `form:"email" json:"email"`
	Password    string `form:"password" json:"password"`
}

func (p SignupPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.FirstName, validation.Required),
		validation.Field(&p.LastName, validation.Required),
		validation.Field(&p.Gender, validation.Required),
		validation.Field(&p.DateOfBirth, validation.Required),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

// SigninPayload carries the sign-in form fields
type SigninPayload struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (p SigninPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

func (p SigninPayload) GetIdentifier() string { return p.Email }
func (p SigninPayload) GetPassword() string   { return p.Password }

// UsersController serves the sign-up, sign-in, and dashboard pages plus the
// token mint endpoint. Session state lives entirely in the signed cookie.
type UsersController struct {
	auther     HTTPAuthenticator
	tokens     Authenticator
	registrar  Registrar
	contextKey string
	logger     Logger
}

func NewUsersController(auther HTTPAuthenticator, tokens Authenticator, registrar Registrar, contextKey string) *UsersController {
	return &UsersController{
		auther:     auther,
		tokens:     tokens,
		registrar:  registrar,
		contextKey: contextKey,
		logger:     defLogger{},
	}
}

func (ctrl *UsersController) WithLogger(l Logger) *UsersController {
	ctrl.logger = l
	return ctrl
}

// SignUpShow renders the sign-up form. Authenticated users are sent to the
// dashboard instead.
func (ctrl *UsersController) SignUpShow(c *fiber.Ctx) error {
	if HasSession(c, ctrl.contextKey) {
		return c.Redirect("/users/dashboard")
	}

	return c.Render("users/sign-up", fiber.Map{
		"metaTitle": "Stateless Authentication Example | Sign Up",
	})
}

// SignUpPost validates the form and registers the user. Nothing is written
// to the store when validation fails.
func (ctrl *UsersController) SignUpPost(c *fiber.Ctx) error {
	if HasSession(c, ctrl.contextKey) {
		return c.Redirect("/users/dashboard")
	}

	payload := SignupPayload{}
	if err := c.BodyParser(&payload); err != nil {
		ctrl.logger.Error("SignUpPost body parser: %s", err)
		return c.Status(fiber.StatusBadRequest).Render("users/sign-up", fiber.Map{
			"metaTitle": "Stateless Authentication Example | Sign Up",
			"status":    "failure",
			"error":     "All fields are required.",
		})
	}

	if err := payload.Validate(); err != nil {
		ctrl.logger.Info("SignUpPost validation failed: %s", err)
		return c.Status(fiber.StatusBadRequest).Render("users/sign-up", fiber.Map{
			"metaTitle": "Stateless Authentication Example | Sign Up",
			"status":    "failure",
			"error":     "All fields are required.",
		})
	}

	msg := RegisterUserMessage{
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Gender:      payload.Gender,
		DateOfBirth: payload.DateOfBirth,
		Email:       payload.Email,
		Password:    payload.Password,
	}

	if err := ctrl.registrar.Execute(c.Context(), msg); err != nil {
		ctrl.logger.Error("SignUpPost registration failed: %s", err)
		return c.Status(fiber.StatusInternalServerError).Render("users/sign-up", fiber.Map{
			"metaTitle": "Stateless Authentication Example | Sign Up",
			"status":    "failure",
			"error":     "Something went wrong. Please try again.",
		})
	}

	return c.Status(fiber.StatusCreated).Render("users/sign-up", fiber.Map{
		"metaTitle": "Stateless Authentication Example | Sign Up",
		"status":    "success",
		"message":   "User sign-up successful.",
	})
}

// SignInShow renders the sign-in form
func (ctrl *UsersController) SignInShow(c *fiber.Ctx) error {
	if HasSession(c, ctrl.contextKey) {
		return c.Redirect("/users/dashboard")
	}

	return c.Render("users/sign-in", fiber.Map{
		"metaTitle": "Stateless Authentication Example | Sign In",
	})
}

// SignInPost verifies credentials and sets the session cookie. Unknown
// email and wrong password render the same 401 message; anything else is an
// infrastructure failure and renders the generic 500 page.
func (ctrl *UsersController) SignInPost(c *fiber.Ctx) error {
	if HasSession(c, ctrl.contextKey) {
		return c.Redirect("/users/dashboard")
	}

	payload := SigninPayload{}
	if err := c.BodyParser(&payload); err != nil {
		ctrl.logger.Error("SignInPost body parser: %s", err)
		return c.Status(fiber.StatusBadRequest).Render("users/sign-in", fiber.Map{
			"metaTitle": "Stateless Authentication Example | Sign In",
			"error":     "Email and Password are required",
		})
	}

	if err := payload.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("users/sign-in", fiber.Map{
			"metaTitle": "Stateless Authentication Example | Sign In",
			"error":     "Email and Password are required",
		})
	}

	if err := ctrl.auther.Login(c, payload); err != nil {
		if errors.Is(err, ErrMismatchedHashAndPassword) || errors.Is(err, ErrIdentityNotFound) {
			ctrl.logger.Info("SignInPost login rejected for %s", payload.Email)
			return c.Status(fiber.StatusUnauthorized).Render("users/sign-in", fiber.Map{
				"metaTitle": "Stateless Authentication Example | Sign In",
				"error":     "Failed to login. Email or Password incorrect.",
			})
		}

		ctrl.logger.Error("SignInPost login failed: %s", err)
		return c.Status(fiber.StatusInternalServerError).Render("users/sign-in", fiber.Map{
			"metaTitle": "Stateless Authentication Example | Sign In",
			"error":     "Something went wrong. Please try again.",
		})
	}

	return c.Redirect("/users/dashboard")
}

// Dashboard renders the protected page for the session owner
func (ctrl *UsersController) Dashboard(c *fiber.Ctx) error {
	session, err := GetSession(c, ctrl.contextKey)
	if err != nil {
		return c.Redirect("/users/sign-in")
	}

	return c.Render("users/dashboard", fiber.Map{
		"metaTitle":    "Stateless Authentication Example | Dashboard",
		"userFullName": session.GetFullName(),
	})
}

// SignOut clears the session cookie and redirects to sign-in. The token
// itself remains valid until expiry.
func (ctrl *UsersController) SignOut(c *fiber.Ctx) error {
	if !HasSession(c, ctrl.contextKey) {
		return c.Redirect("/users/sign-in")
	}

	ctrl.auther.Logout(c)

	return c.Redirect("/users/sign-in")
}

// AuthToken mints a session token for the given user id. Route guards are
// expected to restrict this to administrators.
func (ctrl *UsersController) AuthToken(c *fiber.Ctx) error {
	userID := c.Params("userId")
	if _, err := uuid.Parse(userID); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid User ID")
	}

	token, err := ctrl.tokens.TokenForUser(c.Context(), userID)
	if err != nil {
		if repository.IsRecordNotFound(err) || errors.Is(err, ErrIdentityNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("User not found")
		}
		ctrl.logger.Error("AuthToken mint failed: %s", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
	}

	return c.Status(fiber.StatusOK).SendString(token)
}

// RegisterUserRoutes mounts the controller under /users. The adminOnly
// handler guards the token mint endpoint.
func RegisterUserRoutes(app fiber.Router, ctrl *UsersController, adminOnly fiber.Handler) {
	users := app.Group("/users")

	users.Get("/sign-up", ctrl.SignUpShow)
	users.Post("/sign-up", ctrl.SignUpPost)

	users.Get("/sign-in", ctrl.SignInShow)
	users.Post("/sign-in", ctrl.SignInPost)

	users.Get("/sign-out", ctrl.SignOut)

	users.Get("/dashboard", ctrl.Dashboard)

	users.Get("/:userId/auth-token", adminOnly, ctrl.AuthToken)
}
