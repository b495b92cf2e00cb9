package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/portal/auth-service/internal/core/domain"
	"github.com/portal/auth-service/internal/core/ports"
)

// SessionBinder attaches tokens to, and removes them from, the caller's session.
type SessionBinder interface {
	Bind(c echo.Context, token string) error
	Clear(c echo.Context) error
}

type AuthHandler struct {
	authService ports.AuthService
	sessions    SessionBinder
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, sessions SessionBinder, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, log: log}
}

type registerRequest struct {
	FullName string `json:"namaLengkap" validate:"required"`
	Email    string `json:"email"       validate:"required,email"`
	Password string `json:"password"    validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type loginData struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type loginResponse struct {
	Data loginData `json:"data"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

const (
	msgRegistered         = "Registration successful. Please check your email for verification."
	msgRegistrationFailed = "Registration failed."
	msgInvalidCredentials = "Invalid email or password"
	msgLoginFailed        = "Failed to login"
	msgUserNotFound       = "User not found"
	msgServerError        = "Server error"
	msgProtected          = "Protected route accessed successfully"
	msgLoggedOut          = "Logged out successfully"
	msgLogoutFailed       = "Failed to logout"
)

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		h.log.Info().Err(err).Msg("registration rejected")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: msgRegistrationFailed})
	}

	_, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		evt := h.log.Error()
		if errors.Is(err, domain.ErrUserExists) || errors.Is(err, domain.ErrValidation) {
			evt = h.log.Info()
		}
		evt.Err(err).Msg("registration failed")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: msgRegistrationFailed})
	}

	return c.JSON(http.StatusCreated, messageResponse{Message: msgRegistered})
}

// Login authenticates a user, binds the token to the session and returns it.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, errorResponse{Error: msgInvalidCredentials})
		}
		h.log.Error().Err(err).Msg("login failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgLoginFailed})
	}

	if err := h.sessions.Bind(c, token); err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID).Msg("bind session failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgLoginFailed})
	}

	return c.JSON(http.StatusOK, loginResponse{Data: loginData{Token: token, Message: "success"}})
}

// User returns the profile of the authenticated user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  messageResponse
// @Failure      500  {object}  messageResponse
// @Router       /user [get]
func (h *AuthHandler) User(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, messageResponse{Message: msgUserNotFound})
		}
		h.log.Error().Err(err).Str("user_id", userID).Msg("load current user failed")
		return c.JSON(http.StatusInternalServerError, messageResponse{Message: msgServerError})
	}

	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Protected is a gate-only example route.
//
// @Summary      Protected example
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /protected [get]
func (h *AuthHandler) Protected(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: msgProtected})
}

// Logout clears the session token. It succeeds whether or not the caller was
// logged in.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      500  {object}  errorResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Clear(c); err != nil {
		h.log.Error().Err(err).Msg("clear session failed")
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: msgLogoutFailed})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msgLoggedOut})
}
