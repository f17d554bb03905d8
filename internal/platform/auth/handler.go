package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	issuer *TokenIssuer
	users  UserStore
}

func NewHandler(issuer *TokenIssuer, users UserStore) *Handler {
	return &Handler{issuer: issuer, users: users}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/login", h.Login)
}

// TokenResponse is the /login success body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges form-encoded admin credentials for a bearer token.
func (h *Handler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if _, err := Authenticate(h.users, username, password); err != nil {
		return unauthorized(c, "incorrect username or password")
	}

	token, err := h.issuer.Issue(username)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not issue token")
	}

	return c.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}
