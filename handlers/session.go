package handlers

import (
	"errors"
	"net/http"

	"stayhub/services/session"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the session lifecycle over HTTP.
type SessionHandler struct {
	Sessions session.SessionManager
}

// NewSessionHandler constructs a session handler.
func NewSessionHandler(sessions session.SessionManager) *SessionHandler {
	return &SessionHandler{Sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler handles POST /api/users/login.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sess, err := h.Sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sess)
}

// RegisterHandler handles POST /api/users/register.
func (h *SessionHandler) RegisterHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	sess, err := h.Sessions.Register(c.Request.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		writeSessionError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

// LogoutHandler handles POST /api/users/logout. Safe to call repeatedly.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	if err := h.Sessions.Logout(c.Request.Context()); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "logout failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// MeHandler handles GET /api/users/me: the current session snapshot.
func (h *SessionHandler) MeHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Sessions.Session())
}

func writeSessionError(c *gin.Context, err error) {
	var serr *session.SessionError
	if errors.As(err, &serr) {
		utils.JSONError(c, serr.HTTPStatus(), serr.Message, serr.Code)
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "session operation failed", err.Error())
}
