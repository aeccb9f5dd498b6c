package handlers

import (
	"errors"
	"net/http"

	userRepo "stayhub/database/repository/user"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the account administration surface. Routes are
// mounted behind the admin middleware so handlers trust the caller.
type AdminHandler struct {
	Users userRepo.UserRepository
}

// NewAdminHandler constructs an admin handler.
func NewAdminHandler(users userRepo.UserRepository) *AdminHandler {
	return &AdminHandler{Users: users}
}

// ListUsersHandler handles GET /api/admin/users.
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list users", err.Error())
		return
	}
	c.JSON(http.StatusOK, users)
}

// DeleteUserHandler handles DELETE /api/admin/users/:id. Reservations are
// never deleted; only the account record is removed.
func (h *AdminHandler) DeleteUserHandler(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "user not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete user", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
