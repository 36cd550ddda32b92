// internal/interfaces/http/handlers/user.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/pos-backend/internal/domain/user"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"github.com/your-org/pos-backend/internal/pkg/types"
)

// UserHandler handles staff account endpoints
type UserHandler struct {
	userService *user.Service
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "Users retrieved successfully", users)
}

// Create handles POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req user.CreateRequest
	if !bindJSON(c, "user.Create", &req) {
		return
	}

	created, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, "User created successfully", created)
}

// Delete handles DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	var actorID types.ID
	if identity, ok := middleware.GetIdentity(c); ok {
		actorID = identity.UserID()
	}

	if err := h.userService.Delete(c.Request.Context(), types.ID(c.Param("id")), actorID); err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, "User deleted successfully", nil)
}
