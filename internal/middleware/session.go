package middleware

import (
	"net/http"

	"giftlist-api/internal/models"
	"giftlist-api/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionTokenHeader carries the admin session token issued at login.
const SessionTokenHeader = "X-Session-Token"

// AdminSession gates owner-only routes behind the session guard. The route
// must carry a :listId parameter; the token must belong to an unexpired
// session for that exact list.
func AdminSession(guard session.Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		listID, err := uuid.Parse(c.Param("listId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Code:    "INVALID_LIST_ID",
				Message: "Invalid list ID format",
			})
			c.Abort()
			return
		}

		token := c.GetHeader(SessionTokenHeader)
		if !guard.Validate(listID, token) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Code:    "SESSION_REQUIRED",
				Message: "Admin session required. Log in with your email and access code.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
