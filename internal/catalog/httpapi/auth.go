package httpapi

import (
	"net/http"

	"babilonia.local/gee"
	"babilonia.local/internal/platform/auth"
	"golang.org/x/crypto/bcrypt"
)

// Credentials is the single admin principal. There is no user table;
// the shop has one owner.
type Credentials struct {
	User         string
	PasswordHash string // bcrypt, see cmd/tools/hashpass
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewLoginHandler(ts auth.TokenService, creds Credentials) gee.HandlerFunc {
	return func(ctx *gee.Context) {
		var req loginRequest
		if err := ctx.BindJSON(&req); err != nil {
			return
		}

		if creds.PasswordHash == "" {
			// no hash configured means the admin surface is disabled
			ctx.AbortWithError(http.StatusUnauthorized, "admin login disabled")
			return
		}
		if req.Username != creds.User ||
			bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(req.Password)) != nil {
			ctx.AbortWithError(http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := ts.Sign(creds.User, "admin")
		if err != nil {
			ctx.AbortWithError(http.StatusInternalServerError, "token signing failed")
			return
		}

		ctx.JSON(http.StatusOK, gee.H{
			"success": true,
			"token":   token,
		})
	}
}
