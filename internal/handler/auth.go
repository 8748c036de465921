package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/auth"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/middleware"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/models"
	"github.com/IdzhansKhairi/Personal-Financial-Tracker/internal/util"
)

// AuthHandler exposes login, session check, logout, password change
// and profile update.
type AuthHandler struct {
	Svc          *auth.Service
	SessionTTL   time.Duration
	CookieSecure bool
}

// NewAuthHandler wires the auth core to the HTTP layer.
func NewAuthHandler(svc *auth.Service, sessionTTL time.Duration, cookieSecure bool) *AuthHandler {
	if sessionTTL <= 0 {
		sessionTTL = auth.DefaultSessionTTL
	}
	return &AuthHandler{
		Svc:          svc,
		SessionTTL:   sessionTTL,
		CookieSecure: cookieSecure,
	}
}

// publicUser strips a user down to the fields the client may see.
func publicUser(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, token,
		int(h.SessionTTL.Seconds()), "/", "", h.CookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.CookieSecure, true)
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials, issues the session cookie and returns
// the public user fields. Every failure mode looks the same.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Username and password are required")
		return
	}

	user, token, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Invalid username or password")
		return
	}
	if err != nil {
		_ = c.Error(err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}

	h.setSessionCookie(c, token)
	util.Success(c, util.Response{
		"user": publicUser(user),
	})
}

// Session reports the current user, or user:null without a live session.
func (h *AuthHandler) Session(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookieName)

	sess, err := h.Svc.Resolve(c.Request.Context(), token)
	if err != nil {
		_ = c.Error(err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}
	if sess == nil {
		util.Success(c, util.Response{"user": nil})
		return
	}
	util.Success(c, util.Response{"user": publicUser(&sess.User)})
}

// Logout deletes the server-side session and clears the cookie.
// Always succeeds, even for a token that never existed.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(middleware.SessionCookieName)

	if err := h.Svc.Logout(c.Request.Context(), token); err != nil {
		_ = c.Error(err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Internal server error")
		return
	}

	h.clearSessionCookie(c)
	util.Success(c, util.Response{
		"message": "Logged out",
	})
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ChangePassword validates and applies a password change for the
// authenticated user.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized - Please log in")
		return
	}

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "All fields are required")
		return
	}

	err := h.Svc.ChangePassword(c.Request.Context(), user.ID,
		req.CurrentPassword, req.NewPassword, req.ConfirmPassword,
		middleware.CurrentToken(c))
	if auth.IsValidation(err) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err != nil {
		_ = c.Error(err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to change password")
		return
	}

	util.Success(c, util.Response{
		"message": "Password changed successfully",
	})
}

type updateProfileReq struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
}

// UpdateProfile validates and persists the five public profile fields.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Unauthorized - Please log in")
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "All fields are required")
		return
	}

	updated, err := h.Svc.UpdateProfile(c.Request.Context(), user.ID, auth.ProfileUpdate{
		Username:    req.Username,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
	})
	if auth.IsValidation(err) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	if err != nil {
		_ = c.Error(err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Failed to update profile")
		return
	}

	util.Success(c, util.Response{
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":          updated.ID,
			"username":    updated.Username,
			"email":       updated.Email,
			"firstName":   updated.FirstName,
			"lastName":    updated.LastName,
			"phoneNumber": updated.PhoneNumber,
		},
	})
}
