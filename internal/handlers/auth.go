package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"clinic-opd-server/internal/config"
	"clinic-opd-server/internal/mail"
	"clinic-opd-server/internal/middleware"
	"clinic-opd-server/internal/models"
	"clinic-opd-server/internal/store"
	"clinic-opd-server/internal/utils"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	Users  store.UserStore
	Otps   store.OtpStore
	Mailer mail.Mailer
	Cfg    *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users store.UserStore, otps store.OtpStore, mailer mail.Mailer, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Users: users, Otps: otps, Mailer: mailer, Cfg: cfg}
}

// SignupRequest represents the request body for user registration.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=accountant receptionist"`
}

// Signup handles user registration.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" {
		utils.BadRequest(c, "Username is required")
		return
	}
	if email == "" {
		utils.BadRequest(c, "Email is required")
		return
	}

	existing, err := h.Users.FindTaken(username, email)
	if err == nil {
		if existing.Username == username {
			utils.BadRequest(c, "Username already exists")
		} else {
			utils.BadRequest(c, "Email already exists")
		}
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	user := models.User{
		Username: username,
		Email:    email,
		Role:     models.UserRole(req.Role),
	}
	if err := user.SetPassword(req.Password, h.Cfg.BcryptCost); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}

	if err := h.Users.Create(&user); err != nil {
		utils.InternalServerError(c, "Failed to create user: "+err.Error())
		return
	}

	token, err := utils.GenerateAccessToken(&user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Created(c, "User created successfully", gin.H{
		"accessToken": token,
		"user":        user.Sanitize(),
	})
}

// SigninRequest represents the request body for user login. Username
// accepts either the username or the email address.
type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=accountant receptionist"`
}

// Signin handles user login.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	login := strings.ToLower(strings.TrimSpace(req.Username))
	user, err := h.Users.FindByLogin(login, models.UserRole(req.Role))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Unauthorized(c, "Invalid username/email or password")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid username/email or password")
		return
	}

	token, err := utils.GenerateAccessToken(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", gin.H{
		"accessToken": token,
		"user":        user.Sanitize(),
	})
}

// SendOtpRequest represents the request body for requesting an OTP.
type SendOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SendOtp generates a fresh verification code and mails it. Any previous
// codes for the address are invalidated.
func (h *AuthHandler) SendOtp(c *gin.Context) {
	var req SendOtpRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.Users.FindByEmail(email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "Email not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	code, err := utils.GenerateOtpCode()
	if err != nil {
		utils.InternalServerError(c, "Failed to generate OTP: "+err.Error())
		return
	}

	expiresAt := time.Now().Add(time.Duration(h.Cfg.OTPExpireMinutes) * time.Minute)
	if err := h.Otps.Replace(email, code, expiresAt); err != nil {
		utils.InternalServerError(c, "Failed to store OTP: "+err.Error())
		return
	}

	body := fmt.Sprintf("Your OTP is %s. It will expire in %d minutes.", code, h.Cfg.OTPExpireMinutes)
	if err := h.Mailer.Send(email, "Your OTP code", body); err != nil {
		utils.InternalServerError(c, "Failed to send OTP email: "+err.Error())
		return
	}

	utils.Success(c, "OTP sent successfully", nil)
}

// VerifyOtpRequest represents the request body for verifying an OTP.
type VerifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	Otp   string `json:"otp" binding:"required"`
}

// VerifyOtp checks a code, marks the user verified and consumes the code.
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	otp, err := h.Otps.Find(email, req.Otp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.BadRequest(c, "Invalid OTP")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if otp.Expired(time.Now()) {
		if err := h.Otps.Delete(otp.ID); err != nil {
			utils.InternalServerError(c, "Database error: "+err.Error())
			return
		}
		utils.BadRequest(c, "OTP expired")
		return
	}

	user, err := h.Users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if !user.IsVerified {
		user.IsVerified = true
		if err := h.Users.Save(user); err != nil {
			utils.InternalServerError(c, "Failed to update user: "+err.Error())
			return
		}
	}

	if err := h.Otps.Delete(otp.ID); err != nil {
		utils.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	token, err := utils.GenerateAccessToken(user, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, "OTP verified", gin.H{
		"accessToken": token,
		"user":        user.Sanitize(),
	})
}

// ResetPasswordRequest represents the request body for a password reset.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// ResetPassword rehashes the authenticated user's password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var req ResetPasswordRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	user, err := h.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := user.SetPassword(req.NewPassword, h.Cfg.BcryptCost); err != nil {
		utils.InternalServerError(c, "Failed to hash password: "+err.Error())
		return
	}
	if err := h.Users.Save(user); err != nil {
		utils.InternalServerError(c, "Failed to update user: "+err.Error())
		return
	}

	utils.Success(c, "Password updated successfully", nil)
}
