package client

import (
	"context"
	"net/http"

	"github.com/hireai/portal/internal/models"
)

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

type SignupRequest struct {
	FullName string      `json:"full_name,omitempty" validate:"max=255"`
	Username string      `json:"username" validate:"required,min=3,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,min=8"`
	Role     models.Role `json:"role" validate:"required,oneof=candidate recruiter"`
}

// OTP purposes understood by the backend.
const (
	PurposeSignup        = "signup"
	PurposeResetPassword = "reset_password"
)

type SendOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	Purpose string `json:"purpose" validate:"required,oneof=signup reset_password"`
}

type VerifyOTPRequest struct {
	Email   string `json:"email" validate:"required,email"`
	OTP     string `json:"otp" validate:"required,len=6,numeric"`
	Purpose string `json:"purpose" validate:"required,oneof=signup reset_password"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Ack is the body of the OTP and password endpoints.
type Ack struct {
	Message string `json:"message,omitempty"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*models.LoginResult, error) {
	if err := check("client.Login", req); err != nil {
		return nil, err
	}
	var out models.LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &out, "Login failed. Please try again."); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	if err := check("client.Signup", req); err != nil {
		return nil, err
	}
	var out models.User
	if err := c.do(ctx, http.MethodPost, "/auth/signup", nil, req, &out, "Something went wrong."); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SendOTP(ctx context.Context, req SendOTPRequest) (*Ack, error) {
	if err := check("client.SendOTP", req); err != nil {
		return nil, err
	}
	var out Ack
	if err := c.do(ctx, http.MethodPost, "/auth/send-otp", nil, req, &out, "Failed to send OTP"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*Ack, error) {
	if err := check("client.VerifyOTP", req); err != nil {
		return nil, err
	}
	var out Ack
	if err := c.do(ctx, http.MethodPost, "/auth/verify-otp", nil, req, &out, "Invalid or expired OTP"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) (*Ack, error) {
	if err := check("client.ResetPassword", req); err != nil {
		return nil, err
	}
	var out Ack
	if err := c.do(ctx, http.MethodPost, "/auth/reset-password", nil, req, &out, "Failed to reset password"); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user the bearer token belongs to.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out, "Failed to load user"); err != nil {
		return nil, err
	}
	return &out, nil
}
