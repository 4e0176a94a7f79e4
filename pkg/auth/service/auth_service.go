package service

import (
	"context"
	"errors"

	"alphafarm/entities"
)

const (
	ModeLogin  = "login"
	ModeSignup = "signup"
)

var (
	ErrInvalidPhone       = errors.New("Valid 10-digit phone number is required")
	ErrInvalidMode        = errors.New("Invalid mode. Use 'login' or 'signup'.")
	ErrAccountNotFound    = errors.New("Account not found for this mobile number. Please sign up first.")
	ErrAccountExists      = errors.New("Account already exists for this mobile number. Please login instead.")
	ErrMissingOTP         = errors.New("Phone and OTP required")
	ErrInvalidOTP         = errors.New("Invalid OTP")
	ErrInvalidCredentials = errors.New("Invalid phone or password")
	ErrNotAdmin           = errors.New("Not admin")
)

// UserView is the user block returned with a token.
type UserView struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  string `json:"role"`
}

type Session struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

type AuthService interface {
	// SendOTP returns the code when running with a dev code, "" otherwise.
	SendOTP(ctx context.Context, phone, mode string) (string, error)
	VerifyOTP(ctx context.Context, phone, code, name, mode string) (*Session, error)
	CancelSignup(ctx context.Context, accountID uint) error
	AdminLogin(ctx context.Context, phone, password string) (*Session, error)
	Account(ctx context.Context, accountID uint) (*entities.Account, error)
	FirstAdmin(ctx context.Context) (*entities.Account, error)
}
