package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"alphafarm/entities"
	"alphafarm/pkg/auth/otp"
	"alphafarm/pkg/auth/repository"
	"alphafarm/pkg/auth/service"
	"alphafarm/pkg/auth/token"
)

const otpDigits = 4

type Options struct {
	OTPTTL     time.Duration
	OTPDevCode string // fixed code echoed back to the caller; empty in production
}

type authSvc struct {
	repo   repository.AccountRepository
	otps   otp.Store
	tokens *token.Service
	opts   Options
	log    *zap.Logger
}

func NewAuthService(r repository.AccountRepository, otps otp.Store, tokens *token.Service, opts Options, log *zap.Logger) service.AuthService {
	if opts.OTPTTL <= 0 {
		opts.OTPTTL = 5 * time.Minute
	}
	return &authSvc{repo: r, otps: otps, tokens: tokens, opts: opts, log: log}
}

func validPhone(p string) bool {
	if len(p) != 10 {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func normMode(m string) (string, error) {
	m = strings.ToLower(strings.TrimSpace(m))
	if m == "" {
		m = service.ModeLogin
	}
	if m != service.ModeLogin && m != service.ModeSignup {
		return "", service.ErrInvalidMode
	}
	return m, nil
}

// registered reports whether either an account or a farmer uses the phone.
func (s *authSvc) registered(ctx context.Context, phone string) (bool, error) {
	_, err := s.repo.FindByPhone(ctx, phone)
	switch {
	case err == nil:
		return true, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, err
	}
	return s.repo.FarmerExists(ctx, phone)
}

func (s *authSvc) SendOTP(ctx context.Context, phone, mode string) (string, error) {
	phone = strings.TrimSpace(phone)
	if !validPhone(phone) {
		return "", service.ErrInvalidPhone
	}
	mode, err := normMode(mode)
	if err != nil {
		return "", err
	}
	exists, err := s.registered(ctx, phone)
	if err != nil {
		return "", fmt.Errorf("lookup phone: %w", err)
	}
	if mode == service.ModeLogin && !exists {
		return "", service.ErrAccountNotFound
	}
	if mode == service.ModeSignup && exists {
		return "", service.ErrAccountExists
	}

	code := s.opts.OTPDevCode
	if code == "" {
		if code, err = otp.Generate(otpDigits); err != nil {
			return "", err
		}
	}
	if err := s.otps.Save(ctx, phone, code, s.opts.OTPTTL); err != nil {
		return "", err
	}
	s.log.Info("otp issued", zap.String("phone", phone), zap.String("mode", mode))
	if s.opts.OTPDevCode != "" {
		return code, nil
	}
	return "", nil
}

func (s *authSvc) VerifyOTP(ctx context.Context, phone, code, name, mode string) (*service.Session, error) {
	phone, code, name = strings.TrimSpace(phone), strings.TrimSpace(code), strings.TrimSpace(name)
	if phone == "" || code == "" {
		return nil, service.ErrMissingOTP
	}
	mode, err := normMode(mode)
	if err != nil {
		return nil, err
	}
	ok, err := s.otps.Consume(ctx, phone, code)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, service.ErrInvalidOTP
	}

	var (
		acc    *entities.Account
		farmer *entities.Farmer
	)
	if mode == service.ModeLogin {
		acc, err = s.repo.FindByPhone(ctx, phone)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, service.ErrAccountNotFound
		}
		if err != nil {
			return nil, err
		}
		farmer, err = s.ensureFarmer(ctx, acc, name)
		if err != nil {
			return nil, err
		}
	} else {
		exists, err := s.registered(ctx, phone)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, service.ErrAccountExists
		}
		if name == "" {
			name = phone
		}
		acc = &entities.Account{Phone: phone, Name: name, Role: entities.RoleFarmer}
		farmer = &entities.Farmer{Name: name, Phone: phone, ApprovalStatus: entities.StatusPending}
		if err := s.repo.CreateFarmerAccount(ctx, acc, farmer); err != nil {
			return nil, fmt.Errorf("create account: %w", err)
		}
	}

	tok, err := s.tokens.Issue(acc.AccountID, farmer.FarmerID, entities.RoleFarmer)
	if err != nil {
		return nil, err
	}
	return &service.Session{
		Token: tok,
		User:  service.UserView{ID: farmer.FarmerID, Name: farmer.Name, Phone: farmer.Phone, Role: entities.RoleFarmer},
	}, nil
}

// ensureFarmer heals accounts that lost their farmer profile.
func (s *authSvc) ensureFarmer(ctx context.Context, acc *entities.Account, name string) (*entities.Farmer, error) {
	f, err := s.repo.FindFarmer(ctx, acc.AccountID)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if name == "" {
		name = acc.Name
	}
	if name == "" {
		name = acc.Phone
	}
	f = &entities.Farmer{AccountID: acc.AccountID, Name: name, Phone: acc.Phone, ApprovalStatus: entities.StatusPending}
	if err := s.repo.CreateFarmer(ctx, f); err != nil {
		return nil, fmt.Errorf("create farmer: %w", err)
	}
	s.log.Warn("farmer profile recreated", zap.Uint("account_id", acc.AccountID))
	return f, nil
}

func (s *authSvc) CancelSignup(ctx context.Context, accountID uint) error {
	return s.repo.DeleteSignup(ctx, accountID)
}

func (s *authSvc) AdminLogin(ctx context.Context, phone, password string) (*service.Session, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" || password == "" {
		return nil, service.ErrInvalidCredentials
	}
	acc, err := s.repo.FindByPhone(ctx, phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, service.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, service.ErrInvalidCredentials
	}
	if acc.Role != entities.RoleAdmin {
		return nil, service.ErrNotAdmin
	}
	tok, err := s.tokens.Issue(acc.AccountID, 0, entities.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &service.Session{
		Token: tok,
		User:  service.UserView{ID: acc.AccountID, Name: acc.Name, Phone: acc.Phone, Role: entities.RoleAdmin},
	}, nil
}

func (s *authSvc) Account(ctx context.Context, accountID uint) (*entities.Account, error) {
	return s.repo.FindByID(ctx, accountID)
}

func (s *authSvc) FirstAdmin(ctx context.Context) (*entities.Account, error) {
	return s.repo.FirstAdmin(ctx)
}
