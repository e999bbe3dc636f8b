package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"bizportal/internal/authz"
	"bizportal/internal/data/entity"
	"bizportal/internal/data/repository"
	"bizportal/internal/dto/request"
	"bizportal/internal/dto/response"
	"bizportal/internal/metrics"
	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*PendingLogin, error)
	VerifyMFA(ctx context.Context, pendingUserID int64, req *request.VerifyMFARequest) (*AuthenticatedSession, error)
}

// PendingLogin is issued once the password is verified and a code was sent.
type PendingLogin struct {
	UserID int64
	Role   entity.UserRole
	Code   string
}

type AuthenticatedSession struct {
	UserID   int64
	Username string
	Role     entity.UserRole
	Landing  string
}

// CodeSender delivers a freshly issued login code to the account holder.
type CodeSender interface {
	SendCode(ctx context.Context, user *entity.User, code string) error
}

type logCodeSender struct {
	log *zap.Logger
}

// NewLogCodeSender writes codes to the application log. Development only.
func NewLogCodeSender(log *zap.Logger) CodeSender {
	return &logCodeSender{log: log.With(zap.String("component", "code_sender"))}
}

func (s *logCodeSender) SendCode(_ context.Context, user *entity.User, code string) error {
	s.log.Info("MFA code generated",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
		zap.String("mfa_code", code),
	)
	return nil
}

type authService struct {
	repo   *repository.Repository
	sender CodeSender
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	sender CodeSender,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		sender: sender,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.UserResponse, error) {
	// 1. Validate
	if err := validate(req); err != nil {
		s.log.Warn("Register validation failed", zap.Error(err))
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	// 2. Username or email already taken
	existing, err := s.repo.User.FindByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing account: %w", err)
	}
	if existing != nil {
		metrics.RegistrationsTotal.WithLabelValues("exists").Inc()
		return nil, ErrAccountExists
	}

	// 3. Hash password
	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Phone:        req.Phone,
		Role:         entity.UserRole(req.Role),
	}

	// 4. Insert under the role quota
	err = s.repo.User.CreateWithRoleQuota(ctx, user)
	switch {
	case errors.Is(err, repository.ErrRoleQuotaExceeded):
		s.log.Warn("Role quota reached", zap.String("role", req.Role))
		metrics.RegistrationsTotal.WithLabelValues("quota").Inc()
		return nil, ErrRoleQuotaExceeded
	case errors.Is(err, repository.ErrDuplicate):
		metrics.RegistrationsTotal.WithLabelValues("exists").Inc()
		return nil, ErrAccountExists
	case err != nil:
		return nil, fmt.Errorf("create account: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	s.log.Info("User registered",
		zap.Int64("user_id", user.ID),
		zap.String("role", string(user.Role)),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*PendingLogin, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		utils.BurnPasswordCheck(req.Password)
		s.log.Warn("User not found for login", zap.String("username", req.Username))
		metrics.LoginAttemptsTotal.WithLabelValues("password", "failure").Inc()
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.Int64("user_id", user.ID))
		metrics.LoginAttemptsTotal.WithLabelValues("password", "failure").Inc()
		return nil, ErrInvalidCredentials
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		s.log.Error("Failed to generate MFA code", zap.Error(err))
		return nil, fmt.Errorf("generate MFA code: %w", err)
	}

	if err := s.repo.MFA.Issue(ctx, user.ID, code); err != nil {
		return nil, fmt.Errorf("store MFA code: %w", err)
	}

	if err := s.sender.SendCode(ctx, user, code); err != nil {
		s.log.Error("Failed to send MFA code", zap.Error(err), zap.Int64("user_id", user.ID))
		return nil, fmt.Errorf("send MFA code: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("password", "success").Inc()
	s.log.Info("Password verified, MFA code issued", zap.Int64("user_id", user.ID))

	return &PendingLogin{UserID: user.ID, Role: user.Role, Code: code}, nil
}

func (s *authService) VerifyMFA(ctx context.Context, pendingUserID int64, req *request.VerifyMFARequest) (*AuthenticatedSession, error) {
	if pendingUserID == 0 {
		return nil, ErrNoPendingLogin
	}

	// A malformed code is reported like a wrong one.
	if err := validate(req); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("mfa", "failure").Inc()
		return nil, ErrInvalidCode
	}
	code := req.Code

	user, err := s.repo.User.FindByID(ctx, pendingUserID)
	if err != nil {
		return nil, fmt.Errorf("find pending user: %w", err)
	}
	if user == nil || user.MFACode == nil ||
		subtle.ConstantTimeCompare([]byte(*user.MFACode), []byte(code)) != 1 {
		metrics.LoginAttemptsTotal.WithLabelValues("mfa", "failure").Inc()
		return nil, ErrInvalidCode
	}

	// Clearing is conditional on the code still being stored, so a replay
	// racing this request cannot also succeed.
	consumed, err := s.repo.MFA.Consume(ctx, user.ID, code)
	if err != nil {
		return nil, fmt.Errorf("consume MFA code: %w", err)
	}
	if !consumed {
		metrics.LoginAttemptsTotal.WithLabelValues("mfa", "failure").Inc()
		return nil, ErrInvalidCode
	}

	metrics.LoginAttemptsTotal.WithLabelValues("mfa", "success").Inc()
	s.log.Info("User logged in",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)

	return &AuthenticatedSession{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Landing:  authz.LandingFor(user.Role),
	}, nil
}
