package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/auth"
	apperrors "github.com/Anuj1063/SDLC-Expence-Tracker/internal/errors"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/mail"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/model"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/repository"
)

const (
	bcryptCost = 10
	// otpValidity is how long an OTP stays valid after issuance.
	otpValidity = 15 * time.Minute
)

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// TokenPair bundles a freshly issued access and refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService handles the full authentication and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, error)
	VerifyOTP(ctx context.Context, email, otp string) error
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*TokenPair, *model.User, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	ForgetPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password, confirmPassword string) error
	UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
	Logout(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	userRepo repository.UserRepository
	otpRepo  repository.OtpRepository
	tokens   *auth.TokenService
	mailer   mail.Mailer
	baseURL  string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	otpRepo repository.OtpRepository,
	tokens *auth.TokenService,
	mailer mail.Mailer,
	baseURL string,
) AuthService {
	return &authService{
		userRepo: userRepo,
		otpRepo:  otpRepo,
		tokens:   tokens,
		mailer:   mailer,
		baseURL:  baseURL,
	}
}

// Register creates an unverified user and dispatches a verification OTP.
// A verified user already holding the email is a conflict; an unverified one
// is superseded so the registration can be retried.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}
	if existing != nil {
		if existing.IsVerified {
			return nil, apperrors.ErrEmailTaken
		}
		// the stale account still holds an OTP row referencing it, which
		// must go before the user row can
		if err := s.otpRepo.DeleteByUser(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("delete stale OTP records: %w", err)
		}
		if err := s.userRepo.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("supersede unverified user: %w", err)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if err := s.issueOTP(ctx, user); err != nil {
		return nil, fmt.Errorf("issue OTP: %w", err)
	}

	return user, nil
}

// VerifyOTP marks the user verified on a valid code. An expired code triggers
// an automatic resend before the expiry is reported.
func (s *authService) VerifyOTP(ctx context.Context, email, otp string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if user.IsVerified {
		return apperrors.ErrAlreadyVerified
	}

	record, err := s.otpRepo.FindByUserAndCode(ctx, user.ID, otp)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrInvalidOTP
		}
		return fmt.Errorf("find OTP record: %w", err)
	}

	if time.Now().After(record.CreatedAt.Add(otpValidity)) {
		if err := s.issueOTP(ctx, user); err != nil {
			return fmt.Errorf("reissue OTP: %w", err)
		}
		return apperrors.ErrOTPExpired
	}

	if err := s.userRepo.MarkVerified(ctx, user.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	if err := s.mailer.SendWelcome(user.Email, user.FirstName); err != nil {
		// best effort, the account is already verified
		log.Printf("send welcome email to %s: %v", user.Email, err)
	}
	if err := s.otpRepo.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("delete OTP records: %w", err)
	}

	return nil
}

// ResendOTP discards any existing codes for the user and issues a fresh one.
func (s *authService) ResendOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}
	if user.IsVerified {
		return apperrors.ErrAlreadyVerified
	}

	return s.issueOTP(ctx, user)
}

// Login authenticates a verified user and persists the issued refresh token
// as the single active one, invalidating any previous session's token.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	pair, err := s.issueTokenPair(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// RefreshAccessToken rotates a valid refresh token into a new token pair.
// The presented token must exactly equal the stored one, which makes every
// refresh token valid exactly once: rotation invalidates its predecessor.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrRefreshTokenRequired
	}

	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	userID, err := claims.SubjectID()
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	return s.issueTokenPair(ctx, user)
}

// ForgetPassword emails a single-use, time-boxed reset link to the user.
func (s *authService) ForgetPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	token, err := s.tokens.GenerateResetToken(user.ID)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password/%s", s.baseURL, token)
	if err := s.mailer.SendPasswordReset(user.Email, user.FirstName, link); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// ResetPassword overwrites the password after verifying the reset token.
// The stored refresh token is deliberately left untouched, matching the
// existing behavior of the system.
func (s *authService) ResetPassword(ctx context.Context, token, password, confirmPassword string) error {
	if password != confirmPassword {
		return apperrors.ErrPasswordMismatch
	}

	claims, err := s.tokens.ValidateResetToken(token)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}
	userID, err := claims.SubjectID()
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return apperrors.ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// UpdatePassword changes the password for an authenticated user after
// checking the current one.
func (s *authService) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return apperrors.ErrIncorrectPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, string(hashedPassword)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Logout clears the stored refresh token. Already issued access tokens stay
// valid until their own expiry.
func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, nil)
}

// issueTokenPair generates a fresh access/refresh pair and persists the
// refresh token as the single active one for the user.
func (s *authService) issueTokenPair(ctx context.Context, user *model.User) (*TokenPair, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// issueOTP replaces any existing codes for the user with a fresh one and
// emails it. Clearing first keeps at most one live record per user.
func (s *authService) issueOTP(ctx context.Context, user *model.User) error {
	if err := s.otpRepo.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("clear OTP records: %w", err)
	}

	code, err := generateOTPCode()
	if err != nil {
		return fmt.Errorf("generate OTP: %w", err)
	}

	record := &model.OtpRecord{UserID: user.ID, Code: code}
	if err := s.otpRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("create OTP record: %w", err)
	}

	if err := s.mailer.SendVerificationOTP(user.Email, user.FirstName, code); err != nil {
		// best effort, the user can always request a resend
		log.Printf("send OTP email to %s: %v", user.Email, err)
	}
	return nil
}

// generateOTPCode returns a random 4-digit numeric code.
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
