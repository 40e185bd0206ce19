package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/auth"
	apperrors "github.com/Anuj1063/SDLC-Expence-Tracker/internal/errors"
	"github.com/Anuj1063/SDLC-Expence-Tracker/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	args := m.Called(ctx, id, token)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

// MockOtpRepository is a mock implementation of OtpRepository.
type MockOtpRepository struct {
	mock.Mock
}

func (m *MockOtpRepository) Create(ctx context.Context, record *model.OtpRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockOtpRepository) FindByUserAndCode(ctx context.Context, userID uuid.UUID, code string) (*model.OtpRecord, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OtpRecord), args.Error(1)
}

func (m *MockOtpRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockMailer is a mock implementation of mail.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendVerificationOTP(to, firstName, code string) error {
	args := m.Called(to, firstName, code)
	return args.Error(0)
}

func (m *MockMailer) SendWelcome(to, firstName string) error {
	args := m.Called(to, firstName)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordReset(to, firstName, link string) error {
	args := m.Called(to, firstName, link)
	return args.Error(0)
}

func newTestTokenService() *auth.TokenService {
	return auth.NewTokenService("access-secret", "refresh-secret", "reset-secret")
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         RegisterInput
		setupMock     func(*MockUserRepository, *MockOtpRepository, *MockMailer)
		expectedError error
	}{
		{
			name:  "verified user already holds email",
			input: RegisterInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "password123"},
			setupMock: func(mUser *MockUserRepository, mOtp *MockOtpRepository, mMail *MockMailer) {
				mUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{
					ID:         uuid.New(),
					Email:      "ada@example.com",
					IsVerified: true,
				}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:  "unverified duplicate is superseded",
			input: RegisterInput{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "password123"},
			setupMock: func(mUser *MockUserRepository, mOtp *MockOtpRepository, mMail *MockMailer) {
				staleID := uuid.New()
				mUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{
					ID:         staleID,
					Email:      "ada@example.com",
					IsVerified: false,
				}, nil)
				mUser.On("Delete", mock.Anything, staleID).Return(nil)
				mUser.On("Create", mock.Anything, mock.Anything).Return(nil)
				mOtp.On("DeleteByUser", mock.Anything, mock.Anything).Return(nil)
				mOtp.On("Create", mock.Anything, mock.Anything).Return(nil)
				mMail.On("SendVerificationOTP", "ada@example.com", "Ada", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:  "fresh registration",
			input: RegisterInput{FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "password123"},
			setupMock: func(mUser *MockUserRepository, mOtp *MockOtpRepository, mMail *MockMailer) {
				mUser.On("FindByEmail", mock.Anything, "grace@example.com").Return(nil, gorm.ErrRecordNotFound)
				mUser.On("Create", mock.Anything, mock.Anything).Return(nil)
				mOtp.On("DeleteByUser", mock.Anything, mock.Anything).Return(nil)
				mOtp.On("Create", mock.Anything, mock.Anything).Return(nil)
				mMail.On("SendVerificationOTP", "grace@example.com", "Grace", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			mockOtp := new(MockOtpRepository)
			mockMailer := new(MockMailer)
			tt.setupMock(mockUser, mockOtp, mockMailer)

			service := NewAuthService(mockUser, mockOtp, newTestTokenService(), mockMailer, "http://localhost:8080")
			user, err := service.Register(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.input.Email, user.Email)
				assert.Equal(t, tt.input.FirstName, user.FirstName)
				assert.False(t, user.IsVerified)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.input.Password, user.PasswordHash)
				// exactly one OTP record is issued per registration
				mockOtp.AssertNumberOfCalls(t, "Create", 1)
			}

			mockUser.AssertExpectations(t)
			mockOtp.AssertExpectations(t)
			mockMailer.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterSupersedeClearsStaleOTPFirst(t *testing.T) {
	staleID := uuid.New()
	mockUser := new(MockUserRepository)
	mockOtp := new(MockOtpRepository)
	mockMailer := new(MockMailer)

	mockUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{
		ID:         staleID,
		Email:      "ada@example.com",
		IsVerified: false,
	}, nil)

	var staleOTPCleared bool
	mockOtp.On("DeleteByUser", mock.Anything, staleID).Run(func(args mock.Arguments) {
		staleOTPCleared = true
	}).Return(nil)
	// the old account's OTP rows reference it and must be gone by the
	// time the user row is removed
	mockUser.On("Delete", mock.Anything, staleID).Run(func(args mock.Arguments) {
		assert.True(t, staleOTPCleared)
	}).Return(nil)

	mockUser.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockOtp.On("DeleteByUser", mock.Anything, mock.Anything).Return(nil)
	mockOtp.On("Create", mock.Anything, mock.Anything).Return(nil)
	mockMailer.On("SendVerificationOTP", "ada@example.com", "Ada", mock.Anything).Return(nil)

	service := NewAuthService(mockUser, mockOtp, newTestTokenService(), mockMailer, "http://localhost:8080")
	user, err := service.Register(context.Background(), RegisterInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "password123",
	})

	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.NotEqual(t, staleID, user.ID)
	mockUser.AssertExpectations(t)
	mockOtp.AssertExpectations(t)
}

func TestAuthService_VerifyOTP(t *testing.T) {
	userID := uuid.New()
	freshUser := func() *model.User {
		return &model.User{ID: userID, FirstName: "Ada", Email: "ada@example.com"}
	}

	t.Run("unknown email", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockOtp := new(MockOtpRepository)
		mockMailer := new(MockMailer)
		mockUser.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		service := NewAuthService(mockUser, mockOtp, newTestTokenService(), mockMailer, "http://localhost:8080")
		err := service.VerifyOTP(context.Background(), "ghost@example.com", "1234")
		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})

	t.Run("already verified", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockOtp := new(MockOtpRepository)
		mockMailer := new(MockMailer)
		user := freshUser()
		user.IsVerified = true
		mockUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		service := NewAuthService(mockUser, mockOtp, newTestTokenService(), mockMailer, "http://localhost:8080")
		err := service.VerifyOTP(context.Background(), "ada@example.com", "1234")
		assert.Equal(t, apperrors.ErrAlreadyVerified, err)
	})

	t.Run("no matching code", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockOtp := new(MockOtpRepository)
		mockMailer := new(MockMailer)
		mockUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(freshUser(), nil)
		mockOtp.On("FindByUserAndCode", mock.Anything, userID, "9999").Return(nil, gorm.ErrRecordNotFound)

		service := NewAuthService(mockUser, mockOtp, newTestTokenService(), mockMailer, "http://localhost:8080")
		err := service.VerifyOTP(context.Background(), "ada@example.com", "9999")
		assert.Equal(t, apperrors.ErrInvalidOTP, err)
	})

	t.Run("expired code triggers automatic resend", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockOtp := new(MockOtpRepository)
		mockMailer := new(MockMailer)
		mockUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(freshUser(), nil)
		mockOtp.On("FindByUserAndCode", mock.Anything, userID, "1234").Return(&model.OtpRecord{
			ID:        uuid.New(),
			UserID:    userID,
			Code:      "1234",
			CreatedAt: time.Now().Add(-20 * time.Minute),
		}, nil)
		mockOtp.On("DeleteByUser", mock.Anything, userID).Return(nil)

		var reissuedCode string
		mockOtp.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			reissuedCode = args.Get(1).(*model.OtpRecord).Code
		}).Return(nil)
		mockMailer.On("SendVerificationOTP", "ada@example.com", "Ada", mock.Anything).Return(nil)

		service := NewAuthService(mockUser, mockOtp, newTestTokenService(), mockMailer, "http://localhost:8080")
		err := service.VerifyOTP(context.Background(), "ada@example.com", "1234")

		assert.Equal(t, apperrors.ErrOTPExpired, err)
		assert.NotEmpty(t, reissuedCode)
		assert.NotEqual(t, "1234", reissuedCode)
		mockOtp.AssertNumberOfCalls(t, "Create", 1)
		mockUser.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
		mockMailer.AssertNotCalled(t, "SendWelcome", mock.Anything, mock.Anything)
	})

	t.Run("valid code verifies and sends welcome once", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockOtp := new(MockOtpRepository)
		mockMailer := new(MockMailer)
		mockUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(freshUser(), nil)
		mockOtp.On("FindByUserAndCode", mock.Anything, userID, "1234").Return(&model.OtpRecord{
			ID:        uuid.New(),
			UserID:    userID,
			Code:      "1234",
			CreatedAt: time.Now().Add(-5 * time.Minute),
		}, nil)
		mockUser.On("MarkVerified", mock.Anything, userID).Return(nil)
		mockMailer.On("SendWelcome", "ada@example.com", "Ada").Return(nil)
		mockOtp.On("DeleteByUser", mock.Anything, userID).Return(nil)

		service := NewAuthService(mockUser, mockOtp, newTestTokenService(), mockMailer, "http://localhost:8080")
		err := service.VerifyOTP(context.Background(), "ada@example.com", "1234")

		assert.NoError(t, err)
		mockMailer.AssertNumberOfCalls(t, "SendWelcome", 1)
		mockUser.AssertExpectations(t)
		mockOtp.AssertExpectations(t)
	})
}

func TestAuthService_ResendOTP(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMock     func(*MockUserRepository, *MockOtpRepository, *MockMailer)
		expectedError error
	}{
		{
			name:  "unknown email",
			email: "ghost@example.com",
			setupMock: func(mUser *MockUserRepository, mOtp *MockOtpRepository, mMail *MockMailer) {
				mUser.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrUserNotFound,
		},
		{
			name:  "already verified",
			email: "done@example.com",
			setupMock: func(mUser *MockUserRepository, mOtp *MockOtpRepository, mMail *MockMailer) {
				mUser.On("FindByEmail", mock.Anything, "done@example.com").Return(&model.User{
					ID:         uuid.New(),
					Email:      "done@example.com",
					IsVerified: true,
				}, nil)
			},
			expectedError: apperrors.ErrAlreadyVerified,
		},
		{
			name:  "prior codes cleared before new one is issued",
			email: "ada@example.com",
			setupMock: func(mUser *MockUserRepository, mOtp *MockOtpRepository, mMail *MockMailer) {
				userID := uuid.New()
				mUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{
					ID:        userID,
					FirstName: "Ada",
					Email:     "ada@example.com",
				}, nil)
				mOtp.On("DeleteByUser", mock.Anything, userID).Return(nil)
				mOtp.On("Create", mock.Anything, mock.Anything).Return(nil)
				mMail.On("SendVerificationOTP", "ada@example.com", "Ada", mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			mockOtp := new(MockOtpRepository)
			mockMailer := new(MockMailer)
			tt.setupMock(mockUser, mockOtp, mockMailer)

			service := NewAuthService(mockUser, mockOtp, newTestTokenService(), mockMailer, "http://localhost:8080")
			err := service.ResendOTP(context.Background(), tt.email)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
				mockOtp.AssertNumberOfCalls(t, "Create", 1)
			}
			mockUser.AssertExpectations(t)
			mockOtp.AssertExpectations(t)
			mockMailer.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "unknown email",
			email:    "ghost@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unverified user with correct password",
			email:    "ada@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "ada@example.com",
					PasswordHash: string(hashed),
					IsVerified:   false,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "ada@example.com",
			password: "nope",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "ada@example.com",
					PasswordHash: string(hashed),
					IsVerified:   true,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "successful login persists refresh token",
			email:    "ada@example.com",
			password: "password123",
			setupMock: func(mUser *MockUserRepository) {
				mUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "ada@example.com",
					PasswordHash: string(hashed),
					IsVerified:   true,
				}, nil)
				mUser.On("UpdateRefreshToken", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			},
			expectedError: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUser := new(MockUserRepository)
			tt.setupMock(mockUser)

			service := NewAuthService(mockUser, new(MockOtpRepository), newTestTokenService(), new(MockMailer), "http://localhost:8080")
			pair, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, pair)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, pair.AccessToken)
				assert.NotEmpty(t, pair.RefreshToken)
				assert.Equal(t, tt.email, user.Email)
			}
			mockUser.AssertExpectations(t)
		})
	}
}

func TestAuthService_SecondLoginInvalidatesFirstRefreshToken(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	user := &model.User{
		ID:           uuid.New(),
		Email:        "ada@example.com",
		PasswordHash: string(hashed),
		IsVerified:   true,
	}

	mockUser := new(MockUserRepository)
	mockUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(user, nil)
	mockUser.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	// mimic the store: persist the latest refresh token on the user row
	mockUser.On("UpdateRefreshToken", mock.Anything, user.ID, mock.Anything).Run(func(args mock.Arguments) {
		user.RefreshToken = args.Get(2).(*string)
	}).Return(nil)

	service := NewAuthService(mockUser, new(MockOtpRepository), newTestTokenService(), new(MockMailer), "http://localhost:8080")

	first, _, err := service.Login(context.Background(), "ada@example.com", "password123")
	assert.NoError(t, err)

	second, _, err := service.Login(context.Background(), "ada@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// the first session's refresh token is no longer the stored one
	_, err = service.RefreshAccessToken(context.Background(), first.RefreshToken)
	assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)

	// the second session's token still works
	_, err = service.RefreshAccessToken(context.Background(), second.RefreshToken)
	assert.NoError(t, err)
}

func TestAuthService_RefreshRotationIsExactlyOnceValid(t *testing.T) {
	tokens := newTestTokenService()
	user := &model.User{
		ID:         uuid.New(),
		Email:      "ada@example.com",
		IsVerified: true,
	}
	original, err := tokens.GenerateRefreshToken(user.ID, user.Email)
	assert.NoError(t, err)
	user.RefreshToken = &original

	mockUser := new(MockUserRepository)
	mockUser.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	mockUser.On("UpdateRefreshToken", mock.Anything, user.ID, mock.Anything).Run(func(args mock.Arguments) {
		user.RefreshToken = args.Get(2).(*string)
	}).Return(nil)

	service := NewAuthService(mockUser, new(MockOtpRepository), tokens, new(MockMailer), "http://localhost:8080")

	pair, err := service.RefreshAccessToken(context.Background(), original)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, original, pair.RefreshToken)

	// the pre-rotation token must fail on a second attempt
	_, err = service.RefreshAccessToken(context.Background(), original)
	assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)
}

func TestAuthService_RefreshAccessToken_Rejections(t *testing.T) {
	tokens := newTestTokenService()
	userID := uuid.New()

	t.Run("missing token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), new(MockOtpRepository), tokens, new(MockMailer), "http://localhost:8080")
		_, err := service.RefreshAccessToken(context.Background(), "")
		assert.Equal(t, apperrors.ErrRefreshTokenRequired, err)
	})

	t.Run("access token presented as refresh token", func(t *testing.T) {
		accessToken, err := tokens.GenerateAccessToken(userID, "ada@example.com")
		assert.NoError(t, err)

		service := NewAuthService(new(MockUserRepository), new(MockOtpRepository), tokens, new(MockMailer), "http://localhost:8080")
		_, err = service.RefreshAccessToken(context.Background(), accessToken)
		assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		refreshToken, err := tokens.GenerateRefreshToken(userID, "ada@example.com")
		assert.NoError(t, err)

		mockUser := new(MockUserRepository)
		mockUser.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewAuthService(mockUser, new(MockOtpRepository), tokens, new(MockMailer), "http://localhost:8080")
		_, err = service.RefreshAccessToken(context.Background(), refreshToken)
		assert.Equal(t, apperrors.ErrInvalidRefreshToken, err)
	})
}

func TestAuthService_ForgetPassword(t *testing.T) {
	t.Run("unknown email", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockUser.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		service := NewAuthService(mockUser, new(MockOtpRepository), newTestTokenService(), new(MockMailer), "http://localhost:8080")
		err := service.ForgetPassword(context.Background(), "ghost@example.com")
		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})

	t.Run("sends a reset link", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockMailer := new(MockMailer)
		mockUser.On("FindByEmail", mock.Anything, "ada@example.com").Return(&model.User{
			ID:        uuid.New(),
			FirstName: "Ada",
			Email:     "ada@example.com",
		}, nil)

		var link string
		mockMailer.On("SendPasswordReset", "ada@example.com", "Ada", mock.Anything).Run(func(args mock.Arguments) {
			link = args.Get(2).(string)
		}).Return(nil)

		service := NewAuthService(mockUser, new(MockOtpRepository), newTestTokenService(), mockMailer, "http://localhost:8080")
		err := service.ForgetPassword(context.Background(), "ada@example.com")

		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(link, "http://localhost:8080/reset-password/"))
		mockMailer.AssertExpectations(t)
	})
}

func TestAuthService_ResetPassword(t *testing.T) {
	tokens := newTestTokenService()
	userID := uuid.New()

	t.Run("password confirmation mismatch", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), new(MockOtpRepository), tokens, new(MockMailer), "http://localhost:8080")
		err := service.ResetPassword(context.Background(), "whatever", "newpass123", "different")
		assert.Equal(t, apperrors.ErrPasswordMismatch, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		service := NewAuthService(new(MockUserRepository), new(MockOtpRepository), tokens, new(MockMailer), "http://localhost:8080")
		err := service.ResetPassword(context.Background(), "not-a-token", "newpass123", "newpass123")
		assert.Equal(t, apperrors.ErrInvalidResetToken, err)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		token, err := tokens.GenerateResetToken(userID)
		assert.NoError(t, err)

		mockUser := new(MockUserRepository)
		mockUser.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewAuthService(mockUser, new(MockOtpRepository), tokens, new(MockMailer), "http://localhost:8080")
		err = service.ResetPassword(context.Background(), token, "newpass123", "newpass123")
		assert.Equal(t, apperrors.ErrInvalidResetToken, err)
	})

	t.Run("valid token rehashes the password", func(t *testing.T) {
		token, err := tokens.GenerateResetToken(userID)
		assert.NoError(t, err)

		mockUser := new(MockUserRepository)
		mockUser.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, Email: "ada@example.com"}, nil)

		var storedHash string
		mockUser.On("UpdatePassword", mock.Anything, userID, mock.Anything).Run(func(args mock.Arguments) {
			storedHash = args.Get(2).(string)
		}).Return(nil)

		service := NewAuthService(mockUser, new(MockOtpRepository), tokens, new(MockMailer), "http://localhost:8080")
		err = service.ResetPassword(context.Background(), token, "newpass123", "newpass123")

		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("newpass123")))
		// resetting the password leaves the active session untouched
		mockUser.AssertNotCalled(t, "UpdateRefreshToken", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuthService_UpdatePassword(t *testing.T) {
	userID := uuid.New()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass123"), 10)

	t.Run("unknown user", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockUser.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		service := NewAuthService(mockUser, new(MockOtpRepository), newTestTokenService(), new(MockMailer), "http://localhost:8080")
		err := service.UpdatePassword(context.Background(), userID, "oldpass123", "newpass123")
		assert.Equal(t, apperrors.ErrUserNotFound, err)
	})

	t.Run("wrong current password", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockUser.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, PasswordHash: string(hashed)}, nil)

		service := NewAuthService(mockUser, new(MockOtpRepository), newTestTokenService(), new(MockMailer), "http://localhost:8080")
		err := service.UpdatePassword(context.Background(), userID, "wrong", "newpass123")
		assert.Equal(t, apperrors.ErrIncorrectPassword, err)
	})

	t.Run("correct current password", func(t *testing.T) {
		mockUser := new(MockUserRepository)
		mockUser.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID, PasswordHash: string(hashed)}, nil)

		var storedHash string
		mockUser.On("UpdatePassword", mock.Anything, userID, mock.Anything).Run(func(args mock.Arguments) {
			storedHash = args.Get(2).(string)
		}).Return(nil)

		service := NewAuthService(mockUser, new(MockOtpRepository), newTestTokenService(), new(MockMailer), "http://localhost:8080")
		err := service.UpdatePassword(context.Background(), userID, "oldpass123", "newpass123")

		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("newpass123")))
	})
}

func TestAuthService_Logout(t *testing.T) {
	userID := uuid.New()

	mockUser := new(MockUserRepository)
	mockUser.On("UpdateRefreshToken", mock.Anything, userID, (*string)(nil)).Return(nil)

	service := NewAuthService(mockUser, new(MockOtpRepository), newTestTokenService(), new(MockMailer), "http://localhost:8080")
	err := service.Logout(context.Background(), userID)

	assert.NoError(t, err)
	mockUser.AssertExpectations(t)
}
