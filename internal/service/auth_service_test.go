package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "farmersconnect/internal/errors"
	"farmersconnect/internal/model"
	"farmersconnect/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func validInput() RegisterInput {
	return RegisterInput{
		Email:     "  Jane@Example.COM ",
		FirstName: " Jane ",
		LastName:  "Wanjiru",
		Password:  "shamba123",
		IsFarmer:  true,
	}
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		input         func() RegisterInput
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:  "successful registration",
			input: validInput,
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
					return u.Email == "jane@example.com" && u.FirstName == "Jane" && u.PasswordHash != "shamba123"
				})).Return(nil)
			},
		},
		{
			name:          "missing email",
			input:         func() RegisterInput { in := validInput(); in.Email = "  "; return in },
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "missing password",
			input:         func() RegisterInput { in := validInput(); in.Password = ""; return in },
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:          "invalid email shape",
			input:         func() RegisterInput { in := validInput(); in.Email = "jane.example.com"; return in },
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrValidation,
		},
		{
			name:  "email already registered",
			input: validInput,
			setupMock: func(m *MockUserRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(repository.ErrDuplicateEmail)
			},
			expectedError: apperrors.ErrConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, zerolog.Nop(), nil)
			user, err := service.Register(context.Background(), tt.input())

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "jane@example.com", user.Email)
				assert.Equal(t, "Jane", user.FirstName)
				assert.True(t, user.IsFarmer)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("shamba123")))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_StoreFailureIsInternal(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(errors.New("disk full"))

	_, err := NewAuthService(mockRepo, zerolog.Nop(), nil).Register(context.Background(), validInput())
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrValidation)
	assert.NotErrorIs(t, err, apperrors.ErrConflict)
}

func TestAuthService_Authenticate(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("shamba123"), bcryptCost)
	stored := &model.User{
		Email:        "jane@example.com",
		FirstName:    "Jane",
		LastName:     "Wanjiru",
		PasswordHash: string(hashedPassword),
		IsFarmer:     true,
	}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login with unnormalized email",
			email:    " JANE@example.com",
			password: "shamba123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(stored, nil)
			},
		},
		{
			name:     "wrong password",
			email:    "jane@example.com",
			password: "wrong",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "jane@example.com").Return(stored, nil)
			},
			expectedError: apperrors.ErrAuth,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "shamba123",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, repository.ErrNotFound)
			},
			expectedError: apperrors.ErrAuth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, zerolog.Nop(), nil)
			user, err := service.Authenticate(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.Equal(t, stored.Profile(), user.Profile())
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_ConcurrentRegisterSameEmail(t *testing.T) {
	service := NewAuthService(repository.NewMemoryUserRepository(), zerolog.Nop(), nil)

	const workers = 8
	var wg sync.WaitGroup
	var ok, conflicts atomic.Int32
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := validInput()
			if i%2 == 0 {
				in.Email = "JANE@example.com"
			}
			_, err := service.Register(context.Background(), in)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, apperrors.ErrConflict):
				conflicts.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(workers-1), conflicts.Load())
}
