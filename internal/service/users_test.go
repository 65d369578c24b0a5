package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/akosarev/eduregistry/internal/domain/model"
	"github.com/akosarev/eduregistry/internal/repository"
)

// mockUserRepo — мок репозитория пользователей, хранит одного пользователя.
type mockUserRepo struct {
	user      *model.User
	createErr error
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = 1
	m.user = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.user == nil || m.user.ID != id {
		return nil, repository.ErrNotFound
	}
	return m.user, nil
}

func (m *mockUserRepo) GetByUsernameOrEmail(ctx context.Context, login string) (*model.User, error) {
	if m.user == nil || (m.user.Username != login && m.user.Email != login) {
		return nil, repository.ErrNotFound
	}
	return m.user, nil
}

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewUserService(repo, testLogger())
	ctx := context.Background()

	user, err := svc.Register(ctx, "admin", "admin@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Register() ошибка: %v", err)
	}
	if user.PasswordHash == "correct-horse" {
		t.Error("пароль сохранён открытым текстом")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")); err != nil {
		t.Errorf("хеш не соответствует паролю: %v", err)
	}

	// Вход по имени пользователя
	if _, err := svc.Authenticate(ctx, "admin", "correct-horse"); err != nil {
		t.Errorf("Authenticate(username) ошибка: %v", err)
	}

	// Вход по email
	if _, err := svc.Authenticate(ctx, "admin@example.com", "correct-horse"); err != nil {
		t.Errorf("Authenticate(email) ошибка: %v", err)
	}

	// Неверный пароль
	if _, err := svc.Authenticate(ctx, "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() с неверным паролем = %v, ожидается ErrInvalidCredentials", err)
	}

	// Несуществующий пользователь — та же ошибка, без утечки информации
	if _, err := svc.Authenticate(ctx, "nobody", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() неизвестного логина = %v, ожидается ErrInvalidCredentials", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, testLogger())
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"пустое имя", "", "a@example.com", "password123"},
		{"пустой email", "admin", "", "password123"},
		{"короткий пароль", "admin", "a@example.com", "short"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.username, tc.email, tc.password); !errors.Is(err, ErrValidation) {
				t.Errorf("Register() = %v, ожидается ErrValidation", err)
			}
		})
	}
}

func TestRegister_Conflict(t *testing.T) {
	repo := &mockUserRepo{createErr: repository.ErrConflict}
	svc := NewUserService(repo, testLogger())

	if _, err := svc.Register(context.Background(), "admin", "a@example.com", "password123"); !errors.Is(err, ErrConflict) {
		t.Errorf("Register() с занятым логином = %v, ожидается ErrConflict", err)
	}
}
