package service

import (
	"errors"
	"testing"

	"educhat-go/internal/model"
	"educhat-go/pkg/token"

	"gorm.io/gorm"
)

// mockUserRepository 实现 repository.UserRepository 供测试使用。
type mockUserRepository struct {
	users  map[string]*model.User
	nextID uint
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*model.User), nextID: 1}
}

func (m *mockUserRepository) Create(user *model.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.Username] = user
	return nil
}

func (m *mockUserRepository) FindByUsername(username string) (*model.User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(userID uint) (*model.User, error) {
	for _, user := range m.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestUserService() (UserService, *mockUserRepository) {
	repo := newMockUserRepository()
	return NewUserService(repo, token.NewJWTManager("test-secret", 1, 7)), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo := newTestUserService()

	user, err := svc.Register("alice", "password123")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("expected an assigned user id")
	}
	// 密码不能以明文落库
	if repo.users["alice"].Password == "password123" {
		t.Error("password must be hashed before persisting")
	}

	access, refresh, err := svc.Login("alice", "password123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if access == "" || refresh == "" {
		t.Error("expected both access and refresh tokens")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestUserService()

	if _, err := svc.Register("alice", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := svc.Register("alice", "other-password"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate register error = %v, want ErrUsernameTaken", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestUserService()

	if _, err := svc.Register("alice", "password123"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// 错误密码和不存在的用户返回同一个错误
	if _, _, err := svc.Login("alice", "wrong"); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("wrong password error = %v, want ErrInvalidCredential", err)
	}
	if _, _, err := svc.Login("nobody", "password123"); !errors.Is(err, ErrInvalidCredential) {
		t.Errorf("unknown user error = %v, want ErrInvalidCredential", err)
	}
}
