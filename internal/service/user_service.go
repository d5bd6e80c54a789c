package service

import (
	"errors"

	"educhat-go/internal/model"
	"educhat-go/internal/repository"
	"educhat-go/pkg/hash"
	"educhat-go/pkg/log"
	"educhat-go/pkg/token"

	"gorm.io/gorm"
)

// 用户模块的业务错误。
var (
	ErrUsernameTaken     = errors.New("username already exists")
	ErrInvalidCredential = errors.New("invalid credentials")
)

// UserService 接口定义了所有与用户相关的业务操作。
type UserService interface {
	Register(username, password string) (*model.User, error)
	Login(username, password string) (accessToken, refreshToken string, err error)
	GetProfile(username string) (*model.User, error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo   repository.UserRepository
	jwtManager *token.JWTManager
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, jwtManager *token.JWTManager) UserService {
	return &userService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Register 处理用户注册的业务逻辑。
func (s *userService) Register(username, password string) (*model.User, error) {
	// 1. 检查用户名是否已存在
	_, err := s.userRepo.FindByUsername(username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// 2. 对密码进行哈希处理
	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		Username: username,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(newUser); err != nil {
		log.Errorf("[UserService] 创建用户失败, username: %s, error: %v", username, err)
		return nil, err
	}

	return newUser, nil
}

// Login 处理用户登录的业务逻辑。
// 用户不存在和密码错误返回同一个错误，避免暴露用户名是否已注册。
func (s *userService) Login(username, password string) (accessToken, refreshToken string, err error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", ErrInvalidCredential
		}
		return "", "", err
	}

	if !hash.CheckPassword(password, user.Password) {
		return "", "", ErrInvalidCredential
	}

	accessToken, err = s.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", "", err
	}
	refreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return "", "", err
	}

	log.Infof("[UserService] 用户登录成功, username: %s", username)
	return accessToken, refreshToken, nil
}

// GetProfile 返回指定用户名的用户信息。
func (s *userService) GetProfile(username string) (*model.User, error) {
	return s.userRepo.FindByUsername(username)
}
