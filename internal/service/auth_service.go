package service

import (
	"errors"

	redislib "github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sozluk/internal/model"
	"sozluk/internal/pkg"
	"sozluk/internal/repository/mysql"
	"sozluk/internal/repository/redis"
)

type AuthService struct {
	repo   *mysql.UserRepository
	tokens *redis.TokenRepository
}

type AuthResult struct {
	User *model.User `json:"user"`
	*pkg.Pair
}

func NewAuthService(db *gorm.DB, rdb *redislib.Client) *AuthService {
	return &AuthService{
		repo:   &mysql.UserRepository{DB: db},
		tokens: &redis.TokenRepository{Client: rdb},
	}
}

func (s *AuthService) Register(username, email, password string) (*AuthResult, error) {
	taken, err := s.repo.ExistsByUsernameOrEmail(username, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, pkg.Conflict("Username or email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     model.RoleUser,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) Login(login, password string) (*AuthResult, error) {
	user, err := s.repo.FindByLogin(login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, pkg.Unauthorized("Invalid credentials")
	}

	return s.issueTokens(user)
}

func (s *AuthService) Logout(userID uint64) error {
	return s.tokens.DeleteUserToken(userID)
}

func (s *AuthService) Refresh(refreshToken string) (*pkg.Pair, error) {
	pair, err := pkg.RefreshPair(refreshToken)
	if err != nil {
		return nil, pkg.Unauthorized(err.Error())
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.AddUserToken(claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *AuthService) issueTokens(user *model.User) (*AuthResult, error) {
	pair, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.AddUserToken(user.ID, pair.AccessToken); err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Pair: pair}, nil
}
