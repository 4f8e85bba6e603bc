package service

import (
	"go-stock-api/internal/apperr"
	"go-stock-api/internal/config"
	"go-stock-api/internal/model"
	"go-stock-api/internal/repository"
	"go-stock-api/pkg/token"
)

// AuthService authenticates callers and issues bearer tokens. Everything
// downstream consumes only the Identity the middleware extracts from a
// verified token.
type AuthService interface {
	Register(req *RegisterRequest) (*model.User, error)
	Login(req *LoginRequest) (*LoginResponse, error)
	Me(identity model.Identity) (*model.UserResponse, error)
}

type RegisterRequest struct {
	FullName  string `json:"full_name" validate:"required,max=255"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
}

type authService struct {
	userRepo repository.UserRepository
	jwt      config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, jwt config.JWTConfig) AuthService {
	return &authService{userRepo: userRepo, jwt: jwt}
}

// Register creates a regular account. Admin-level accounts are created
// only through the admin directory.
func (s *authService) Register(req *RegisterRequest) (*model.User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, apperr.New(apperr.KindConflict, "email already exists")
	}

	user := &model.User{
		FullName:  req.FullName,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      model.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, apperr.New(apperr.KindInternal, "failed to hash password")
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(req *LoginRequest) (*LoginResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid email or password")
	}
	if !user.CheckPassword(req.Password) {
		return nil, apperr.New(apperr.KindUnauthorized, "invalid email or password")
	}

	signed, err := token.Generate([]byte(s.jwt.Secret), s.jwt.TTL, user.ID, user.Email, user.FullName, string(user.Role))
	if err != nil {
		return nil, apperr.New(apperr.KindInternal, "failed to generate token")
	}

	return &LoginResponse{
		Token: signed,
		User:  user.ToResponse(),
	}, nil
}

func (s *authService) Me(identity model.Identity) (*model.UserResponse, error) {
	user, err := s.userRepo.FindByID(identity.ID)
	if err != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "user not found")
	}
	response := user.ToResponse()
	return &response, nil
}
