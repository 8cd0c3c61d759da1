package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/taller-api/internal/application/dto"
	"github.com/jhoicas/taller-api/internal/domain"
	"github.com/jhoicas/taller-api/internal/domain/entity"
	"github.com/jhoicas/taller-api/internal/domain/repository"
	"github.com/jhoicas/taller-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrConflict si el username ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	if username == "" {
		return nil, domain.NewValidationError("username", "requerido")
	}
	if len(in.Password) < 8 {
		return nil, domain.NewValidationError("password", "mínimo 8 caracteres")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleMecanico
	}
	if !entity.ValidRole(role) {
		return nil, domain.NewValidationError("role", "debe ser admin o mecanico")
	}
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = username
	}
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		var ie *domain.IntegrityError
		if errors.As(err, &ie) {
			return nil, domain.ErrConflict
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
// Usuario inexistente y password incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.ToLower(strings.TrimSpace(in.Username)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &domain.NotFoundError{Resource: "usuario", Key: userID}
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
