// Package auth contiene los casos de uso de autenticación: login, registro,
// reemisión de sesión y resolución de identidad a partir del token.
package auth

import (
	"context"

	"github.com/jmaldonado/hub-admin-api/internal/application/dto"
	"github.com/jmaldonado/hub-admin-api/internal/domain"
	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
	"github.com/jmaldonado/hub-admin-api/internal/domain/repository"
	"github.com/jmaldonado/hub-admin-api/internal/domain/types"
	"github.com/jmaldonado/hub-admin-api/pkg/jwt"
	"github.com/jmaldonado/hub-admin-api/pkg/password"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret      string
	SessionDays int
	Issuer      string
}

// AuthUseCase casos de uso de autenticación.
type AuthUseCase struct {
	userRepo repository.UserRepository
	hubRepo  repository.HubReader
	hasher   *password.Hasher
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, hubRepo repository.HubReader, hasher *password.Hasher, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, hubRepo: hubRepo, hasher: hasher, jwtCfg: jwtCfg}
}

// Login verifica email/password dentro del hub indicado y emite un token de
// sesión. Toda falla (email malformado, usuario inexistente, contraseña
// incorrecta) produce el mismo ErrUnauthorized: el llamador no puede
// enumerar cuentas por la forma del error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email, err := types.NewEmail(in.Email)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	hubID, err := types.NewHubID(in.HubID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByEmail(ctx, email, hubID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !uc.hasher.Verify(in.Password, user.User.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}
	principal := entity.NewPrincipal(user)
	token, err := jwt.Generate(uc.jwtCfg.Secret, principal, uc.jwtCfg.Issuer, uc.jwtCfg.SessionDays)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

// RegisterUser crea un usuario en el hub indicado. El hub debe existir;
// un email repetido dentro del mismo hub produce ErrConflict.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	nu, err := entity.NewUserFromInput(in.Email, in.Name, in.HubID, in.Password)
	if err != nil {
		return nil, err
	}
	hub, err := uc.hubRepo.GetByID(ctx, nu.HubID)
	if err != nil {
		return nil, err
	}
	if hub == nil {
		return nil, domain.ErrNotFound // el hub no existe
	}
	user, err := uc.userRepo.Create(ctx, nu)
	if err != nil {
		return nil, err
	}
	out := dto.ToUserResponse(&entity.UserWithRoles{User: *user})
	return &out, nil
}

// ResolveIdentity valida el token y reconstruye el principal contra la base
// de datos: firma o expiración inválidas, usuario ya eliminado o hub
// inexistente producen ErrUnauthorized. Los roles provienen siempre del
// estado persistido, nunca de los claims del token.
func (uc *AuthUseCase) ResolveIdentity(ctx context.Context, token string) (*entity.Principal, error) {
	claimed, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	userID, err := claimed.UserID()
	if err != nil {
		return nil, err
	}
	hubID, err := claimed.Hub()
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, userID, hubID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return entity.NewPrincipal(user), nil
}

// ReissueSession emite un token fresco para un principal ya resuelto,
// extendiendo la vigencia de la sesión con los roles actuales.
func (uc *AuthUseCase) ReissueSession(ctx context.Context, p *entity.Principal) (*dto.SessionTokenResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, p, uc.jwtCfg.Issuer, uc.jwtCfg.SessionDays)
	if err != nil {
		return nil, err
	}
	return &dto.SessionTokenResponse{Token: token}, nil
}

// ListHubs devuelve todos los hubs registrados. Es la única lectura pública
// del sistema: alimenta el selector de hub de la pantalla de login.
func (uc *AuthUseCase) ListHubs(ctx context.Context) ([]dto.HubResponse, error) {
	hubs, err := uc.hubRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HubResponse, 0, len(hubs))
	for _, h := range hubs {
		out = append(out, dto.ToHubResponse(h))
	}
	return out, nil
}
