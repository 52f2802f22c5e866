package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmapunto/pos-api/internal/application/dto"
	"github.com/farmapunto/pos-api/internal/domain"
	"github.com/farmapunto/pos-api/internal/domain/entity"
	"github.com/farmapunto/pos-api/internal/domain/repository"
	"github.com/farmapunto/pos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación de empleados: registro y login.
type AuthUseCase struct {
	usuarioRepo  repository.UsuarioRepository
	farmaciaRepo repository.FarmaciaRepository
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, farmaciaRepo repository.FarmaciaRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, farmaciaRepo: farmaciaRepo, jwtCfg: jwtCfg}
}

// Register crea un empleado: hashea el password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" || in.FarmaciaID == "" {
		return nil, domain.ErrInvalidInput
	}
	existente, _ := uc.usuarioRepo.FindByEmail(in.Email)
	if existente != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	farmacia, err := uc.farmaciaRepo.GetByID(in.FarmaciaID)
	if err != nil {
		return nil, err
	}
	if farmacia == nil {
		return nil, domain.ErrNotFound // la sucursal no existe
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	nombre := in.Nombre
	if nombre == "" {
		nombre = in.Email
	}
	rol := in.Rol
	if rol == "" {
		rol = entity.RolCajero
	}
	usuario := &entity.Usuario{
		ID:            uuid.New().String(),
		FarmaciaID:    in.FarmaciaID,
		Email:         in.Email,
		PasswordHash:  string(hash),
		Nombre:        nombre,
		Rol:           rol,
		Estado:        "active",
		CreadoEn:      now,
		ActualizadoEn: now,
	}
	if err := uc.usuarioRepo.Create(usuario); err != nil {
		return nil, err
	}
	return toUserResponse(usuario), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := uc.usuarioRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if usuario.Estado != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.FarmaciaID, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(usuario),
	}, nil
}

func toUserResponse(u *entity.Usuario) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:         u.ID,
		FarmaciaID: u.FarmaciaID,
		Email:      u.Email,
		Nombre:     u.Nombre,
		Rol:        u.Rol,
		Estado:     u.Estado,
		CreadoEn:   u.CreadoEn,
	}
}
