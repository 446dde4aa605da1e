package service

import (
	"context"
	"errors"
	"time"

	"foodback/internal/apperr"
	"foodback/internal/middleware"
	"foodback/internal/model"
	"foodback/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Access tokens expire after a fixed window; there is no refresh flow.
const tokenValidity = time.Hour

// DTOs for request validation
type RegisterRequest struct {
	Nome  string `json:"nome" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required,min=6"`
	Tipo  string `json:"tipo" binding:"required,oneof=empresa ong"`
	CNPJ  string `json:"cnpj"`
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserType    string `json:"user_type"`
}

// AuthService owns registration, login and token issuance
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (string, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	EnsureAdmin(ctx context.Context, name, email, password string) (*model.Admin, error)
}

type authService struct {
	adminRepo   repository.AdminRepository
	companyRepo repository.CompanyRepository
	ngoRepo     repository.NGORepository
}

func NewAuthService(
	adminRepo repository.AdminRepository,
	companyRepo repository.CompanyRepository,
	ngoRepo repository.NGORepository,
) AuthService {
	return &authService{
		adminRepo:   adminRepo,
		companyRepo: companyRepo,
		ngoRepo:     ngoRepo,
	}
}

// Register creates a Company or NGO record with a bcrypt hash and
// is_approved = false. Email and CNPJ uniqueness is per kind: a Company and
// an NGO may share an email.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Persistence(err)
	}

	var cnpj *string
	if req.CNPJ != "" {
		cnpj = &req.CNPJ
	}

	switch req.Tipo {
	case model.KindCompany:
		if taken, err := s.companyTaken(ctx, req.Email, req.CNPJ); err != nil {
			return "", err
		} else if taken {
			return "", apperr.Conflict("Email ou CNPJ já está cadastrado como Empresa.")
		}
		company := &model.Company{
			Name:     req.Nome,
			Email:    req.Email,
			Password: string(hashed),
			CNPJ:     cnpj,
		}
		if err := s.companyRepo.Create(ctx, company); err != nil {
			return "", apperr.Persistence(err)
		}
		return "Empresa registrada com sucesso. Aguarde aprovação do admin!", nil

	case model.KindNGO:
		if taken, err := s.ngoTaken(ctx, req.Email, req.CNPJ); err != nil {
			return "", err
		} else if taken {
			return "", apperr.Conflict("Email ou CNPJ já está cadastrado como ONG.")
		}
		ngo := &model.NGO{
			Name:     req.Nome,
			Email:    req.Email,
			Password: string(hashed),
			CNPJ:     cnpj,
		}
		if err := s.ngoRepo.Create(ctx, ngo); err != nil {
			return "", apperr.Persistence(err)
		}
		return "ONG registrada com sucesso. Aguarde aprovação do admin!", nil

	default:
		return "", apperr.Validation("Tipo de usuário inválido para registro via API")
	}
}

func (s *authService) companyTaken(ctx context.Context, email, cnpj string) (bool, error) {
	if _, err := s.companyRepo.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, apperr.Persistence(err)
	}
	if cnpj != "" {
		if _, err := s.companyRepo.GetByCNPJ(ctx, cnpj); err == nil {
			return true, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.Persistence(err)
		}
	}
	return false, nil
}

func (s *authService) ngoTaken(ctx context.Context, email, cnpj string) (bool, error) {
	if _, err := s.ngoRepo.GetByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, apperr.Persistence(err)
	}
	if cnpj != "" {
		if _, err := s.ngoRepo.GetByCNPJ(ctx, cnpj); err == nil {
			return true, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperr.Persistence(err)
		}
	}
	return false, nil
}

// Login probes the Admin, Company and NGO stores in that fixed order and
// returns a token for the first credential match. A Company or NGO whose
// password verifies but is not yet approved gets a distinct pending-approval
// rejection, not an authentication failure.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if admin, err := s.adminRepo.GetByEmail(ctx, req.Email); err == nil {
		if passwordMatches(admin.Password, req.Senha) {
			return s.issueToken(admin.ID.String(), model.KindAdmin)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Persistence(err)
	}

	if company, err := s.companyRepo.GetByEmail(ctx, req.Email); err == nil {
		if passwordMatches(company.Password, req.Senha) {
			if !company.IsApproved {
				return nil, apperr.Authorization("Empresa aguardando aprovação do administrador")
			}
			return s.issueToken(company.ID.String(), model.KindCompany)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Persistence(err)
	}

	if ngo, err := s.ngoRepo.GetByEmail(ctx, req.Email); err == nil {
		if passwordMatches(ngo.Password, req.Senha) {
			if !ngo.IsApproved {
				return nil, apperr.Authorization("ONG aguardando aprovação do administrador")
			}
			return s.issueToken(ngo.ID.String(), model.KindNGO)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Persistence(err)
	}

	return nil, apperr.Authentication("Credenciais inválidas")
}

func passwordMatches(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *authService) issueToken(id, kind string) (*LoginResponse, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id,
		"tipo": kind,
		"iat":  now.Unix(),
		"exp":  now.Add(tokenValidity).Unix(),
	})

	signed, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	return &LoginResponse{AccessToken: signed, UserType: kind}, nil
}

// EnsureAdmin creates the initial administrator unless one already exists.
// Used by cmd/seed; the public API never registers admins.
func (s *authService) EnsureAdmin(ctx context.Context, name, email, password string) (*model.Admin, error) {
	total, err := s.adminRepo.Count(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	if total > 0 {
		return nil, apperr.Conflict("Um administrador já existe no banco de dados.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	admin := &model.Admin{
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, apperr.Persistence(err)
	}
	return admin, nil
}
