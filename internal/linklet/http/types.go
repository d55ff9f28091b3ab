package http

import (
	"time"

	"github.com/fernwell/linklet/internal/linklet/domain"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   int64        `json:"expires_at"`
	User        UserResponse `json:"user"`
}

type BootstrapRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type InviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type InviteResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type AcceptInviteRequest struct {
	Token    string `json:"token"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type AcceptInviteResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type CreateShortURLRequest struct {
	OriginalURL string `json:"original_url"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CompanyID *string   `json:"company_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type ShortURLResponse struct {
	ID           string    `json:"id"`
	ShortCode    string    `json:"short_code"`
	OriginalURL  string    `json:"original_url"`
	CompanyID    string    `json:"company_id"`
	CreatedBy    string    `json:"created_by"`
	CreatorName  string    `json:"creator_name,omitempty"`
	CreatorEmail string    `json:"creator_email,omitempty"`
	CompanyName  string    `json:"company_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	UsersCount    int64     `json:"users_count"`
	ShortURLCount int64     `json:"short_urls_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type TeamMemberResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	URLCount  int64     `json:"urls_count"`
	CreatedAt time.Time `json:"created_at"`
}

type TeamResponse struct {
	Data []TeamMemberResponse `json:"data"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.Display(),
		CompanyID: u.CompanyID,
		CreatedAt: u.CreatedAt,
	}
}

func toShortURLResponse(s domain.ShortURL) ShortURLResponse {
	return ShortURLResponse{
		ID:          s.ID,
		ShortCode:   s.ShortCode,
		OriginalURL: s.OriginalURL,
		CompanyID:   s.CompanyID,
		CreatedBy:   s.CreatedBy,
		CreatedAt:   s.CreatedAt,
	}
}

func toShortURLViewResponse(v domain.ShortURLView) ShortURLResponse {
	resp := toShortURLResponse(v.ShortURL)
	resp.CreatorName = v.CreatorName
	resp.CreatorEmail = v.CreatorEmail
	resp.CompanyName = v.CompanyName
	return resp
}
