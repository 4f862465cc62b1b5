package handler

import (
	"strings"
	"time"

	"github.com/vogueline/agency-api/internal/core/domain"
)

// --- Auth ---

type signupRequest struct {
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required"`
	FullName    string `json:"fullName"    validate:"required"`
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type adminAuthRequest struct {
	Action          string `json:"action"          validate:"required,oneof=signup login"`
	Username        string `json:"username"        validate:"required"`
	Password        string `json:"password"        validate:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}

type sessionResponse struct {
	User      *domain.Account `json:"user"`
	Token     string          `json:"token,omitempty"`
	ExpiresAt *time.Time      `json:"expires_at,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Onboarding ---

type applicantRequest struct {
	FullName    string `json:"fullName"    validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	HeightCm    int    `json:"heightCm"    validate:"gte=0"`
	BustCm      int    `json:"bustCm"      validate:"gte=0"`
	WaistCm     int    `json:"waistCm"     validate:"gte=0"`
	HipsCm      int    `json:"hipsCm"      validate:"gte=0"`
	Location    string `json:"location"`
	Instagram   string `json:"instagram"`
	Experience  string `json:"experience"`
}

func (a applicantRequest) toDomain() domain.ApplicantProfile {
	p := domain.ApplicantProfile{
		FullName:   a.FullName,
		Email:      a.Email,
		Phone:      a.Phone,
		HeightCm:   a.HeightCm,
		BustCm:     a.BustCm,
		WaistCm:    a.WaistCm,
		HipsCm:     a.HipsCm,
		Location:   a.Location,
		Instagram:  a.Instagram,
		Experience: a.Experience,
	}
	if dob, err := time.Parse(time.DateOnly, strings.TrimSpace(a.DateOfBirth)); err == nil {
		p.DateOfBirth = &dob
	}
	return p
}

type modelApplicationRequest struct {
	applicantRequest
	Password           string   `json:"password"           validate:"required"`
	PortfolioAssetRefs []string `json:"portfolioAssetRefs"`
}

type createModelRequest struct {
	applicantRequest
	Password           string   `json:"password"           validate:"required"`
	PortfolioAssetRefs []string `json:"portfolioAssetRefs"`
	AdminNotes         string   `json:"adminNotes"`
}

type decideModelRequest struct {
	ID         string `json:"id"         validate:"required"`
	Status     string `json:"status"     validate:"required,oneof=approved rejected"`
	AdminNotes string `json:"adminNotes"`
}

// --- Product requests ---

type productRequest struct {
	Name           string   `json:"name"           validate:"required"`
	Category       string   `json:"category"       validate:"required"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"          validate:"gte=0"`
	Currency       string   `json:"currency"`
	Colors         []string `json:"colors"`
	Sizes          []string `json:"sizes"`
	Quantity       int      `json:"quantity"       validate:"gte=0"`
	ImageAssetRefs []string `json:"imageAssetRefs"`
}

func (p productRequest) toDomain() domain.ProductFields {
	return domain.ProductFields{
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		Colors:      p.Colors,
		Sizes:       p.Sizes,
		Quantity:    p.Quantity,
	}
}

type shootDetailsRequest struct {
	Date     *time.Time `json:"date"`
	Location string     `json:"location"`
	Notes    string     `json:"notes"`
}

type productActionRequest struct {
	Action           string               `json:"action"     validate:"required,oneof=approve reject complete assign"`
	AdminNotes       string               `json:"adminNotes"`
	AssignedModelRef *string              `json:"assignedModelRef"`
	ShootDetails     *shootDetailsRequest `json:"shootDetails"`
}

func (r productActionRequest) shoot() *domain.ShootDetails {
	if r.ShootDetails == nil {
		return nil
	}
	return &domain.ShootDetails{
		Date:     r.ShootDetails.Date,
		Location: strings.TrimSpace(r.ShootDetails.Location),
		Notes:    strings.TrimSpace(r.ShootDetails.Notes),
	}
}

// --- Users ---

type updateUserRequest struct {
	DisplayName *string `json:"displayName"`
	CompanyName *string `json:"companyName"`
	Industry    *string `json:"industry"`
	Phone       *string `json:"phone"`
	Password    *string `json:"password"`
}

// --- Shared ---

type pageResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func toPageResponse[T any](p domain.Page[T]) pageResponse[T] {
	return pageResponse[T]{Items: p.Items, Total: p.Total, Page: p.Page, PageSize: p.PageSize, TotalPages: p.TotalPages}
}

type uploadResponse struct {
	URL   string           `json:"url"`
	Asset *domain.AssetRef `json:"asset"`
}

type dashboardResponse struct {
	Profile     *domain.Account                `json:"profile"`
	Application *domain.ModelOnboardingRequest `json:"application,omitempty"`
	Events      []domain.ProductListingRequest `json:"events"`
	Activity    []domain.Activity              `json:"activity"`
}
