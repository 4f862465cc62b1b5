package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const MinPasswordLength = 8

// AccountKind doubles as the session role.
type AccountKind string

const (
	KindClient AccountKind = "client"
	KindModel  AccountKind = "model"
	KindAdmin  AccountKind = "admin"
)

func (k AccountKind) Valid() bool {
	switch k {
	case KindClient, KindModel, KindAdmin:
		return true
	}
	return false
}

type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountPending  AccountStatus = "pending"
	AccountInactive AccountStatus = "inactive"
)

// Profile holds the optional descriptive fields collected at signup.
type Profile struct {
	CompanyName string `json:"company_name,omitempty" bson:"company_name,omitempty"`
	Industry    string `json:"industry,omitempty"     bson:"industry,omitempty"`
	Phone       string `json:"phone,omitempty"        bson:"phone,omitempty"`
}

// Account is any authenticated principal: client, model or admin.
type Account struct {
	ID           string        `json:"id"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"-"`
	DisplayName  string        `json:"display_name"`
	Kind         AccountKind   `json:"kind"`
	Status       AccountStatus `json:"status"`
	Profile      Profile       `json:"profile"`
	AvatarURL    string        `json:"avatar_url,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// CheckActive returns nil when the account may open a session.
func (a *Account) CheckActive() error {
	switch a.Status {
	case AccountActive:
		return nil
	case AccountPending:
		return ErrAccountPending
	default:
		return ErrAccountInactive
	}
}

func (a *Account) IsAdmin() bool { return a.Kind == KindAdmin }

// NormalizeEmail lower-cases and trims an address so lookups and the unique
// index agree on a single spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckPassword enforces the password policy. Length is counted in
// characters, not bytes.
func CheckPassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}
