package domain

import "time"

// ApplicantProfile is what an aspiring model submits about themselves.
type ApplicantProfile struct {
	FullName    string     `json:"full_name"               bson:"full_name"`
	Email       string     `json:"email"                   bson:"email"`
	Phone       string     `json:"phone,omitempty"         bson:"phone,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty" bson:"date_of_birth,omitempty"`
	HeightCm    int        `json:"height_cm,omitempty"     bson:"height_cm,omitempty"`
	BustCm      int        `json:"bust_cm,omitempty"       bson:"bust_cm,omitempty"`
	WaistCm     int        `json:"waist_cm,omitempty"      bson:"waist_cm,omitempty"`
	HipsCm      int        `json:"hips_cm,omitempty"       bson:"hips_cm,omitempty"`
	Location    string     `json:"location,omitempty"      bson:"location,omitempty"`
	Instagram   string     `json:"instagram,omitempty"     bson:"instagram,omitempty"`
	Experience  string     `json:"experience,omitempty"    bson:"experience,omitempty"`
}

// ModelOnboardingRequest tracks an application from submission to a single
// admin decision.
type ModelOnboardingRequest struct {
	ID                 string           `json:"id"                    bson:"_id"`
	AccountID          string           `json:"account_id"            bson:"account_id"`
	Applicant          ApplicantProfile `json:"applicant"             bson:"applicant"`
	PortfolioAssetRefs []string         `json:"portfolio_asset_refs"  bson:"portfolio_asset_refs"`
	Status             RequestStatus    `json:"status"                bson:"status"`
	AdminNotes         string           `json:"admin_notes,omitempty" bson:"admin_notes,omitempty"`
	DecidedBy          string           `json:"decided_by,omitempty"  bson:"decided_by,omitempty"`
	DecidedAt          *time.Time       `json:"decided_at,omitempty"  bson:"decided_at,omitempty"`
	CreatedAt          time.Time        `json:"created_at"            bson:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"            bson:"updated_at"`
}
