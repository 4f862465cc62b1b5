package domain

import "time"

// ProductFields describes the item a client wants photographed and listed.
type ProductFields struct {
	Name        string   `json:"name"                  bson:"name"`
	Category    string   `json:"category"              bson:"category"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64  `json:"price"                 bson:"price"`
	Currency    string   `json:"currency"              bson:"currency"`
	Colors      []string `json:"colors,omitempty"      bson:"colors,omitempty"`
	Sizes       []string `json:"sizes,omitempty"       bson:"sizes,omitempty"`
	Quantity    int      `json:"quantity,omitempty"    bson:"quantity,omitempty"`
}

// ShootDetails is the scheduling information attached when a model is assigned.
type ShootDetails struct {
	Date     *time.Time `json:"date,omitempty"     bson:"date,omitempty"`
	Location string     `json:"location,omitempty" bson:"location,omitempty"`
	Notes    string     `json:"notes,omitempty"    bson:"notes,omitempty"`
}

// ProductListingRequest is a client's request to have a product shot and listed.
type ProductListingRequest struct {
	ID               string        `json:"id"                           bson:"_id"`
	OwnerAccountID   string        `json:"owner_account_id"             bson:"owner_account_id"`
	OwnerName        string        `json:"owner_name"                   bson:"owner_name"`
	OwnerEmail       string        `json:"owner_email"                  bson:"owner_email"`
	Product          ProductFields `json:"product"                      bson:"product"`
	ImageAssetRefs   []string      `json:"image_asset_refs"             bson:"image_asset_refs"`
	Status           RequestStatus `json:"status"                       bson:"status"`
	AssignedModelRef *string       `json:"assigned_model_ref,omitempty" bson:"assigned_model_ref,omitempty"`
	ShootDetails     *ShootDetails `json:"shoot_details,omitempty"      bson:"shoot_details,omitempty"`
	AdminNotes       string        `json:"admin_notes,omitempty"        bson:"admin_notes,omitempty"`
	DecidedBy        string        `json:"decided_by,omitempty"         bson:"decided_by,omitempty"`
	DecidedAt        *time.Time    `json:"decided_at,omitempty"         bson:"decided_at,omitempty"`
	CompletedAt      *time.Time    `json:"completed_at,omitempty"       bson:"completed_at,omitempty"`
	CreatedAt        time.Time     `json:"created_at"                   bson:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"                   bson:"updated_at"`
}

// Assignment attaches (or, with a nil ModelRef, clears) a model on a product request.
type Assignment struct {
	ModelRef     *string
	ShootDetails *ShootDetails
	AssignedBy   string
	At           time.Time
}
