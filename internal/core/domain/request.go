package domain

import "time"

// RequestStatus is the lifecycle state shared by onboarding and product requests.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusCompleted RequestStatus = "completed"
)

// RequestKind selects the transition table of a request.
type RequestKind string

const (
	KindOnboarding RequestKind = "model_onboarding"
	KindProduct    RequestKind = "product_listing"
)

// RequestAction is an admin verb applied to a request.
type RequestAction string

const (
	ActionApprove  RequestAction = "approve"
	ActionReject   RequestAction = "reject"
	ActionComplete RequestAction = "complete"
	ActionAssign   RequestAction = "assign"
)

var onboardingTransitions = map[RequestStatus][]RequestStatus{
	StatusPending: {StatusApproved, StatusRejected},
}

var productTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusCompleted},
}

func transitionsFor(kind RequestKind) map[RequestStatus][]RequestStatus {
	if kind == KindProduct {
		return productTransitions
	}
	return onboardingTransitions
}

// CanTransitionTo reports whether kind allows moving from s to next.
func (s RequestStatus) CanTransitionTo(kind RequestKind, next RequestStatus) bool {
	for _, allowed := range transitionsFor(kind)[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s for the given kind.
func (s RequestStatus) IsTerminal(kind RequestKind) bool {
	return len(transitionsFor(kind)[s]) == 0
}

// Valid reports whether s is a state of the given kind.
func (s RequestStatus) Valid(kind RequestKind) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	case StatusCompleted:
		return kind == KindProduct
	}
	return false
}

// Target returns the status an action moves a request into, and the status
// it must currently be in.
func (a RequestAction) Target() (from, to RequestStatus, ok bool) {
	switch a {
	case ActionApprove:
		return StatusPending, StatusApproved, true
	case ActionReject:
		return StatusPending, StatusRejected, true
	case ActionComplete:
		return StatusApproved, StatusCompleted, true
	}
	return "", "", false
}

// Decision carries the fields stamped on a request by a status change.
type Decision struct {
	From        RequestStatus
	To          RequestStatus
	DecidedBy   string
	AdminNotes  string
	At          time.Time
	CompletedAt *time.Time
}

// ListFilter is the query accepted by every request listing.
type ListFilter struct {
	Status    RequestStatus
	Search    string
	OwnerID   string // product requests only; empty = all owners
	ModelRef  string // product requests only; empty = any assignment
	Statuses  []RequestStatus // any of these; ignored when Status is set
	Page      int
	PageSize  int
	SortField string
	SortOrder string
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage bounds the offset; pages past it are empty.
	MaxPage = 1_000_000
)

var sortableFields = map[string]struct{}{
	"created_at": {},
	"updated_at": {},
	"status":     {},
}

// Normalize applies pagination and sort defaults in place.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Page > MaxPage {
		f.Page = MaxPage
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if _, ok := sortableFields[f.SortField]; !ok {
		f.SortField = "created_at"
	}
	if f.SortOrder != "asc" {
		f.SortOrder = "desc"
	}
}

// Skip is the offset of the first item on the requested page.
func (f ListFilter) Skip() int64 {
	if f.Page < 1 || f.PageSize < 1 {
		return 0
	}
	page, size := min(f.Page, MaxPage), min(f.PageSize, MaxPageSize)
	return (int64(page) - 1) * int64(size)
}

// Page is a slice of results plus the totals needed for pagination controls.
type Page[T any] struct {
	Items      []T
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// NewPage computes TotalPages from total and the filter's page size.
func NewPage[T any](items []T, total int64, f ListFilter) Page[T] {
	pages := 0
	if f.PageSize > 0 {
		pages = int((total + int64(f.PageSize) - 1) / int64(f.PageSize))
	}
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: f.Page, PageSize: f.PageSize, TotalPages: pages}
}
