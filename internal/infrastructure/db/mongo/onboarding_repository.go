package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vogueline/agency-api/internal/core/domain"
)

const collectionOnboarding = "onboarding_requests"

type OnboardingRepository struct {
	p *Provider
}

func NewOnboardingRepository(p *Provider) *OnboardingRepository {
	return &OnboardingRepository{p: p}
}

// Create inserts req, assigning an id when it has none.
func (r *OnboardingRepository) Create(ctx context.Context, req *domain.ModelOnboardingRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionOnboarding)
	if err != nil {
		return err
	}
	if req.ID == "" {
		req.ID = newID()
	}
	if _, err := coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("insert onboarding request: %w", err)
	}
	return nil
}

func (r *OnboardingRepository) FindByID(ctx context.Context, id string) (*domain.ModelOnboardingRequest, error) {
	return r.findOne(ctx, bson.M{"_id": id}, nil)
}

// FindByAccountID returns the most recent application of an account.
func (r *OnboardingRepository) FindByAccountID(ctx context.Context, accountID string) (*domain.ModelOnboardingRequest, error) {
	return r.findOne(ctx, bson.M{"account_id": accountID},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *OnboardingRepository) List(ctx context.Context, f domain.ListFilter) ([]domain.ModelOnboardingRequest, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionOnboarding)
	if err != nil {
		return nil, 0, err
	}
	items, total, err := findPage[domain.ModelOnboardingRequest](ctx, coll, onboardingFilter(f), f)
	if err != nil {
		return nil, 0, fmt.Errorf("list onboarding requests: %w", err)
	}
	return items, total, nil
}

// ApplyDecision is a conditional update on {_id, status: d.From}.
func (r *OnboardingRepository) ApplyDecision(ctx context.Context, id string, d domain.Decision) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionOnboarding)
	if err != nil {
		return false, err
	}
	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": string(d.From)},
		bson.M{"$set": decisionSet(d)},
	)
	if err != nil {
		return false, fmt.Errorf("decide onboarding request: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *OnboardingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionOnboarding)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "account_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

func (r *OnboardingRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.ModelOnboardingRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionOnboarding)
	if err != nil {
		return nil, err
	}

	var req domain.ModelOnboardingRequest
	var findOpts []*options.FindOneOptions
	if opts != nil {
		findOpts = append(findOpts, opts)
	}
	if err := coll.FindOne(ctx, filter, findOpts...).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find onboarding request: %w", err)
	}
	return &req, nil
}

func onboardingFilter(f domain.ListFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Search != "" {
		filter["$or"] = searchClause(f.Search, "applicant.full_name", "applicant.email")
	}
	return filter
}

// decisionSet is the $set document shared by both request kinds. Completion
// keeps the original decidedBy/decidedAt and stamps completed_at instead.
func decisionSet(d domain.Decision) bson.M {
	set := bson.M{
		"status":     string(d.To),
		"updated_at": d.At,
	}
	if d.CompletedAt != nil {
		set["completed_at"] = *d.CompletedAt
	} else {
		set["decided_by"] = d.DecidedBy
		set["decided_at"] = d.At
	}
	if d.AdminNotes != "" {
		set["admin_notes"] = d.AdminNotes
	}
	return set
}
