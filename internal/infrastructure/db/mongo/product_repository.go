package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vogueline/agency-api/internal/core/domain"
)

const collectionProducts = "product_requests"

type ProductRequestRepository struct {
	p *Provider
}

func NewProductRequestRepository(p *Provider) *ProductRequestRepository {
	return &ProductRequestRepository{p: p}
}

func (r *ProductRequestRepository) Create(ctx context.Context, req *domain.ProductListingRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionProducts)
	if err != nil {
		return err
	}
	if req.ID == "" {
		req.ID = newID()
	}
	if _, err := coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("insert product request: %w", err)
	}
	return nil
}

func (r *ProductRequestRepository) FindByID(ctx context.Context, id string) (*domain.ProductListingRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionProducts)
	if err != nil {
		return nil, err
	}

	var req domain.ProductListingRequest
	if err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find product request: %w", err)
	}
	return &req, nil
}

func (r *ProductRequestRepository) List(ctx context.Context, f domain.ListFilter) ([]domain.ProductListingRequest, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionProducts)
	if err != nil {
		return nil, 0, err
	}
	items, total, err := findPage[domain.ProductListingRequest](ctx, coll, productFilter(f), f)
	if err != nil {
		return nil, 0, fmt.Errorf("list product requests: %w", err)
	}
	return items, total, nil
}

// ApplyDecision is a conditional update on {_id, status: d.From}.
func (r *ProductRequestRepository) ApplyDecision(ctx context.Context, id string, d domain.Decision) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionProducts)
	if err != nil {
		return false, err
	}
	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": string(d.From)},
		bson.M{"$set": decisionSet(d)},
	)
	if err != nil {
		return false, fmt.Errorf("decide product request: %w", err)
	}
	return res.MatchedCount == 1, nil
}

// Assign sets or clears the model assignment while the status is one of allowed.
func (r *ProductRequestRepository) Assign(ctx context.Context, id string, a domain.Assignment, allowed []domain.RequestStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionProducts)
	if err != nil {
		return false, err
	}
	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$in": statusStrings(allowed)}},
		assignmentUpdate(a),
	)
	if err != nil {
		return false, fmt.Errorf("assign product request: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *ProductRequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionProducts)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_account_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "assigned_model_ref", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

func productFilter(f domain.ListFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	} else if len(f.Statuses) > 0 {
		filter["status"] = bson.M{"$in": statusStrings(f.Statuses)}
	}
	if f.OwnerID != "" {
		filter["owner_account_id"] = f.OwnerID
	}
	if f.ModelRef != "" {
		filter["assigned_model_ref"] = f.ModelRef
	}
	if f.Search != "" {
		filter["$or"] = searchClause(f.Search, "owner_name", "owner_email", "product.name")
	}
	return filter
}

func assignmentUpdate(a domain.Assignment) bson.M {
	set := bson.M{"updated_at": a.At}
	unset := bson.M{}

	if a.ModelRef == nil {
		unset["assigned_model_ref"] = ""
		unset["shoot_details"] = ""
	} else {
		set["assigned_model_ref"] = *a.ModelRef
		if a.ShootDetails != nil {
			set["shoot_details"] = *a.ShootDetails
		} else {
			unset["shoot_details"] = ""
		}
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

func statusStrings(in []domain.RequestStatus) bson.A {
	out := make(bson.A, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}
