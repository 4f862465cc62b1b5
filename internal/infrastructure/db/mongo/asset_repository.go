package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vogueline/agency-api/internal/core/domain"
)

const collectionAssets = "assets"

type AssetRepository struct {
	p *Provider
}

func NewAssetRepository(p *Provider) *AssetRepository {
	return &AssetRepository{p: p}
}

func (r *AssetRepository) Insert(ctx context.Context, a *domain.AssetRef) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionAssets)
	if err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = newID()
	}
	if _, err := coll.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// ListByOwner returns the owner's assets newest first.
func (r *AssetRepository) ListByOwner(ctx context.Context, ownerID string, purpose domain.AssetPurpose) ([]domain.AssetRef, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionAssets)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"owner_id": ownerID}
	if purpose != "" {
		filter["purpose"] = string(purpose)
	}
	cur, err := coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	assets := []domain.AssetRef{}
	if err := cur.All(ctx, &assets); err != nil {
		return nil, fmt.Errorf("decode assets: %w", err)
	}
	return assets, nil
}

func (r *AssetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	coll, err := r.p.Collection(ctx, collectionAssets)
	if err != nil {
		return err
	}
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "purpose", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
