package mongodb

import (
	"context"
	"time"

	"github.com/nayanchoudhary31/raffle-service/internal/models"
	"github.com/nayanchoudhary31/raffle-service/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WinnerRepository implements the repositories.WinnerRepository interface
type WinnerRepository struct {
	collection *mongo.Collection
}

// NewWinnerRepository creates a new WinnerRepository
func NewWinnerRepository(db *mongo.Database) repositories.WinnerRepository {
	return &WinnerRepository{
		collection: db.Collection("winners"),
	}
}

// Create archives a settled winner record
func (r *WinnerRepository) Create(ctx context.Context, winner *models.WinnerRecord) error {
	winner.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, winner)
	return err
}

// FindRecent returns the most recent winners, newest first
func (r *WinnerRepository) FindRecent(ctx context.Context, limit int) ([]*models.WinnerRecord, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.M{"wonAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var winners []*models.WinnerRecord
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	return winners, nil
}

// FindByAccount finds every archived win for an account, newest first
func (r *WinnerRepository) FindByAccount(ctx context.Context, account string) ([]*models.WinnerRecord, error) {
	opts := options.Find().SetSort(bson.M{"wonAt": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"account": account}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var winners []*models.WinnerRecord
	if err := cursor.All(ctx, &winners); err != nil {
		return nil, err
	}
	return winners, nil
}
