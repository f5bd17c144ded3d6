package mongodb

import (
	"context"

	"github.com/nayanchoudhary31/raffle-service/internal/models"
	"github.com/nayanchoudhary31/raffle-service/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RaffleEventRepository struct {
	collection *mongo.Collection
}

func NewRaffleEventRepository(db *mongo.Database) repositories.RaffleEventRepository {
	return &RaffleEventRepository{
		collection: db.Collection("raffle_events"),
	}
}

func (r *RaffleEventRepository) Create(ctx context.Context, event *models.RaffleEvent) error {
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

func (r *RaffleEventRepository) FindRecent(ctx context.Context, limit int) ([]*models.RaffleEvent, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.M{"at": -1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*models.RaffleEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*models.RaffleEvent{}
	}
	return events, nil
}

func (r *RaffleEventRepository) FindByType(ctx context.Context, eventType models.RaffleEventType, limit int) ([]*models.RaffleEvent, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSort(bson.M{"at": -1})

	cursor, err := r.collection.Find(ctx, bson.M{"type": eventType}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []*models.RaffleEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*models.RaffleEvent{}
	}
	return events, nil
}
