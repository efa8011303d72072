package services

import (
	"context"
	"crypto/tls"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pickleconnect/backend/internal/models"
)

// MongoPlayerService stores player profiles in the "players" collection,
// keyed by the identity provider's user ID (_id).
type MongoPlayerService struct {
	client     *mongo.Client
	db         *mongo.Database
	playersCol *mongo.Collection
}

func NewMongoPlayerService(ctx context.Context, mongoURI, dbName string) (*MongoPlayerService, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		MaxVersion: tls.VersionTLS12,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI).SetTLSConfig(tlsCfg))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("players")

	log.Printf("MongoDB connected (players): db=%s", dbName)
	return &MongoPlayerService{
		client:     client,
		db:         db,
		playersCol: col,
	}, nil
}

func (s *MongoPlayerService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoPlayerService) Get(ctx context.Context, userID string) (*models.PlayerProfile, error) {
	var profile models.PlayerProfile
	if err := s.playersCol.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// Put replaces the whole document so a repeated save cannot leave stale
// fields behind and never creates a second document for the same player.
func (s *MongoPlayerService) Put(ctx context.Context, profile *models.PlayerProfile) error {
	_, err := s.playersCol.ReplaceOne(
		ctx,
		bson.M{"_id": profile.UserID},
		profile,
		options.Replace().SetUpsert(true),
	)
	return err
}
