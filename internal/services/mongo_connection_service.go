package services

import (
	"context"
	"crypto/tls"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pickleconnect/backend/internal/models"
)

// MongoConnectionService stores directed connection records in the
// "connections" collection with auto-assigned IDs.
type MongoConnectionService struct {
	client         *mongo.Client
	db             *mongo.Database
	connectionsCol *mongo.Collection
}

func NewMongoConnectionService(ctx context.Context, mongoURI, dbName string) (*MongoConnectionService, error) {
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
	col := db.Collection("connections")

	// Best-effort indexes. The unique compound index backstops the duplicate
	// check against racing connect calls for the same pair.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "connected_to_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "connected_at", Value: -1}}},
	})

	log.Printf("MongoDB connected (connections): db=%s", dbName)
	return &MongoConnectionService{
		client:         client,
		db:             db,
		connectionsCol: col,
	}, nil
}

func (s *MongoConnectionService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoConnectionService) Insert(ctx context.Context, conn *models.Connection) error {
	doc := *conn
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	_, err := s.connectionsCol.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyConnected
		}
		return err
	}
	return nil
}

func (s *MongoConnectionService) ListByOwner(ctx context.Context, ownerID string) ([]*models.Connection, error) {
	cur, err := s.connectionsCol.Find(
		ctx,
		bson.M{"user_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "connected_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]*models.Connection, 0)
	for cur.Next(ctx) {
		var conn models.Connection
		if err := cur.Decode(&conn); err != nil {
			return nil, err
		}
		out = append(out, &conn)
	}
	return out, cur.Err()
}

func (s *MongoConnectionService) Exists(ctx context.Context, ownerID, peerID string) (bool, error) {
	count, err := s.connectionsCol.CountDocuments(
		ctx,
		bson.M{"user_id": ownerID, "connected_to_id": peerID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
