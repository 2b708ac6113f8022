package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rgehrsitz/fidash/internal/config"
	"github.com/rgehrsitz/fidash/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserDataCollection holds one document per user
const UserDataCollection = "user_data"

// ErrNotFound is returned by Load when the user has no remote document yet
var ErrNotFound = errors.New("no remote data for user")

// userDocument is the stored shape: the portfolio lives under data,
// keyed by user_id.
type userDocument struct {
	UserID    string    `bson:"user_id"`
	Data      bson.Raw  `bson:"data"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoRepository stores whole portfolios per user.
type MongoRepository struct {
	provider CollectionProvider
	parser   *config.InputParser
	now      func() time.Time
}

// NewMongoRepository creates a new MongoRepository.
func NewMongoRepository(provider CollectionProvider) *MongoRepository {
	return &MongoRepository{
		provider: provider,
		parser:   config.NewInputParser(),
		now:      time.Now,
	}
}

// Load fetches the user's portfolio. The stored document goes through the
// same lenient decoding as a local state file.
func (r *MongoRepository) Load(ctx context.Context, userID string) (*domain.Portfolio, error) {
	if userID == "" {
		return nil, fmt.Errorf("user id is required")
	}
	var doc userDocument
	err := r.provider.Collection(UserDataCollection).
		FindOne(ctx, bson.M{"user_id": userID}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load data for user %s: %w", userID, err)
	}
	if len(doc.Data) == 0 {
		return nil, ErrNotFound
	}

	data, err := bson.MarshalExtJSON(doc.Data, false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to convert stored data for user %s: %w", userID, err)
	}
	p, err := r.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored data for user %s: %w", userID, err)
	}
	return p, nil
}

// Save upserts the user's portfolio and stamps updated_at.
func (r *MongoRepository) Save(ctx context.Context, userID string, p *domain.Portfolio) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	data, err := encodePortfolio(p)
	if err != nil {
		return err
	}

	filter := bson.M{"user_id": userID}
	update := bson.M{"$set": bson.M{
		"user_id":    userID,
		"data":       data,
		"updated_at": r.now().UTC(),
	}}
	_, err = r.provider.Collection(UserDataCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save data for user %s: %w", userID, err)
	}
	return nil
}

// Delete removes the user's remote document. Deleting a missing document is
// not an error.
func (r *MongoRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.provider.Collection(UserDataCollection).DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to delete data for user %s: %w", userID, err)
	}
	return nil
}

// encodePortfolio goes through JSON since decimals have no BSON codec; amounts
// are stored as decimal strings and parsed back without loss.
func encodePortfolio(p *domain.Portfolio) (bson.M, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode portfolio: %w", err)
	}
	var doc bson.M
	if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert portfolio to BSON: %w", err)
	}
	return doc, nil
}
