package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rgehrsitz/fidash/internal/domain"
	"github.com/rgehrsitz/fidash/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mock for DataStore interface.
type mockDataStore struct {
	findOneFunc   func(ctx context.Context, filter interface{}) *mongo.SingleResult
	updateOneFunc func(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	deleteOneFunc func(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error)
}

func (m *mockDataStore) FindOne(ctx context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	if m.findOneFunc != nil {
		return m.findOneFunc(ctx, filter)
	}
	return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
}

func (m *mockDataStore) UpdateOne(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	if m.updateOneFunc != nil {
		return m.updateOneFunc(ctx, filter, update, opts...)
	}
	return &mongo.UpdateResult{}, nil
}

func (m *mockDataStore) DeleteOne(ctx context.Context, filter interface{}, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	if m.deleteOneFunc != nil {
		return m.deleteOneFunc(ctx, filter)
	}
	return &mongo.DeleteResult{}, nil
}

// Mock for CollectionProvider interface.
type mockCollectionProvider struct {
	names []string
	store storage.DataStore
}

func (m *mockCollectionProvider) Collection(name string) storage.DataStore {
	m.names = append(m.names, name)
	if m.store == nil {
		return &mockDataStore{}
	}
	return m.store
}

func samplePortfolio() *domain.Portfolio {
	p := domain.NewPortfolio()
	p.Assets = []domain.Asset{
		{ID: "a1", Name: "Stocks", Value: decimal.RequireFromString("1234.56"), TargetPercent: decimal.NewFromInt(70)},
		{ID: "a2", Name: "Bonds", Value: decimal.NewFromInt(500), TargetPercent: decimal.NewFromInt(30)},
	}
	p.Expenses = domain.NewLegacyLedger(decimal.NewFromInt(2000))
	p.Incomes = domain.NewCategoryLedger(domain.Category{ID: "c1", Name: "Salary", Amount: decimal.NewFromInt(5000)})
	p.History = []domain.HistoryPoint{{Date: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), NetWorth: decimal.NewFromInt(1700)}}
	return &p
}

func TestNewMongoRepository(t *testing.T) {
	repo := storage.NewMongoRepository(&mockCollectionProvider{})
	assert.NotNil(t, repo, "NewMongoRepository returned nil")
}

func TestLoad_NotFound(t *testing.T) {
	provider := &mockCollectionProvider{}
	repo := storage.NewMongoRepository(provider)

	p, err := repo.Load(context.Background(), "user-1")

	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Nil(t, p)
	assert.Equal(t, []string{storage.UserDataCollection}, provider.names)
}

func TestLoad_RequiresUserID(t *testing.T) {
	_, err := storage.NewMongoRepository(&mockCollectionProvider{}).Load(context.Background(), "")
	assert.Error(t, err)
}

func TestLoad_DecodeError(t *testing.T) {
	boom := errors.New("connection reset")
	store := &mockDataStore{
		findOneFunc: func(ctx context.Context, filter interface{}) *mongo.SingleResult {
			return mongo.NewSingleResultFromDocument(bson.D{}, boom, nil)
		},
	}
	_, err := storage.NewMongoRepository(&mockCollectionProvider{store: store}).Load(context.Background(), "user-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	var saved bson.M
	store := &mockDataStore{
		updateOneFunc: func(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
			assert.Equal(t, bson.M{"user_id": "user-1"}, filter, "upsert is keyed by user id")
			require.Len(t, opts, 1)
			require.NotNil(t, opts[0].Upsert)
			assert.True(t, *opts[0].Upsert, "save must upsert")

			set := update.(bson.M)["$set"].(bson.M)
			assert.Equal(t, "user-1", set["user_id"])
			assert.IsType(t, time.Time{}, set["updated_at"])
			saved = set
			return &mongo.UpdateResult{UpsertedCount: 1}, nil
		},
		findOneFunc: func(ctx context.Context, filter interface{}) *mongo.SingleResult {
			require.NotNil(t, saved, "load before save")
			return mongo.NewSingleResultFromDocument(saved, nil, nil)
		},
	}
	repo := storage.NewMongoRepository(&mockCollectionProvider{store: store})
	original := samplePortfolio()

	require.NoError(t, repo.Save(ctx, "user-1", original))
	loaded, err := repo.Load(ctx, "user-1")
	require.NoError(t, err)

	require.Len(t, loaded.Assets, 2)
	assert.Equal(t, "a1", loaded.Assets[0].ID)
	assert.True(t, loaded.Assets[0].Value.Equal(original.Assets[0].Value), "amounts survive without float drift")
	assert.True(t, loaded.Expenses.IsLegacy())
	assert.True(t, loaded.Expenses.Monthly.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "Salary", loaded.Incomes.Categories[0].Name)
	assert.Equal(t, original.Assumptions.Years, loaded.Assumptions.Years)
	require.Len(t, loaded.History, 1)
	assert.Equal(t, original.History[0].Date, loaded.History[0].Date)
}

func TestSave_Error(t *testing.T) {
	boom := errors.New("write conflict")
	store := &mockDataStore{
		updateOneFunc: func(ctx context.Context, filter, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
			return nil, boom
		},
	}
	err := storage.NewMongoRepository(&mockCollectionProvider{store: store}).Save(context.Background(), "user-1", samplePortfolio())

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to save data for user user-1")
}

func TestSave_RequiresUserID(t *testing.T) {
	err := storage.NewMongoRepository(&mockCollectionProvider{}).Save(context.Background(), "", samplePortfolio())
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	var gotFilter interface{}
	store := &mockDataStore{
		deleteOneFunc: func(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error) {
			gotFilter = filter
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		},
	}
	require.NoError(t, storage.NewMongoRepository(&mockCollectionProvider{store: store}).Delete(context.Background(), "user-9"))
	assert.Equal(t, bson.M{"user_id": "user-9"}, gotFilter)
}
