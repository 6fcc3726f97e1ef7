package store

import (
	"context"
	"errors"

	"github.com/quiz-me/apiserver/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const usersCollection = "users"

// UserRepository handles persistence for user documents.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(database *mongo.Database) *UserRepository {
	return &UserRepository{col: database.Collection(usersCollection)}
}

// EnsureIndexes creates the unique email index. The provider's pre-insert
// existence check is advisory only; this index is what actually enforces
// uniqueness under concurrent registration.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// FindByEmail returns the user document with the given email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (types.User, error) {
	var user types.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// FindByID returns the user document with the given hex id. A malformed id
// is reported as not found, the same as an absent document.
func (r *UserRepository) FindByID(ctx context.Context, id string) (types.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return types.User{}, ErrNotFound
	}

	var user types.User
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	return user, nil
}

// Insert stores a new user document and returns its generated id.
func (r *UserRepository) Insert(ctx context.Context, user types.User) (bson.ObjectID, error) {
	if user.Decks == nil {
		user.Decks = []types.Deck{}
	}
	user.ID = bson.NewObjectID()

	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bson.ObjectID{}, ErrDuplicate
		}
		return bson.ObjectID{}, err
	}
	return user.ID, nil
}
