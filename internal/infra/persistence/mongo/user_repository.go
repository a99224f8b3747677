package mongo

import (
	"context"
	"time"

	"taskman/internal/domain/entity"
	"taskman/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// userRepository implements the domain.UserRepository interface on MongoDB.
type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *mongo.Database) repository.UserRepository {
	return &userRepository{coll: db.Collection(usersCollection)}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var user entity.User
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return &user, nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := repo.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return &user, nil
}

// FindAll retrieves every user in the store.
func (repo *userRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	cursor, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	defer cursor.Close(ctx)

	var users []*entity.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "failed to decode users")
	}

	return users, nil
}

// Create persists a new user entity to the storage.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Tokens == nil {
		user.Tokens = []string{}
	}

	_, err := repo.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}

		return errors.Wrap(err, "failed to create user")
	}

	return nil
}

// Update modifies an existing user entity in the storage.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now().UTC()

	result, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicateEmail
		}

		return errors.Wrap(err, "failed to update user")
	}
	if result.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete removes a user by id.
func (repo *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	if result.DeletedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
