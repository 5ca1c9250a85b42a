package services

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/akashsingh062/Smart-Ai-Todo/models"
	"github.com/akashsingh062/Smart-Ai-Todo/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserService struct {
	UserCollection *mongo.Collection
}

func NewUserService(userCollection *mongo.Collection) *UserService {
	return &UserService{UserCollection: userCollection}
}

// EnsureIndexes creates the unique username/email indexes. Duplicate
// registrations then fail at the database even under concurrent requests.
func (s *UserService) EnsureIndexes(ctx context.Context) error {
	_, err := s.UserCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

// RegisterUser creates a user with a bcrypt-hashed password and returns the
// user together with a signed token.
func (s *UserService) RegisterUser(ctx context.Context, username, email, password string) (*models.User, string, error) {
	var existing models.User
	err := s.UserCollection.FindOne(ctx, bson.M{
		"$or": []bson.M{{"username": username}, {"email": email}},
	}).Decode(&existing)
	if err == nil {
		return nil, "", ErrUserExists
	}
	if err != mongo.ErrNoDocuments {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Username:  html.EscapeString(username),
		Email:     html.EscapeString(email),
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}

	if _, err := s.UserCollection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, "", ErrUserExists
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return user, token, nil
}

// LoginUser verifies the password for the given email. The same error is
// returned for an unknown email and a wrong password.
func (s *UserService) LoginUser(ctx context.Context, email, password string) (*models.User, string, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPassword(user.Password, password) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return &user, token, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}
