package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mavera/backoffice/internal/core/domain"
)

const credentialCollection = "staff_credentials"

// CredentialRepository implements ports.CredentialRepository using MongoDB.
type CredentialRepository struct {
	coll *mongo.Collection
}

func NewCredentialRepository(db *mongo.Database) *CredentialRepository {
	return &CredentialRepository{coll: db.Collection(credentialCollection)}
}

type mongoCredential struct {
	ID                string   `bson:"_id"`
	Email             string   `bson:"email"`
	PasswordHash      string   `bson:"password_hash"`
	Name              string   `bson:"name"`
	Role              string   `bson:"role"`
	Roles             []string `bson:"roles,omitempty"`
	CustomPermissions []string `bson:"custom_permissions,omitempty"`
	Avatar            string   `bson:"avatar"`
	CreatedAt         int64    `bson:"created_at"`
	UpdatedAt         int64    `bson:"updated_at"`
}

func (r *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoCredential(cred)
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert credential: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoCredential
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	return mc.toDomain(), nil
}

// EnsureIndexes creates the unique email index.
func (r *CredentialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func toMongoCredential(c *domain.Credential) mongoCredential {
	p := c.Profile
	doc := mongoCredential{
		ID:           p.ID,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Name:         p.Name,
		Role:         string(p.Role),
		Avatar:       p.Avatar,
		CreatedAt:    c.CreatedAt.Unix(),
		UpdatedAt:    c.UpdatedAt.Unix(),
	}
	for _, r := range p.Roles {
		doc.Roles = append(doc.Roles, string(r))
	}
	for _, perm := range p.CustomPermissions {
		doc.CustomPermissions = append(doc.CustomPermissions, string(perm))
	}
	return doc
}

func (mc mongoCredential) toDomain() *domain.Credential {
	profile := domain.UserProfile{
		ID:     mc.ID,
		Name:   mc.Name,
		Email:  mc.Email,
		Role:   domain.Role(mc.Role),
		Avatar: mc.Avatar,
	}
	for _, r := range mc.Roles {
		profile.Roles = append(profile.Roles, domain.Role(r))
	}
	for _, p := range mc.CustomPermissions {
		profile.CustomPermissions = append(profile.CustomPermissions, domain.Permission(p))
	}
	return &domain.Credential{
		Email:        mc.Email,
		PasswordHash: mc.PasswordHash,
		Profile:      profile,
		CreatedAt:    unixToTime(mc.CreatedAt),
		UpdatedAt:    unixToTime(mc.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
