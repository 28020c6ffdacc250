package mongodb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"
	"crms/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type memberRepository struct {
	collection *mongo.Collection
}

func NewMemberRepository(db *mongo.Database) interfaces.MemberRepository {
	return &memberRepository{
		collection: db.Collection("members"),
	}
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	member.ID = primitive.NewObjectID()
	member.Email = strings.ToLower(member.Email)

	_, err := r.collection.InsertOne(ctx, member)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewConflict("email %s is already registered", member.Email)
		}
		return fmt.Errorf("failed to create member: %w", err)
	}

	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	var member models.Member
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFound("member %s", id.Hex())
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	var member models.Member
	err := r.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&member)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperrors.NewNotFound("member %s", email)
		}
		return nil, fmt.Errorf("failed to get member by email: %w", err)
	}

	return &member, nil
}

func (r *memberRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Member, int64, error) {
	filter := bson.M{}
	if params.Search != "" {
		searchFilter := params.GetSearchFilter([]string{"first_name", "last_name", "email"})
		if len(searchFilter) > 0 {
			filter = searchFilter
		}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count members: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %w", err)
	}
	defer cursor.Close(ctx)

	var members []*models.Member
	for cursor.Next(ctx) {
		var member models.Member
		if err := cursor.Decode(&member); err != nil {
			return nil, 0, fmt.Errorf("failed to decode member: %w", err)
		}
		members = append(members, &member)
	}

	return members, total, nil
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	member.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": member.ID}, member)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}
	if result.MatchedCount == 0 {
		return apperrors.NewNotFound("member %s", member.ID.Hex())
	}

	return nil
}
