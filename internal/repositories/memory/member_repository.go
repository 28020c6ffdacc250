package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"
	"crms/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memberRepository struct {
	mu      sync.RWMutex
	byID    map[primitive.ObjectID]*models.Member
	byEmail map[string]primitive.ObjectID
}

func NewMemberRepository() interfaces.MemberRepository {
	return &memberRepository{
		byID:    make(map[primitive.ObjectID]*models.Member),
		byEmail: make(map[string]primitive.ObjectID),
	}
}

func (r *memberRepository) Create(ctx context.Context, member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(member.Email)
	if _, exists := r.byEmail[email]; exists {
		return apperrors.NewConflict("email %s is already registered", email)
	}

	member.ID = primitive.NewObjectID()
	member.Email = email
	clone := *member
	r.byID[member.ID] = &clone
	r.byEmail[email] = member.ID

	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("member %s", id.Hex())
	}

	clone := *member
	return &clone, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, apperrors.NewNotFound("member %s", email)
	}

	clone := *r.byID[id]
	return &clone, nil
}

func (r *memberRepository) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Member, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Member
	for _, member := range r.byID {
		if params != nil && !matchesSearch(params.Search, member.FirstName, member.LastName, member.Email) {
			continue
		}
		clone := *member
		result = append(result, &clone)
	}

	sortStable(result, func(a, b *models.Member) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})

	total := int64(len(result))

	return paginate(result, params), total, nil
}

func (r *memberRepository) Update(ctx context.Context, member *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[member.ID]
	if !ok {
		return apperrors.NewNotFound("member %s", member.ID.Hex())
	}

	email := strings.ToLower(member.Email)
	if existing.Email != email {
		if _, exists := r.byEmail[email]; exists {
			return apperrors.NewConflict("email %s is already registered", email)
		}
		delete(r.byEmail, existing.Email)
		r.byEmail[email] = member.ID
	}

	member.Email = email
	member.UpdatedAt = time.Now()
	clone := *member
	r.byID[member.ID] = &clone

	return nil
}
