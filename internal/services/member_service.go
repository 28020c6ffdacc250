package services

import (
	"context"
	"time"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/interfaces"
	"crms/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemberService interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error)
	Register(ctx context.Context, member *models.Member) (*models.Member, error)
	UpdateProfile(ctx context.Context, member *models.Member) (*models.Member, error)
	List(ctx context.Context, params *utils.PaginationParams) ([]*models.Member, int64, error)
}

type memberService struct {
	memberRepo interfaces.MemberRepository
}

func NewMemberService(memberRepo interfaces.MemberRepository) MemberService {
	return &memberService{memberRepo: memberRepo}
}

func (s *memberService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	return s.memberRepo.GetByID(ctx, id)
}

func (s *memberService) Register(ctx context.Context, member *models.Member) (*models.Member, error) {
	existing, err := s.memberRepo.GetByEmail(ctx, member.Email)
	if err != nil && !apperrors.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("email %s is already registered", member.Email)
	}

	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) UpdateProfile(ctx context.Context, member *models.Member) (*models.Member, error) {
	existing, err := s.memberRepo.GetByID(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	member.CreatedAt = existing.CreatedAt
	member.UpdatedAt = time.Now().UTC()
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Member, int64, error) {
	return s.memberRepo.List(ctx, params)
}
