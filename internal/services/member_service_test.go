package services

import (
	"context"
	"errors"
	"testing"

	"crms/internal/apperrors"
	"crms/internal/models"
	"crms/internal/repositories/memory"
	"crms/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// brokenMemberRepo fails every lookup with an infrastructure error and
// records whether a write slipped through anyway.
type brokenMemberRepo struct {
	err     error
	created bool
}

func (r *brokenMemberRepo) Create(ctx context.Context, member *models.Member) error {
	r.created = true
	return nil
}

func (r *brokenMemberRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	return nil, r.err
}

func (r *brokenMemberRepo) GetByEmail(ctx context.Context, email string) (*models.Member, error) {
	return nil, r.err
}

func (r *brokenMemberRepo) List(ctx context.Context, params *utils.PaginationParams) ([]*models.Member, int64, error) {
	return nil, 0, r.err
}

func (r *brokenMemberRepo) Update(ctx context.Context, member *models.Member) error {
	return r.err
}

func testMember(email string) *models.Member {
	return &models.Member{
		FirstName:            "Ana",
		LastName:             "Costa",
		Email:                email,
		DrivingLicenseNumber: "DL-991122",
	}
}

func TestMemberRegisterDuplicateEmail(t *testing.T) {
	svc := NewMemberService(memory.NewMemberRepository())
	ctx := context.Background()

	if _, err := svc.Register(ctx, testMember("ana@example.com")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := svc.Register(ctx, testMember("ana@example.com")); !apperrors.IsConflict(err) {
		t.Fatalf("Register() duplicate email error = %v, want conflict", err)
	}
}

func TestMemberRegisterLookupFailure(t *testing.T) {
	repo := &brokenMemberRepo{err: errors.New("connection reset")}
	svc := NewMemberService(repo)

	_, err := svc.Register(context.Background(), testMember("ana@example.com"))
	if !errors.Is(err, repo.err) {
		t.Fatalf("Register() error = %v, want the lookup failure", err)
	}
	if apperrors.IsConflict(err) {
		t.Fatal("Register() reported a conflict for a failed lookup")
	}
	if repo.created {
		t.Fatal("Register() created the member despite the failed lookup")
	}
}
