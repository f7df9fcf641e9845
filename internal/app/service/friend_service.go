package service

import (
	"context"
	"strings"

	"friendbook/internal/common"
	"friendbook/internal/domain/model"
	"friendbook/internal/domain/repository"
)

type FriendService struct {
	friends repository.FriendRepository
}

func NewFriendService(friends repository.FriendRepository) *FriendService {
	return &FriendService{friends: friends}
}

type CreateFriendRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	DOB       string `json:"dob"`
}

type UpdateFriendRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	DOB       *string `json:"dob,omitempty"`
}

func (s *FriendService) List(ctx context.Context) (map[string]model.Friend, int) {
	return s.friends.List(ctx)
}

func (s *FriendService) Get(ctx context.Context, email string) (model.Friend, error) {
	return s.friends.Get(ctx, email)
}

func (s *FriendService) Create(ctx context.Context, req CreateFriendRequest) (model.Friend, error) {
	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.DOB == "" {
		return model.Friend{}, common.Errorf("email, firstName, lastName and dob are required: %w", common.ErrBadRequest)
	}
	// Minimal heuristic, deliberately looser than a full address grammar.
	if !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, ".") {
		return model.Friend{}, common.Errorf("email %q is not a valid address: %w", req.Email, common.ErrBadRequest)
	}

	friend := model.Friend{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DOB:       req.DOB,
	}
	return s.friends.Create(ctx, friend)
}

func (s *FriendService) Update(ctx context.Context, email string, req UpdateFriendRequest) (model.Friend, []string, error) {
	update := model.FriendUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DOB:       req.DOB,
	}
	return s.friends.Update(ctx, email, update)
}

func (s *FriendService) Delete(ctx context.Context, email string) (model.Friend, int, error) {
	return s.friends.Delete(ctx, email)
}
