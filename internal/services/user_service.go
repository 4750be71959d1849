package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/dto"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/identity"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
)

const handleSuffixAttempts = 5

// UserService maps external identities onto user records.
type UserService struct {
	store *store.Store
	intn  func(n int) int
}

func NewUserService(st *store.Store) *UserService {
	return &UserService{store: st, intn: rand.IntN}
}

// EnsureUser returns the user for id, creating it on first contact and
// refreshing handle, display name and avatar when they changed.
func (s *UserService) EnsureUser(ctx context.Context, id identity.Identity) (*models.User, error) {
	if id.AuthProviderID == "" {
		return nil, fmt.Errorf("%w: empty auth provider id", ErrInvalidInput)
	}

	existing, err := s.store.GetUserByAuthProviderID(ctx, id.AuthProviderID)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return s.refresh(ctx, existing, id)
	}

	user, err := s.create(ctx, id)
	if errors.Is(err, store.ErrHandleTaken) {
		// Someone registered the handle between the check and the insert.
		user, err = s.create(ctx, id)
	}
	if errors.Is(err, store.ErrUserExists) {
		return s.store.GetUserByAuthProviderID(ctx, id.AuthProviderID)
	}
	return user, err
}

func (s *UserService) create(ctx context.Context, id identity.Identity) (*models.User, error) {
	handle, err := s.resolveHandle(ctx, id.Handle, id.AuthProviderID, "")
	if err != nil {
		return nil, err
	}
	user := &models.User{
		AuthProviderID: id.AuthProviderID,
		Handle:         handle,
		DisplayName:    id.DisplayName,
		AvatarURL:      id.AvatarURL,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) refresh(ctx context.Context, user *models.User, id identity.Identity) (*models.User, error) {
	handle, err := s.resolveHandle(ctx, id.Handle, id.AuthProviderID, user.Handle)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if handle != user.Handle {
		updates["handle"] = handle
	}
	if id.DisplayName != nil && !equalPtr(user.DisplayName, id.DisplayName) {
		updates["display_name"] = *id.DisplayName
	}
	if id.AvatarURL != nil && !equalPtr(user.AvatarURL, id.AvatarURL) {
		updates["avatar_url"] = *id.AvatarURL
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.store.UpdateUser(ctx, user.ID, updates); err != nil {
		if errors.Is(err, store.ErrHandleTaken) {
			delete(updates, "handle")
			if err := s.store.UpdateUser(ctx, user.ID, updates); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return s.store.GetUserByID(ctx, user.ID)
}

// resolveHandle returns candidate when no other identity holds it, else a
// candidate_NNNN variant no longer than identity.MaxHandleRunes. current is the caller's existing handle and is
// kept when it is already such a variant.
func (s *UserService) resolveHandle(ctx context.Context, candidate, authProviderID, current string) (string, error) {
	base := identity.NormalizeHandle(candidate)

	taken, err := s.store.HandleTakenByOther(ctx, base, authProviderID)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	stem := identity.SuffixStem(base)
	if isSuffixedHandle(current, stem) {
		return current, nil
	}

	for range handleSuffixAttempts {
		h := fmt.Sprintf("%s_%d", stem, 1000+s.intn(9000))
		taken, err := s.store.HandleTakenByOther(ctx, h, authProviderID)
		if err != nil {
			return "", err
		}
		if !taken {
			return h, nil
		}
	}
	return "", ErrHandleUnavailable
}

var suffixPattern = regexp.MustCompile(`^_\d{4}$`)

func isSuffixedHandle(handle, base string) bool {
	rest, ok := strings.CutPrefix(handle, base)
	return ok && suffixPattern.MatchString(rest)
}

// Profile returns the public profile for handle.
func (s *UserService) Profile(ctx context.Context, handle string) (*dto.UserProfile, error) {
	user, err := s.store.GetUserByHandle(ctx, identity.LookupHandle(handle))
	if err != nil {
		return nil, err
	}
	profile := dto.ProfileOf(user)
	return &profile, nil
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
