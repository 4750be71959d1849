package dto

import (
	"encoding/json"
	"time"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/google/uuid"
)

type ViewMode string

const (
	ViewModeMine    ViewMode = "mine"
	ViewModeProfile ViewMode = "profile"
	ViewModeSearch  ViewMode = "search"
	ViewModeEmpty   ViewMode = "empty"
)

// View is what the widget renders after every tool call. The variants
// are MineView, ProfileView, SearchView and EmptyView; each one marshals
// with a "mode" discriminator.
type View interface {
	Mode() ViewMode
	isView()
}

type UserProfile struct {
	ID          uuid.UUID `json:"id"`
	Handle      string    `json:"handle"`
	DisplayName *string   `json:"display_name,omitempty"`
	Bio         *string   `json:"bio,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ProfileOf(u *models.User) UserProfile {
	return UserProfile{
		ID:          u.ID,
		Handle:      u.Handle,
		DisplayName: u.DisplayName,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		CreatedAt:   u.CreatedAt,
	}
}

// MineView shows one of the viewer's own lists.
type MineView struct {
	MyLists     []models.ListSummary `json:"my_lists"`
	List        models.ListSummary   `json:"list"`
	ActiveItems []models.Item        `json:"active_items"`
	DoneItems   []models.Item        `json:"done_items"`
}

// ProfileView shows another user and, when they have lists, one of them.
type ProfileView struct {
	MyLists     []models.ListSummary `json:"my_lists"`
	Profile     UserProfile          `json:"profile"`
	OwnerLists  []models.ListSummary `json:"owner_lists"`
	List        *models.ListSummary  `json:"list,omitempty"`
	ActiveItems []models.Item        `json:"active_items"`
	DoneItems   []models.Item        `json:"done_items"`
}

type SearchView struct {
	MyLists []models.ListSummary `json:"my_lists"`
	Query   string               `json:"query"`
	Results []UserProfile        `json:"results"`
}

// EmptyView is shown to a viewer who has no lists yet.
type EmptyView struct {
	MyLists     []models.ListSummary `json:"my_lists"`
	ActiveItems []models.Item        `json:"active_items"`
	DoneItems   []models.Item        `json:"done_items"`
}

func (MineView) Mode() ViewMode    { return ViewModeMine }
func (ProfileView) Mode() ViewMode { return ViewModeProfile }
func (SearchView) Mode() ViewMode  { return ViewModeSearch }
func (EmptyView) Mode() ViewMode   { return ViewModeEmpty }

func (MineView) isView()    {}
func (ProfileView) isView() {}
func (SearchView) isView()  {}
func (EmptyView) isView()   {}

func (v MineView) MarshalJSON() ([]byte, error) {
	type plain MineView
	v.MyLists = orEmpty(v.MyLists)
	v.ActiveItems = orEmpty(v.ActiveItems)
	v.DoneItems = orEmpty(v.DoneItems)
	return json.Marshal(struct {
		Mode ViewMode `json:"mode"`
		plain
	}{v.Mode(), plain(v)})
}

func (v ProfileView) MarshalJSON() ([]byte, error) {
	type plain ProfileView
	v.MyLists = orEmpty(v.MyLists)
	v.OwnerLists = orEmpty(v.OwnerLists)
	v.ActiveItems = orEmpty(v.ActiveItems)
	v.DoneItems = orEmpty(v.DoneItems)
	return json.Marshal(struct {
		Mode ViewMode `json:"mode"`
		plain
	}{v.Mode(), plain(v)})
}

func (v SearchView) MarshalJSON() ([]byte, error) {
	type plain SearchView
	v.MyLists = orEmpty(v.MyLists)
	v.Results = orEmpty(v.Results)
	return json.Marshal(struct {
		Mode ViewMode `json:"mode"`
		plain
	}{v.Mode(), plain(v)})
}

func (v EmptyView) MarshalJSON() ([]byte, error) {
	type plain EmptyView
	v.MyLists = orEmpty(v.MyLists)
	v.ActiveItems = orEmpty(v.ActiveItems)
	v.DoneItems = orEmpty(v.DoneItems)
	return json.Marshal(struct {
		Mode ViewMode `json:"mode"`
		plain
	}{v.Mode(), plain(v)})
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
