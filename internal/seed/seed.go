// Package seed loads the demo accounts used during development.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/identity"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/services"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
	"gopkg.in/yaml.v3"
)

//go:embed demo.yaml
var demoYAML []byte

const ProviderPrefix = "demo:"

type Fixture struct {
	Users []FixtureUser `yaml:"users"`
}

type FixtureUser struct {
	Handle      string        `yaml:"handle"`
	DisplayName string        `yaml:"display_name"`
	Bio         string        `yaml:"bio"`
	AvatarURL   string        `yaml:"avatar_url"`
	Lists       []FixtureList `yaml:"lists"`
}

type FixtureList struct {
	Title string        `yaml:"title"`
	Type  string        `yaml:"type"`
	Items []FixtureItem `yaml:"items"`
}

type FixtureItem struct {
	Title  string `yaml:"title"`
	Note   string `yaml:"note"`
	URL    string `yaml:"url"`
	Status string `yaml:"status"`
}

// Result counts what Demo created. Users counts every demo account,
// including ones that already existed.
type Result struct {
	Users   int
	Lists   int
	Items   int
	Handles []string
}

// Parse decodes a fixture, rejecting unknown keys.
func Parse(data []byte) (*Fixture, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode demo fixture: %w", err)
	}
	for _, u := range f.Users {
		if strings.TrimSpace(u.Handle) == "" {
			return nil, fmt.Errorf("demo fixture: user without handle")
		}
		for _, l := range u.Lists {
			for _, it := range l.Items {
				if it.Status != "" && !models.ItemStatus(it.Status).Valid() {
					return nil, fmt.Errorf("demo fixture: item %q has status %q", it.Title, it.Status)
				}
			}
		}
	}
	return &f, nil
}

func DemoFixture() (*Fixture, error) {
	return Parse(demoYAML)
}

// Demo ensures every demo account exists and gives lists to the ones
// that have none. Running it again creates nothing new.
func Demo(ctx context.Context, st *store.Store, users *services.UserService) (*Result, error) {
	fixture, err := DemoFixture()
	if err != nil {
		return nil, err
	}
	return Apply(ctx, st, users, fixture)
}

func Apply(ctx context.Context, st *store.Store, users *services.UserService, fixture *Fixture) (*Result, error) {
	res := &Result{}
	for _, fu := range fixture.Users {
		user, err := users.EnsureUser(ctx, identity.Identity{
			AuthProviderID: ProviderPrefix + fu.Handle,
			Handle:         fu.Handle,
			DisplayName:    optional(fu.DisplayName),
			AvatarURL:      optional(fu.AvatarURL),
		})
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", fu.Handle, err)
		}
		res.Users++
		res.Handles = append(res.Handles, user.Handle)

		if fu.Bio != "" && (user.Bio == nil || *user.Bio != fu.Bio) {
			if err := st.UpdateUser(ctx, user.ID, map[string]any{"bio": fu.Bio}); err != nil {
				return nil, fmt.Errorf("seed bio for %s: %w", fu.Handle, err)
			}
		}

		existing, err := st.GetListsByOwner(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			continue
		}

		err = st.Transaction(ctx, func(tx *store.Store) error {
			for _, fl := range fu.Lists {
				list, err := tx.CreateList(ctx, user.ID, fl.Title, services.NormalizeListType(fl.Type))
				if err != nil {
					return err
				}
				res.Lists++
				for _, fi := range fl.Items {
					item, err := tx.AddItem(ctx, list.ID, fi.Title, optional(fi.Note), optional(fi.URL))
					if err != nil {
						return err
					}
					res.Items++
					if fi.Status == string(models.ItemStatusDone) {
						if err := tx.SetItemStatus(ctx, list.ID, item.ID, models.ItemStatusDone); err != nil {
							return err
						}
					}
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("seed lists for %s: %w", fu.Handle, err)
		}
	}
	return res, nil
}

func optional(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}
