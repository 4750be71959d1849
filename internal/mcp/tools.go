package mcp

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/dto"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/seed"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/services"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

type listMyListsInput struct{}

type getListInput struct {
	ListID string `json:"list_id" jsonschema:"Id of the list to show"`
}

type createListInput struct {
	Title string `json:"title" jsonschema:"List title, 1 to 200 characters"`
	Type  string `json:"type" jsonschema:"Free-text category such as book or film; bookmarks are routed by it"`
}

type addItemInput struct {
	ListID string  `json:"list_id" jsonschema:"Id of one of the caller's lists"`
	Title  string  `json:"title" jsonschema:"Item title, 1 to 200 characters"`
	Note   *string `json:"note,omitempty" jsonschema:"Optional note, up to 2000 characters"`
	URL    *string `json:"url,omitempty" jsonschema:"Optional absolute http or https URL"`
}

type updateItemInput struct {
	ListID string  `json:"list_id" jsonschema:"Id of the list holding the item"`
	ItemID string  `json:"item_id" jsonschema:"Id of the item to change"`
	Title  *string `json:"title,omitempty" jsonschema:"New title"`
	Note   *string `json:"note,omitempty" jsonschema:"New note; empty clears it"`
	URL    *string `json:"url,omitempty" jsonschema:"New URL; empty clears it"`
}

type setItemStatusInput struct {
	ListID string `json:"list_id" jsonschema:"Id of the list holding the item"`
	ItemID string `json:"item_id" jsonschema:"Id of the item"`
	Status string `json:"status" jsonschema:"active or done"`
}

type bookmarkItemInput struct {
	ItemID        string  `json:"item_id" jsonschema:"Id of another user's item to copy"`
	ViewingListID *string `json:"viewing_list_id,omitempty" jsonschema:"Id of the list currently shown, to keep it in view"`
}

type searchUsersInput struct {
	Query string `json:"query" jsonschema:"Text to look for in handles and display names"`
}

type getUserProfileInput struct {
	Handle string `json:"handle" jsonschema:"Handle of the user, with or without a leading @"`
}

type seedDemoInput struct{}

func readOnly() *mcpsdk.ToolAnnotations {
	return &mcpsdk.ToolAnnotations{ReadOnlyHint: true}
}

func mutating(idempotent bool) *mcpsdk.ToolAnnotations {
	destructive := false
	return &mcpsdk.ToolAnnotations{IdempotentHint: idempotent, DestructiveHint: &destructive}
}

func (s *Server) registerTools(srv *mcpsdk.Server) {
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolListMyLists,
		Description: toolDescription(toolListMyLists),
		Annotations: readOnly(),
		Meta:        widgetMeta("Loading your lists", "Lists loaded"),
	}, withViewer(s, toolListMyLists, s.listMyLists))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetList,
		Description: toolDescription(toolGetList),
		Annotations: readOnly(),
		Meta:        widgetMeta("Opening list", "List opened"),
	}, withViewer(s, toolGetList, s.getList))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolCreateList,
		Description: toolDescription(toolCreateList),
		Annotations: mutating(false),
		Meta:        widgetMeta("Creating list", "List created"),
	}, withViewer(s, toolCreateList, s.createList))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolAddItem,
		Description: toolDescription(toolAddItem),
		Annotations: mutating(false),
		Meta:        widgetMeta("Adding item", "Item added"),
	}, withViewer(s, toolAddItem, s.addItem))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolUpdateItem,
		Description: toolDescription(toolUpdateItem),
		Annotations: mutating(true),
		Meta:        widgetMeta("Updating item", "Item updated"),
	}, withViewer(s, toolUpdateItem, s.updateItem))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolSetItemStatus,
		Description: toolDescription(toolSetItemStatus),
		Annotations: mutating(true),
		Meta:        widgetMeta("Updating item", "Item updated"),
	}, withViewer(s, toolSetItemStatus, s.setItemStatus))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolBookmarkItem,
		Description: toolDescription(toolBookmarkItem),
		Annotations: mutating(false),
		Meta:        widgetMeta("Saving item", "Item saved"),
	}, withViewer(s, toolBookmarkItem, s.bookmarkItem))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolSearchUsers,
		Description: toolDescription(toolSearchUsers),
		Annotations: readOnly(),
		Meta:        widgetMeta("Searching", "Search done"),
	}, withViewer(s, toolSearchUsers, s.searchUsers))
	mcpsdk.AddTool(srv, &mcpsdk.Tool{
		Name:        toolGetUserProfile,
		Description: toolDescription(toolGetUserProfile),
		Annotations: readOnly(),
		Meta:        widgetMeta("Opening profile", "Profile opened"),
	}, withViewer(s, toolGetUserProfile, s.getUserProfile))

	if s.devTools {
		mcpsdk.AddTool(srv, &mcpsdk.Tool{
			Name:        toolSeedDemo,
			Description: toolDescription(toolSeedDemo),
			Annotations: mutating(true),
			Meta:        widgetMeta("Seeding demo data", "Demo data ready"),
		}, withViewer(s, toolSeedDemo, s.seedDemo))
	}
}

func (s *Server) listMyLists(ctx context.Context, viewer *models.User, _ listMyListsInput) (*toolResult, error) {
	view, err := s.views.Build(ctx, viewer, nil)
	if err != nil {
		return nil, err
	}
	return &toolResult{Message: summarizeOwnLists(view), View: view}, nil
}

func (s *Server) getList(ctx context.Context, viewer *models.User, in getListInput) (*toolResult, error) {
	listID, err := services.ParseID("list_id", in.ListID)
	if err != nil {
		return nil, err
	}
	view, err := s.views.Build(ctx, viewer, &listID)
	if err != nil {
		return nil, err
	}
	return &toolResult{Message: describeView(view), View: view}, nil
}

func (s *Server) createList(ctx context.Context, viewer *models.User, in createListInput) (*toolResult, error) {
	list, err := s.lists.CreateList(ctx, viewer, in.Title, in.Type)
	if err != nil {
		return nil, err
	}
	view, err := s.views.Build(ctx, viewer, &list.ID)
	if err != nil {
		return nil, err
	}
	return &toolResult{Message: fmt.Sprintf("Created list %q.", list.Title), View: view}, nil
}

func (s *Server) addItem(ctx context.Context, viewer *models.User, in addItemInput) (*toolResult, error) {
	listID, err := services.ParseID("list_id", in.ListID)
	if err != nil {
		return nil, err
	}
	item, err := s.lists.AddItem(ctx, viewer, listID, services.ItemInput{Title: in.Title, Note: in.Note, URL: in.URL})
	if err != nil {
		return nil, err
	}
	view, err := s.views.Build(ctx, viewer, &listID)
	if err != nil {
		return nil, err
	}
	return &toolResult{Message: fmt.Sprintf("Added %q.", item.Title), View: view, CreatedItemID: &item.ID}, nil
}

func (s *Server) updateItem(ctx context.Context, viewer *models.User, in updateItemInput) (*toolResult, error) {
	listID, itemID, err := parseListItem(in.ListID, in.ItemID)
	if err != nil {
		return nil, err
	}
	patch := store.ItemPatch{Title: in.Title, Note: in.Note, URL: in.URL}
	if err := s.lists.UpdateItem(ctx, viewer, listID, itemID, patch); err != nil {
		return nil, err
	}
	view, err := s.views.Build(ctx, viewer, &listID)
	if err != nil {
		return nil, err
	}
	msg := "Item updated."
	if patch.Empty() {
		msg = "Nothing to change."
	}
	return &toolResult{Message: msg, View: view}, nil
}

func (s *Server) setItemStatus(ctx context.Context, viewer *models.User, in setItemStatusInput) (*toolResult, error) {
	listID, itemID, err := parseListItem(in.ListID, in.ItemID)
	if err != nil {
		return nil, err
	}
	status := models.ItemStatus(in.Status)
	if err := s.lists.SetItemStatus(ctx, viewer, listID, itemID, status); err != nil {
		return nil, err
	}
	view, err := s.views.Build(ctx, viewer, &listID)
	if err != nil {
		return nil, err
	}
	return &toolResult{Message: fmt.Sprintf("Marked item as %s.", in.Status), View: view}, nil
}

func (s *Server) bookmarkItem(ctx context.Context, viewer *models.User, in bookmarkItemInput) (*toolResult, error) {
	itemID, err := services.ParseID("item_id", in.ItemID)
	if err != nil {
		return nil, err
	}
	var viewing *uuid.UUID
	if in.ViewingListID != nil && *in.ViewingListID != "" {
		id, err := services.ParseID("viewing_list_id", *in.ViewingListID)
		if err != nil {
			return nil, err
		}
		viewing = &id
	}
	res, err := s.bookmarks.BookmarkItem(ctx, viewer, itemID, viewing)
	if err != nil {
		return nil, err
	}
	return &toolResult{Message: res.Message, View: res.View, CreatedItemID: res.CreatedItemID}, nil
}

func (s *Server) searchUsers(ctx context.Context, viewer *models.User, in searchUsersInput) (*toolResult, error) {
	view, err := s.views.Search(ctx, viewer, in.Query)
	if err != nil {
		return nil, err
	}
	sv := view.(dto.SearchView)
	var msg string
	switch {
	case sv.Query == "":
		msg = "Type a name or handle to search."
	case len(sv.Results) == 0:
		msg = fmt.Sprintf("No users match %q.", sv.Query)
	default:
		msg = fmt.Sprintf("Found %s matching %q.", plural(len(sv.Results), "user"), sv.Query)
	}
	return &toolResult{Message: msg, View: view}, nil
}

func (s *Server) getUserProfile(ctx context.Context, viewer *models.User, in getUserProfileInput) (*toolResult, error) {
	view, err := s.views.Profile(ctx, viewer, in.Handle)
	if err != nil {
		return nil, err
	}
	return &toolResult{Message: describeView(view), View: view}, nil
}

func (s *Server) seedDemo(ctx context.Context, viewer *models.User, _ seedDemoInput) (*toolResult, error) {
	res, err := seed.Demo(ctx, s.store, s.users)
	if err != nil {
		return nil, err
	}
	view, err := s.views.Search(ctx, viewer, "")
	if err != nil {
		return nil, err
	}
	sv := view.(dto.SearchView)
	for _, handle := range res.Handles {
		if p, err := s.users.Profile(ctx, handle); err == nil {
			sv.Results = append(sv.Results, *p)
		}
	}
	msg := fmt.Sprintf("Demo users ready (%s, %s, %s added).",
		plural(res.Users, "user"), plural(res.Lists, "list"), plural(res.Items, "item"))
	return &toolResult{Message: msg, View: sv}, nil
}

func parseListItem(rawList, rawItem string) (uuid.UUID, uuid.UUID, error) {
	listID, err := services.ParseID("list_id", rawList)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	itemID, err := services.ParseID("item_id", rawItem)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return listID, itemID, nil
}

func summarizeOwnLists(view dto.View) string {
	switch v := view.(type) {
	case dto.MineView:
		return fmt.Sprintf("You have %s. Showing %q.", plural(len(v.MyLists), "list"), v.List.Title)
	default:
		return "You have no lists yet. Create one with create_list."
	}
}

func describeView(view dto.View) string {
	switch v := view.(type) {
	case dto.MineView:
		return fmt.Sprintf("Showing your list %q (%d active, %d done).", v.List.Title, v.List.ActiveCount, v.List.DoneCount)
	case dto.ProfileView:
		joined := "@" + v.Profile.Handle + " joined " + humanize.Time(v.Profile.CreatedAt) + "."
		if v.List == nil {
			return joined + " They have no lists yet."
		}
		return fmt.Sprintf("%s Showing %q (%d active, %d done).", joined, v.List.Title, v.List.ActiveCount, v.List.DoneCount)
	default:
		return summarizeOwnLists(view)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
