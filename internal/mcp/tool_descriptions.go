package mcp

const (
	toolListMyLists    = "list_my_lists"
	toolGetList        = "get_list"
	toolCreateList     = "create_list"
	toolAddItem        = "add_item"
	toolUpdateItem     = "update_item"
	toolSetItemStatus  = "set_item_status"
	toolBookmarkItem   = "bookmark_item"
	toolSearchUsers    = "search_users"
	toolGetUserProfile = "get_user_profile"
	toolSeedDemo       = "seed_demo"
)

// ToolNames lists the tools that render into the widget, in registration order.
var ToolNames = []string{
	toolListMyLists,
	toolGetList,
	toolCreateList,
	toolAddItem,
	toolUpdateItem,
	toolSetItemStatus,
	toolBookmarkItem,
	toolSearchUsers,
	toolGetUserProfile,
}

const serverInstructions = `Lists lets people keep public lists of things (books, films, places, recipes) and save items from other people's lists.

- Start with list_my_lists to see the caller's lists. An empty view means they have none yet; offer create_list.
- Lists have a free-text type such as "book" or "film". bookmark_item copies another user's item into the caller's most recent list of the same type, creating one if needed.
- Only the owner can add, edit or complete items in a list. Items of other users can only be bookmarked.
- Use search_users and get_user_profile to browse other people's lists.
- Every tool returns the full view to render, so there is no need to call list_my_lists after a change.`

var toolDescriptions = map[string]string{
	toolListMyLists:    "Show the caller's lists, centred on the most recently created one, with its active and done items.",
	toolGetList:        "Show one list by id. The caller's own lists open in edit mode; other users' lists open on their profile.",
	toolCreateList:     "Create a new public list owned by the caller. type is a free-text category used to route bookmarks.",
	toolAddItem:        "Add an item to one of the caller's lists. Optional note and an absolute http(s) url.",
	toolUpdateItem:     "Change the title, note or url of an item in one of the caller's lists. Omitted fields are left unchanged; an empty note or url clears it.",
	toolSetItemStatus:  "Mark an item in one of the caller's lists as active or done. Setting the current status again is a no-op.",
	toolBookmarkItem:   "Copy another user's item into the caller's list of the same type. Pass viewing_list_id to keep showing the list being browsed.",
	toolSearchUsers:    "Find users whose handle or display name contains the query. Returns up to 20 users, newest accounts first.",
	toolGetUserProfile: "Show a user's public profile and their most recent list.",
	toolSeedDemo:       "Create demo users with sample lists so there is something to browse. Development only.",
}

func toolDescription(name string) string {
	d, ok := toolDescriptions[name]
	if !ok {
		panic("missing MCP tool description for " + name)
	}
	return d
}
