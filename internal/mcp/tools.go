package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/shelf/internal/item"
)

var tableNames = []string{string(item.Items), string(item.DeletedItems)}

var createToolDef = mcp.NewTool(
	"items_create",
	mcp.WithDescription("Create an item in the items table. The id is assigned by the store."),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Item name (letters, digits and underscores)"),
	),
	mcp.WithString("price",
		mcp.Required(),
		mcp.Description("Non-negative decimal price, e.g. \"2.50\". More than two fractional digits are rounded half-up."),
	),
	mcp.WithNumber("stock",
		mcp.Required(),
		mcp.Description("Units in stock"),
		mcp.Min(0),
	),
)

var readToolDef = mcp.NewTool(
	"items_read",
	mcp.WithDescription("List every row of a table ordered by id."),
	mcp.WithString("table",
		mcp.Required(),
		mcp.Description("Table to read"),
		mcp.Enum(tableNames...),
	),
)

var getToolDef = mcp.NewTool(
	"items_get",
	mcp.WithDescription("Fetch one row of a table by id."),
	mcp.WithString("table",
		mcp.Description("Table to look in (default: items)"),
		mcp.Enum(tableNames...),
	),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Item id"),
		mcp.Min(1),
	),
)

var updateToolDef = mcp.NewTool(
	"items_update",
	mcp.WithDescription("Change one field of an item in the items table."),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Item id"),
		mcp.Min(1),
	),
	mcp.WithString("field",
		mcp.Required(),
		mcp.Description("Field to change"),
		mcp.Enum(string(item.FieldName), string(item.FieldPrice), string(item.FieldStock)),
	),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("New value: a name, a decimal price, or an integer stock"),
	),
)

var deleteToolDef = mcp.NewTool(
	"items_delete",
	mcp.WithDescription("Move an item from items to deleted_items, with an optional comment."),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Item id"),
		mcp.Min(1),
	),
	mcp.WithString("comment",
		mcp.Description("Why the item was deleted"),
	),
)

var restoreToolDef = mcp.NewTool(
	"items_restore",
	mcp.WithDescription("Move an item from deleted_items back to items. The comment is dropped."),
	mcp.WithNumber("id",
		mcp.Required(),
		mcp.Description("Item id"),
		mcp.Min(1),
	),
)

var execToolDef = mcp.NewTool(
	"items_exec",
	mcp.WithDescription("Run one shell command line (e.g. \"READ items\", \"DELETE 3 damaged\") and return the shell's response."),
	mcp.WithString("command",
		mcp.Required(),
		mcp.Description("Command line as typed at the shell prompt"),
	),
)
