package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/oklog/ulid/v2"

	"github.com/hpungsan/shelf/internal/errors"
	"github.com/hpungsan/shelf/internal/item"
	"github.com/hpungsan/shelf/internal/ops"
	"github.com/hpungsan/shelf/internal/presenter"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db     *sql.DB
	logger *log.Logger
}

// NewHandlers creates a new Handlers instance. A nil logger discards output.
func NewHandlers(db *sql.DB, logger *log.Logger) *Handlers {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Handlers{db: db, logger: logger}
}

// Request types for each tool

// CreateRequest represents the arguments for items_create.
type CreateRequest struct {
	Name  string         `json:"name"`
	Price item.PriceText `json:"price"`
	Stock *int64         `json:"stock"`
}

// ReadRequest represents the arguments for items_read.
type ReadRequest struct {
	Table string `json:"table"`
}

// GetRequest represents the arguments for items_get.
type GetRequest struct {
	Table string `json:"table,omitempty"`
	ID    int64  `json:"id"`
}

// UpdateRequest represents the arguments for items_update.
type UpdateRequest struct {
	ID    int64  `json:"id"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// DeleteRequest represents the arguments for items_delete.
type DeleteRequest struct {
	ID      int64  `json:"id"`
	Comment string `json:"comment,omitempty"`
}

// RestoreRequest represents the arguments for items_restore.
type RestoreRequest struct {
	ID int64 `json:"id"`
}

// ExecRequest represents the arguments for items_exec.
type ExecRequest struct {
	Command string `json:"command"`
}

// ReadOutput is the result of items_read.
type ReadOutput struct {
	Table string        `json:"table"`
	Count int           `json:"count"`
	Rows  []item.Record `json:"rows"`
}

// ExecOutput is the result of items_exec.
type ExecOutput struct {
	Response string `json:"response"`
}

// Handler implementations

// HandleCreate handles the items_create tool call.
func (h *Handlers) HandleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CreateRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}
	if input.Stock == nil {
		return h.errorResult(errors.NewValidation("stock is required")), nil
	}

	price, err := input.Price.Parse()
	if err != nil {
		return h.errorResult(err), nil
	}

	result, err := ops.Create(ctx, h.db, ops.CreateInput{
		Name:  input.Name,
		Price: price,
		Stock: *input.Stock,
	})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleRead handles the items_read tool call.
func (h *Handlers) HandleRead(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ReadRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	table, err := parseTable(input.Table, "")
	if err != nil {
		return h.errorResult(err), nil
	}

	rows, err := ops.Read(ctx, h.db, table)
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(ReadOutput{Table: string(table), Count: len(rows), Rows: rows})
}

// HandleGet handles the items_get tool call.
func (h *Handlers) HandleGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	table, err := parseTable(input.Table, item.Items)
	if err != nil {
		return h.errorResult(err), nil
	}

	result, err := ops.ReadOne(ctx, h.db, table, input.ID)
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleUpdate handles the items_update tool call.
func (h *Handlers) HandleUpdate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[UpdateRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	update, err := updateInput(input)
	if err != nil {
		return h.errorResult(err), nil
	}

	result, err := ops.Update(ctx, h.db, update)
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the items_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.Delete(ctx, h.db, ops.DeleteInput{ID: input.ID, Comment: input.Comment})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleRestore handles the items_restore tool call.
func (h *Handlers) HandleRestore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RestoreRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	result, err := ops.Restore(ctx, h.db, ops.RestoreInput{ID: input.ID})
	if err != nil {
		return h.errorResult(err), nil
	}

	return successResult(result)
}

// HandleExec handles the items_exec tool call. The response text is returned
// on failure too, under "response" in the error payload.
func (h *Handlers) HandleExec(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExecRequest](req)
	if err != nil {
		return h.errorResult(errors.NewValidation(err.Error())), nil
	}

	response, err := presenter.New(h.db, h.logger).Execute(ctx, input.Command)
	if err != nil {
		payload := h.errorPayload(err)
		payload["response"] = response
		return newErrorResult(payload), nil
	}

	return successResult(ExecOutput{Response: response})
}

// parseTable resolves a table argument; empty selects fallback.
func parseTable(name string, fallback item.Table) (item.Table, error) {
	name = strings.TrimSpace(name)
	if name == "" && fallback != "" {
		return fallback, nil
	}
	table, ok := item.ParseTable(name)
	if !ok {
		return "", errors.NewValidation(fmt.Sprintf("unknown table %q (expected one of: %s)", name, item.TableNames()))
	}
	return table, nil
}

// updateInput converts the string value to the field's type.
func updateInput(req UpdateRequest) (ops.UpdateInput, error) {
	field, ok := item.ParseField(strings.TrimSpace(req.Field))
	if !ok {
		return ops.UpdateInput{}, errors.NewValidation(fmt.Sprintf("unknown field %q (expected name, price or stock)", req.Field))
	}

	input := ops.UpdateInput{ID: req.ID, Field: field}
	switch field {
	case item.FieldName:
		input.Name = req.Value
	case item.FieldPrice:
		price, err := item.PriceText(req.Value).Parse()
		if err != nil {
			return ops.UpdateInput{}, err
		}
		input.Price = price
	case item.FieldStock:
		stock, err := strconv.ParseInt(strings.TrimSpace(req.Value), 10, 64)
		if err != nil {
			return ops.UpdateInput{}, errors.NewValidation(fmt.Sprintf("invalid stock %q: expected an integer", req.Value))
		}
		input.Stock = stock
	}
	return input, nil
}

// errorPayload builds the JSON error object for err. Storage faults are
// logged under a reference id and reported with only that id, not the
// backend message.
func (h *Handlers) errorPayload(err error) map[string]any {
	sErr := errors.As(err)

	errorObj := map[string]any{
		"code":    sErr.Code,
		"message": sErr.Message,
	}
	if sErr.Code == errors.ErrStorageFault {
		ref := ulid.Make().String()
		h.logger.Printf("storage fault [%s]: %s", ref, sErr.Message)
		errorObj["message"] = "a storage error occurred"
		errorObj["ref"] = ref
	} else if sErr.Details != nil {
		errorObj["details"] = sErr.Details
	}

	return map[string]any{"error": errorObj}
}

// errorResult creates an MCP error result from err.
func (h *Handlers) errorResult(err error) *mcp.CallToolResult {
	return newErrorResult(h.errorPayload(err))
}

func newErrorResult(payload map[string]any) *mcp.CallToolResult {
	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
