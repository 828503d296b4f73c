package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mibeco/q-history-mcp-server/internal"
	"github.com/mibeco/q-history-mcp-server/internal/export"
)

// ListConversationsArgs defines arguments for the list_conversations tool
type ListConversationsArgs struct {
	Limit int `json:"limit,omitempty"`
}

// SearchConversationsArgs defines arguments for the search_conversations tool
type SearchConversationsArgs struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// GetConversationDetailsArgs defines arguments for the
// get_conversation_details tool
type GetConversationDetailsArgs struct {
	ConversationID string `json:"conversation_id"`
	MessageLimit   int    `json:"message_limit,omitempty"`
}

// ExportConversationArgs defines arguments for the export_conversation tool
type ExportConversationArgs struct {
	ConversationID string `json:"conversation_id"`
	OutputPath     string `json:"output_path"`
}

const (
	defaultListLimit   = 20
	defaultSearchLimit = 10
)

// StartServer runs the MCP stdio server over the given storage locations.
// Every tool call opens its own read-only view of storage through the
// engine; the server itself holds no mutable state.
func StartServer(locations internal.StorageLocations) error {
	engine := internal.NewEngine(locations)

	s := server.NewMCPServer(
		"q-history",
		"1.0.0",
	)

	listTool := mcp.NewTool("list_conversations",
		mcp.WithDescription("List recent Q CLI conversations with metadata and previews"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of conversations to return (default: 20)")),
	)
	s.AddTool(listTool, makeListHandler(engine))

	searchTool := mcp.NewTool("search_conversations",
		mcp.WithDescription("Search Q CLI conversations by content using case-insensitive text matching against the raw records"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query string")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default: 10)")),
	)
	s.AddTool(searchTool, makeSearchHandler(engine))

	detailTool := mcp.NewTool("get_conversation_details",
		mcp.WithDescription("Retrieve the full ordered message list of one Q CLI conversation"),
		mcp.WithString("conversation_id",
			mcp.Required(),
			mcp.Description("Conversation id, or a substring of its storage key")),
		mcp.WithNumber("message_limit",
			mcp.Description("Maximum number of messages to return (default: all)")),
	)
	s.AddTool(detailTool, makeDetailHandler(engine))

	exportTool := mcp.NewTool("export_conversation",
		mcp.WithDescription("Export one Q CLI conversation to a markdown document on disk"),
		mcp.WithString("conversation_id",
			mcp.Required(),
			mcp.Description("Conversation id to export")),
		mcp.WithString("output_path",
			mcp.Required(),
			mcp.Description("Destination file path; .md is appended if the path has no extension")),
	)
	s.AddTool(exportTool, makeExportHandler(engine))

	return server.ServeStdio(s)
}

func decodeArgs(request mcp.CallToolRequest, out interface{}) error {
	argsBytes, _ := json.Marshal(request.Params.Arguments)
	return json.Unmarshal(argsBytes, out)
}

func makeListHandler(engine *internal.Engine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ListConversationsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = defaultListLimit
		}

		conversations, err := engine.List(limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list conversations: %v", err)), nil
		}

		return successResult(map[string]interface{}{
			"status":        "success",
			"conversations": conversations,
			"count":         len(conversations),
		})
	}
}

func makeSearchHandler(engine *internal.Engine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SearchConversationsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.Query == "" {
			return mcp.NewToolResultError("query must not be empty"), nil
		}

		limit := args.Limit
		if limit == 0 {
			limit = defaultSearchLimit
		}

		results, err := engine.Search(args.Query, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		return successResult(map[string]interface{}{
			"status":  "success",
			"query":   args.Query,
			"results": results,
			"count":   len(results),
		})
	}
}

func makeDetailHandler(engine *internal.Engine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args GetConversationDetailsArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		detail, err := engine.GetDetail(args.ConversationID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("conversation not found: %v", err)), nil
		}

		// Message truncation is a presentation concern, applied at the shim
		if args.MessageLimit > 0 && len(detail.Messages) > args.MessageLimit {
			detail.Messages = detail.Messages[:args.MessageLimit]
		}

		return successResult(map[string]interface{}{
			"status":       "success",
			"conversation": detail,
		})
	}
}

func makeExportHandler(engine *internal.Engine) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args ExportConversationArgs
		if err := decodeArgs(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if args.OutputPath == "" {
			return mcp.NewToolResultError("output_path must not be empty"), nil
		}

		detail, err := engine.GetDetail(args.ConversationID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("conversation not found: %v", err)), nil
		}

		path, err := export.WriteFile(detail, args.OutputPath, "md")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
		}

		return successResult(map[string]interface{}{
			"status":    "success",
			"file_path": path,
		})
	}
}

func successResult(payload map[string]interface{}) (*mcp.CallToolResult, error) {
	resultJSON, err := json.Marshal(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(resultJSON)), nil
}
