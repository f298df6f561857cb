package mcp

import (
	"context"

	"github.com/chainwatch/chainwatch-go/internal/mcp/tools"
)

// Tool represents an MCP tool
type Tool interface {
	Execute(ctx context.Context, args map[string]interface{}) (interface{}, error)
	GetSchema() map[string]interface{}
}

// Resource represents an MCP resource
type Resource interface {
	Read(ctx context.Context) (interface{}, error)
}

// Handler handles MCP protocol requests
type Handler struct {
	tools     map[string]Tool
	resources map[string]Resource
}

// NewHandler creates a new MCP handler
func NewHandler() *Handler {
	return &Handler{
		tools:     make(map[string]Tool),
		resources: make(map[string]Resource),
	}
}

// RegisterTool registers a tool with the handler
func (h *Handler) RegisterTool(name string, tool Tool) {
	h.tools[name] = tool
}

// RegisterResource registers a resource with the handler
func (h *Handler) RegisterResource(name string, resource Resource) {
	h.resources[name] = resource
}

// Handle processes a JSON-RPC request
func (h *Handler) Handle(req *tools.JSONRPCRequest) *tools.JSONRPCResponse {
	switch req.Method {
	case "initialize":
		return h.handleInitialize(req)
	case "tools/list":
		return h.handleToolsList(req)
	case "tools/call":
		return h.handleToolCall(req)
	case "resources/list":
		return h.handleResourcesList(req)
	case "resources/read":
		return h.handleResourceRead(req)
	default:
		return errorResponse(req.ID, -32601, "Method not found")
	}
}

func (h *Handler) handleInitialize(req *tools.JSONRPCRequest) *tools.JSONRPCResponse {
	return &tools.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "1.0",
			"capabilities": map[string]interface{}{
				"tools":     map[string]interface{}{},
				"resources": map[string]interface{}{},
			},
			"serverInfo": map[string]string{
				"name":    "chainwatch-server",
				"version": "0.1.0",
			},
		},
	}
}

func (h *Handler) handleToolsList(req *tools.JSONRPCRequest) *tools.JSONRPCResponse {
	toolsList := []map[string]interface{}{}
	for name, tool := range h.tools {
		toolsList = append(toolsList, map[string]interface{}{
			"name":   name,
			"schema": tool.GetSchema(),
		})
	}

	return &tools.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": toolsList,
		},
	}
}

func (h *Handler) handleToolCall(req *tools.JSONRPCRequest) *tools.JSONRPCResponse {
	toolName, ok := req.Params["name"].(string)
	if !ok {
		return errorResponse(req.ID, -32602, "Invalid params: 'name' is required")
	}

	tool, exists := h.tools[toolName]
	if !exists {
		return errorResponse(req.ID, -32602, "Tool not found: "+toolName)
	}

	args, ok := req.Params["arguments"].(map[string]interface{})
	if !ok {
		args = make(map[string]interface{})
	}

	result, err := tool.Execute(context.Background(), args)
	if err != nil {
		return errorResponse(req.ID, -32603, "Tool execution error: "+err.Error())
	}

	return &tools.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

func (h *Handler) handleResourcesList(req *tools.JSONRPCRequest) *tools.JSONRPCResponse {
	resourcesList := []map[string]interface{}{}
	for name := range h.resources {
		resourcesList = append(resourcesList, map[string]interface{}{
			"name": name,
		})
	}

	return &tools.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"resources": resourcesList,
		},
	}
}

func (h *Handler) handleResourceRead(req *tools.JSONRPCRequest) *tools.JSONRPCResponse {
	resourceName, ok := req.Params["name"].(string)
	if !ok {
		return errorResponse(req.ID, -32602, "Invalid params: 'name' is required")
	}

	resource, exists := h.resources[resourceName]
	if !exists {
		return errorResponse(req.ID, -32602, "Resource not found: "+resourceName)
	}

	result, err := resource.Read(context.Background())
	if err != nil {
		return errorResponse(req.ID, -32603, "Resource read error: "+err.Error())
	}

	return &tools.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

func errorResponse(id interface{}, code int, message string) *tools.JSONRPCResponse {
	return &tools.JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &tools.JSONRPCError{
			Code:    code,
			Message: message,
		},
	}
}
