package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/chainwatch/chainwatch-go/internal/mcp/tools"
)

// StdioTransport handles JSON-RPC communication over stdio
type StdioTransport struct {
	scanner *bufio.Scanner
	out     io.Writer
	handler *Handler
}

// NewStdioTransport creates a new stdio transport
func NewStdioTransport(handler *Handler, in io.Reader, out io.Writer) *StdioTransport {
	return &StdioTransport{
		scanner: bufio.NewScanner(in),
		out:     out,
		handler: handler,
	}
}

// Start begins listening for JSON-RPC requests, one per line
func (t *StdioTransport) Start() error {
	for t.scanner.Scan() {
		line := t.scanner.Text()

		var req tools.JSONRPCRequest
		if err := json.Unmarshal([]byte(line), &req); err != nil {
			t.send(errorResponse(nil, -32700, "Parse error"))
			continue
		}

		t.send(t.handler.Handle(&req))
	}
	return t.scanner.Err()
}

func (t *StdioTransport) send(resp *tools.JSONRPCResponse) {
	respJSON, _ := json.Marshal(resp)
	fmt.Fprintln(t.out, string(respJSON))
}
