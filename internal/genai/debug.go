package genai

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// debugEntry is one request/response pair written in debug mode.
type debugEntry struct {
	Timestamp time.Time   `json:"timestamp"`
	Method    string      `json:"method"`
	Model     string      `json:"model"`
	Params    interface{} `json:"params"`
	Response  interface{} `json:"response"`
}

// logDebug writes a request/response pair to StateDir/debug. Failures are
// logged and otherwise ignored.
func (c *Client) logDebug(method string, params, response interface{}) {
	if !c.debugMode || c.stateDir == "" {
		return
	}
	dir := filepath.Join(c.stateDir, "debug")
	if err := os.MkdirAll(dir, 0755); err != nil {
		slog.Warn("Client.logDebug: failed to create debug directory", "dir", dir, "error", err)
		return
	}

	entry := debugEntry{
		Timestamp: time.Now().UTC(),
		Method:    method,
		Model:     c.model,
		Params:    params,
		Response:  response,
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		slog.Warn("Client.logDebug: failed to marshal debug entry", "error", err)
		return
	}

	name := fmt.Sprintf("genai_%s_%d.json", method, entry.Timestamp.UnixNano())
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		slog.Warn("Client.logDebug: failed to write debug entry", "file", name, "error", err)
	}
}
