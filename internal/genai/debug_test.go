package genai

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readDebugFiles(t *testing.T, stateDir string) map[string][]byte {
	t.Helper()
	dir := filepath.Join(stateDir, "debug")
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to read debug directory: %v", err)
	}
	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			t.Fatalf("failed to read %s: %v", e.Name(), err)
		}
		out[e.Name()] = data
	}
	return out
}

func TestDebugModeRecordsExchange(t *testing.T) {
	stateDir := t.TempDir()
	client := &Client{
		chat:      &mockChatService{resp: completion("## Research Evidence\nSlow breathing lowers heart rate.")},
		model:     DefaultModel,
		debugMode: true,
		stateDir:  stateDir,
	}

	question := "Can paced breathing help with tension headaches?"
	if _, err := client.GeneratePromptWithContext(context.Background(), "You are a health educator.", question); err != nil {
		t.Fatalf("GeneratePromptWithContext failed: %v", err)
	}

	files := readDebugFiles(t, stateDir)
	if len(files) != 1 {
		t.Fatalf("expected one debug file, got %d", len(files))
	}
	for name, data := range files {
		if !strings.HasPrefix(name, "genai_GeneratePromptWithContext_") || !strings.HasSuffix(name, ".json") {
			t.Errorf("unexpected debug file name %q", name)
		}

		var entry struct {
			Method   string          `json:"method"`
			Model    string          `json:"model"`
			Params   json.RawMessage `json:"params"`
			Response json.RawMessage `json:"response"`
		}
		if err := json.Unmarshal(data, &entry); err != nil {
			t.Fatalf("debug file is not JSON: %v", err)
		}
		if entry.Method != "GeneratePromptWithContext" || entry.Model != DefaultModel {
			t.Errorf("unexpected method/model: %q / %q", entry.Method, entry.Model)
		}
		if !strings.Contains(string(entry.Params), question) {
			t.Error("params should carry the user prompt")
		}
		if len(entry.Response) == 0 {
			t.Error("response is missing from the debug entry")
		}
	}
}

func TestDebugModeOffOrFailedCall(t *testing.T) {
	tests := []struct {
		name    string
		debug   bool
		chatErr error
	}{
		{"debug disabled", false, nil},
		{"failed call", true, errors.New("503 service unavailable")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stateDir := t.TempDir()
			client := &Client{
				chat:      &mockChatService{resp: completion("ok"), err: tt.chatErr},
				model:     DefaultModel,
				debugMode: tt.debug,
				stateDir:  stateDir,
			}
			client.GeneratePromptWithContext(context.Background(), "system", "user")

			if files := readDebugFiles(t, stateDir); len(files) != 0 {
				t.Errorf("expected no debug files, got %d", len(files))
			}
		})
	}
}
