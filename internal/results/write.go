package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ResultsFileName is the document name inside a session directory.
const ResultsFileName = "results.json"

// Path returns where a session's results document lives under root.
func Path(root, sessionID string) string {
	return filepath.Join(root, sessionID, ResultsFileName)
}

// Write stores the document under root/<session id>/results.json.
func Write(root string, session Session) (string, error) {
	if root == "" {
		return "", fmt.Errorf("results directory is required")
	}
	if session.SessionID == "" {
		return "", fmt.Errorf("session id is required")
	}
	path := Path(root, session.SessionID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal json: %w", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return path, nil
}

// Read loads a previously written document.
func Read(path string) (Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Session{}, fmt.Errorf("read results: %w", err)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, fmt.Errorf("parse results: %w", err)
	}
	return session, nil
}
