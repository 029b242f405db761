// Package transport defines the HTTP request and response shapes for the
// field service operations module.
package transport

import "edulure_backend/internal/fieldops/workspace"

// WorkspaceQuery selects which scope of the snapshot to return.
type WorkspaceQuery struct {
	Scope string `form:"scope" binding:"omitempty,oneof=customer provider all"`
}

// SnapshotResponse wraps the full two-scope snapshot.
type SnapshotResponse struct {
	Data workspace.Snapshot `json:"data"`
}

// WorkspaceResponse wraps a single scope.
type WorkspaceResponse struct {
	Data workspace.Workspace `json:"data"`
}
