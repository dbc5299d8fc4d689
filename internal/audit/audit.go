package audit

import "context"

// Auditor records destructive operations (imports, clear-all, deletes)
// so an administrator can reconstruct what happened from the logs.
// Nothing is persisted beyond the log stream.
type Auditor interface {
	Log(ctx context.Context, action string, resource string, details map[string]interface{})
}
