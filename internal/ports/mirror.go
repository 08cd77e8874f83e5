package ports

import "context"

// RemoteMirror mirrors records to a remote backend. Calls are best-effort:
// the services layer logs failures and carries on, local state stays
// authoritative.
type RemoteMirror interface {
	Upsert(ctx context.Context, table string, record any) error
}
