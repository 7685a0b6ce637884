package client

import "context"

// Cloud is the remote identity and document store. The local registry
// stays authoritative; the cloud only mirrors it.
type Cloud interface {
	SignUp(ctx context.Context, email string, password []byte) (string, error)
	SignIn(ctx context.Context, email string, password []byte) (string, error)
	SignOut(ctx context.Context) error
	// CurrentUser returns the signed-in account id, or "".
	CurrentUser() string
	SaveDocument(ctx context.Context, collection, id string, data map[string]any) error
	GetDocument(ctx context.Context, collection, id string) (map[string]any, error)
	Ping(ctx context.Context) error
	Close() error
}
