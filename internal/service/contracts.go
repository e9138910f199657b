package service

import "context"

// HTTPClient is the gateway surface the services consume. Satisfied by
// *apiclient.Client.
type HTTPClient interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}
