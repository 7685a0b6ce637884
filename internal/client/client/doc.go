// Package client contains the client-side plumbing of EpicQuest.
//
// # Overview
//
// The package provides:
//  1. Cloud, the contract of the optional cloud collaborator: account
//     sign-up/sign-in/sign-out and a small document store keyed by
//     collection and document id.
//  2. GRPCClient, the Cloud implementation over the CloudSync gRPC service.
//     It keeps the ID token returned by SignUp/SignIn, injects it into every
//     call as metadata and maps gRPC status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations, OpenStore)
//     that wires the preferences backend: SQLite with embedded goose
//     migrations, Redis, or an in-memory map.
//
// # Error Handling
//
// Callers match with errors.Is: ErrUnavailable, ErrUnauthorized,
// ErrNotSignedIn, ErrAlreadyExists, ErrNotFound, ErrInvalidInput.
//
// # Concurrency
//
// GRPCClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation.
package client
