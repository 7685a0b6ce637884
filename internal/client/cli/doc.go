// Package cli is the interactive EpicQuest terminal client.
//
// App wires local storage, the user and card services and the optional
// cloud client, then runs a REPL. Players register or log in, draw hero
// cards within their daily allowance, browse the collection and its
// statistics, and can back the collection up to the cloud.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
