// Package chain holds the wire model of an error chain: the ordered frames
// captured from an error and its causes, the service that produced them, and
// the binary codec used to carry them inside a single gRPC metadata entry.
//
// A decoded Record materializes back into a *RemoteError chain that behaves
// like a locally raised error for errors.Is, errors.As and errors.Unwrap.
package chain
