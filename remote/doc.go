// Package remote carries an error and its whole causal chain across a gRPC
// call.
//
// On the producing side ToStatus turns an error into a Status: the code, the
// error's own message, and the serialized chain stored in trailer metadata
// under MetadataKey. On the receiving side Wrap rebuilds the chain from that
// metadata and exposes it through a *Wrapper, which is an error whose Unwrap
// walks the remote causes as if they had been raised locally.
//
// Decoding never fails the call: a missing or unreadable entry leaves the
// Wrapper with the plain status message.
package remote
