package remote

// MetadataKey is the one trailer key reserved for the serialized error chain.
// The -bin suffix marks the value as binary, gRPC base64-encodes it on the
// wire and hands back the raw bytes on the other side.
const MetadataKey = "x-error-chain-bin"
