package remote

import (
	"github.com/thanhminhmr/go-errchain/chain"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
)

var defaultEncoder = &Encoder{}

// Encoder renders errors into a Status. The zero value captures every frame
// without stack traces and without a size limit.
type Encoder struct {
	MaxDepth    int
	StackTraces bool
	// MaxSize drops the chain when its encoding is larger, in bytes. Peers
	// reject trailers beyond their header list size limit.
	MaxSize int
}

func NewEncoder(config *Config) *Encoder {
	return &Encoder{
		MaxDepth:    config.MaxDepth,
		StackTraces: config.StackTraces,
		MaxSize:     config.MaxSize,
	}
}

// ToStatus converts err into a Status naming serviceName as the producer.
func ToStatus(err error, code codes.Code, serviceName string) *Status {
	return defaultEncoder.ToStatus(err, code, serviceName)
}

// ToStatusUnnamed converts err into a Status without naming the producer.
// Prefer ToStatus when the service is known.
func ToStatusUnnamed(err error, code codes.Code) *Status {
	return defaultEncoder.ToStatus(err, code, "")
}

// ToStatus converts err into a Status. The message is err's own Error()
// string so that a client ignoring the metadata still gets something useful.
// The whole chain goes into the metadata under MetadataKey. If the chain
// cannot be serialized, or exceeds MaxSize, the Status carries the message
// alone.
func (e *Encoder) ToStatus(err error, code codes.Code, serviceName string) *Status {
	if err == nil {
		return WithMetadata(code, "", nil)
	}
	record := chain.Capture(err, serviceName, chain.Options{
		MaxDepth:    e.MaxDepth,
		StackTraces: e.StackTraces,
	})
	data, marshalErr := record.Marshal()
	if marshalErr != nil || (e.MaxSize > 0 && len(data) > e.MaxSize) {
		encodedTotal.WithLabelValues(resultFallback).Inc()
		return WithMetadata(code, err.Error(), nil)
	}
	encodedTotal.WithLabelValues(resultOK).Inc()
	status := WithMetadata(code, err.Error(), metadata.Pairs(MetadataKey, string(data)))
	status.source = record.Err()
	return status
}
