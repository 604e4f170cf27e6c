package remote

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/thanhminhmr/go-errchain/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
)

func TestMetrics(t *testing.T) {
	encodedOK := testutil.ToFloat64(encodedTotal.WithLabelValues(resultOK))
	encodedFallback := testutil.ToFloat64(encodedTotal.WithLabelValues(resultFallback))
	decodedOK := testutil.ToFloat64(decodedTotal.WithLabelValues(resultOK))
	decodedAbsent := testutil.ToFloat64(decodedTotal.WithLabelValues(resultAbsent))
	decodedSkipped := testutil.ToFloat64(decodedTotal.WithLabelValues(resultSkipped))
	decodedFailed := testutil.ToFloat64(decodedTotal.WithLabelValues(resultFailed))

	sent := ToStatus(errors.String("outer"), codes.Internal, "test")
	(&Encoder{MaxSize: 1}).ToStatus(errors.String("outer"), codes.Internal, "test")
	NewWrapper(sent)
	NewWrapper(WithMetadata(sent.Code(), sent.Message(), sent.Metadata()))
	NewWrapper(WithMetadata(codes.Internal, "outer", nil))
	NewWrapper(WithMetadata(codes.Internal, "outer", metadata.Pairs(MetadataKey, "garbage")))

	assert.Equal(t, encodedOK+1, testutil.ToFloat64(encodedTotal.WithLabelValues(resultOK)))
	assert.Equal(t, encodedFallback+1, testutil.ToFloat64(encodedTotal.WithLabelValues(resultFallback)))
	assert.Equal(t, decodedSkipped+1, testutil.ToFloat64(decodedTotal.WithLabelValues(resultSkipped)))
	assert.Equal(t, decodedOK+1, testutil.ToFloat64(decodedTotal.WithLabelValues(resultOK)))
	assert.Equal(t, decodedAbsent+1, testutil.ToFloat64(decodedTotal.WithLabelValues(resultAbsent)))
	assert.Equal(t, decodedFailed+1, testutil.ToFloat64(decodedTotal.WithLabelValues(resultFailed)))
	assert.Len(t, Collectors(), 2)
}
