package proto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestJSONCodecRegistered(t *testing.T) {
	codec := encoding.GetCodec(CodecName)
	require.NotNil(t, codec)

	data, err := codec.Marshal(&PostTransactionRequest{TransactionId: "id-1", Amount: "100.0000"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"transaction_id":"id-1","amount":"100.0000"}`, string(data))

	var got PostTransactionRequest
	require.NoError(t, codec.Unmarshal(data, &got))
	assert.Equal(t, "100.0000", got.GetAmount())
}

func TestGettersAreNilSafe(t *testing.T) {
	var resp *GetBalanceResponse
	assert.Empty(t, resp.GetAccountId())
	assert.Nil(t, resp.GetBalances())
}
