package catalogv1

import (
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestJSONCodecIsRegistered(t *testing.T) {
	codec := encoding.GetCodec(CodecName)
	require.NotNil(t, codec)
	assert.Equal(t, CodecName, codec.Name())
}

func TestJSONCodec_KeepsNameOrderAndPrices(t *testing.T) {
	codec := jsonCodec{}
	in := &CreateProductRequest{
		CategoryID: "c-1",
		Name:       model.Text("pt", "Pão", "en", "Bread"),
		Price:      decimal.RequireFromString("12.50"),
	}
	data, err := codec.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name":{"pt":"Pão","en":"Bread"}`)
	assert.Contains(t, string(data), `"price":"12.5"`)

	var out CreateProductRequest
	require.NoError(t, codec.Unmarshal(data, &out))
	assert.Equal(t, []string{"pt", "en"}, out.Name.Languages())
	assert.True(t, out.Price.Equal(in.Price))
	assert.Nil(t, out.IsAvailable)
}

func TestJSONCodec_EmptyPayload(t *testing.T) {
	var out Empty
	assert.NoError(t, jsonCodec{}.Unmarshal(nil, &out))
}
