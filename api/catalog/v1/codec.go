// Package catalogv1 is the omnipos.catalog.v1 gRPC API. Messages are plain Go
// structs carried by a JSON codec registered under the "json" content-subtype.
package catalogv1

import (
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("catalogv1: decode %T: %w", v, err)
	}
	return nil
}

func (jsonCodec) Name() string { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// CallOption selects the JSON codec on client calls. The generated clients add it automatically.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
