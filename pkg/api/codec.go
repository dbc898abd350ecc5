// Package api defines the Fintrack RPC surface: request and response
// messages, procedure names, connect handler constructors and typed
// clients.
//
// Messages are plain Go structs serialized as JSON. Services are reachable
// with the Connect protocol, e.g.
//
//	curl -X POST http://localhost:8080/fintrack.v1.AuthService/Login \
//	  -H 'Content-Type: application/json' \
//	  -d '{"email":"alice@example.com","password":"pw123456"}'
package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

const (
	codecNameJSON            = "json"
	codecNameJSONCharsetUTF8 = codecNameJSON + "; charset=utf-8"
)

// jsonCodec marshals plain structs; connect's built-in JSON codec only
// accepts protobuf messages.
type jsonCodec struct {
	name string
}

var _ connect.Codec = jsonCodec{}

func (c jsonCodec) Name() string { return c.name }

func (jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, message)
}

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{
		connect.WithCodec(jsonCodec{name: codecNameJSON}),
		connect.WithCodec(jsonCodec{name: codecNameJSONCharsetUTF8}),
	}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{
		connect.WithCodec(jsonCodec{name: codecNameJSON}),
	}, opts...)
}
