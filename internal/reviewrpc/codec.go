package reviewrpc

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// Codec serializes the plain Go messages of this package as JSON.
// It replaces connect's protojson codec, which only accepts protobuf messages.
type Codec struct{}

var _ connect.Codec = Codec{}

func (Codec) Name() string {
	return "json"
}

func (Codec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (Codec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, message)
}
