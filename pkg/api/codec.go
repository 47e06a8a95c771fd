package api

import (
	"encoding/json"

	"connectrpc.com/connect"
)

// codecName replaces Connect's built-in protojson codec, which only accepts proto messages.
const codecName = "json"

type jsonCodec struct{}

func (jsonCodec) Name() string { return codecName }

func (jsonCodec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

func (jsonCodec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

// Codec returns the JSON codec used by every billsplitter handler and client.
func Codec() connect.Codec {
	return jsonCodec{}
}
