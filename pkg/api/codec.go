// Package api defines the messages exchanged with the SettleUp RPC services.
//
// Messages are plain Go structs serialized as JSON by JSONCodec. Money is
// carried as decimal strings (e.g. "60.5") so clients never see float drift.
package api

import "encoding/json"

// JSONCodec is the Connect codec for every SettleUp service.
// It registers under "json", replacing Connect's protobuf-only JSON codec,
// so requests are sent with Content-Type application/json.
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
