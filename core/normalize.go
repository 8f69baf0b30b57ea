package core

import (
	"bytes"
	"encoding/json"
)

// RawRef is a reference field the backend serves in two shapes: a plain id
// string, or a populated document. Decoding keeps both; Resolve collapses
// to the id.
type RawRef struct {
	ID  string
	Obj map[string]any // populated document, nil when the wire value was a plain id
}

func (r *RawRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*r = RawRef{}
		return nil
	}

	if data[0] == '"' {
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = RawRef{ID: id}
		return nil
	}

	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	id, _ := obj["_id"].(string)
	*r = RawRef{ID: id, Obj: obj}
	return nil
}

// MarshalJSON always emits the plain id; request payloads never carry
// populated documents.
func (r RawRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// Resolve returns the referenced id, or "" when the field was absent.
func (r RawRef) Resolve() string {
	return r.ID
}

// Name returns the named field from a populated document, or "" for a
// plain id.
func (r RawRef) Name(keys ...string) string {
	for _, key := range keys {
		if name, ok := r.Obj[key].(string); ok && name != "" {
			return name
		}
	}
	return ""
}

// envelope is the backend's nominal response wrapper. Some endpoints skip
// it and serve the payload bare; DecodeEnvelope absorbs both shapes so no
// call site re-unwraps.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// DecodeEnvelope decodes a response body into v, unwrapping the {success,
// data, message} envelope when present and decoding the body directly
// otherwise. An envelope with absent or null data is a bare
// acknowledgement and leaves v untouched.
func DecodeEnvelope(body []byte, v any) error {
	if v == nil || len(body) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if len(env.Data) > 0 && string(env.Data) != "null" {
			return json.Unmarshal(env.Data, v)
		}
		// The success key is what marks a body as enveloped; message alone
		// is ambiguous because notifications carry one too.
		if env.Success != nil {
			return nil
		}
	}
	return json.Unmarshal(body, v)
}

// Candidate keys for user-id extraction. Endpoints disagree on casing and
// nesting, so each known spelling is tried in order.
var userIDKeys = map[Role][]string{
	RoleFarmer: {"farmerId", "FarmerId", "farmer_id", "farmer", "Farmer ID"},
	RoleBuyer:  {"buyerId", "BuyerId", "buyer_id", "buyer", "Buyer ID"},
}

// ExtractUserID pulls the farmer or buyer id out of a raw listing/demand
// payload. It returns "" when no recognized shape matches; absence is an
// expected outcome the caller must handle, never an error.
func ExtractUserID(item map[string]any, role Role) string {
	if item == nil {
		return ""
	}

	for _, key := range userIDKeys[role] {
		switch v := item[key].(type) {
		case map[string]any:
			if id, ok := v["_id"].(string); ok && id != "" {
				return id
			}
		case string:
			if v != "" {
				return v
			}
		}
	}
	return ""
}

// HasRequiredUserID reports whether a listing/demand payload carries a
// resolvable user id for the given role.
func HasRequiredUserID(item map[string]any, role Role) bool {
	return ExtractUserID(item, role) != ""
}

// ExtractCropInfo returns the canonical crop reference from a raw payload,
// or nil when none of the known shapes match.
func ExtractCropInfo(item map[string]any) *EntityRef {
	return extractRef(item, "cropId", "crop", "cropName", "Unknown Crop")
}

// ExtractMarketInfo returns the canonical market reference from a raw
// payload, or nil when none of the known shapes match.
func ExtractMarketInfo(item map[string]any) *EntityRef {
	return extractRef(item, "marketId", "market", "marketName", "Unknown Market")
}

func extractRef(item map[string]any, idKey, objKey, nameKey, unknown string) *EntityRef {
	if item == nil {
		return nil
	}

	// Populated id field: {cropId: {_id, cropName}}
	if obj, ok := item[idKey].(map[string]any); ok {
		if id, ok := obj["_id"].(string); ok && id != "" {
			return &EntityRef{ID: id, Name: refName(obj, nameKey, unknown)}
		}
	}

	// Separate populated field: {crop: {_id, cropName}}
	if obj, ok := item[objKey].(map[string]any); ok {
		if id, ok := obj["_id"].(string); ok && id != "" {
			return &EntityRef{ID: id, Name: refName(obj, nameKey, unknown)}
		}
	}

	// Plain id string, name possibly denormalized onto the item itself.
	if id, ok := item[idKey].(string); ok && id != "" {
		return &EntityRef{ID: id, Name: refName(item, nameKey, unknown)}
	}

	return nil
}

func refName(obj map[string]any, nameKey, unknown string) string {
	if name, ok := obj[nameKey].(string); ok && name != "" {
		return name
	}
	if name, ok := obj["name"].(string); ok && name != "" {
		return name
	}
	return unknown
}

// IsAlreadyConnected reports whether the user has an accepted connection
// in the given request list.
func IsAlreadyConnected(requests []ConnectionRequest, userID string) bool {
	for _, req := range requests {
		if (req.SenderID == userID || req.RecipientID == userID) && req.Status == ConnectionAccepted {
			return true
		}
	}
	return false
}

// HasPendingRequest reports whether the user has a pending connection
// request in the given list.
func HasPendingRequest(requests []ConnectionRequest, userID string) bool {
	for _, req := range requests {
		if (req.SenderID == userID || req.RecipientID == userID) && req.Status == ConnectionPending {
			return true
		}
	}
	return false
}
