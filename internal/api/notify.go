package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"returnnotify/internal/returns"
	"returnnotify/internal/services"
)

// maxNotifyBody bounds the request body accepted by the notify endpoint.
const maxNotifyBody = 1 << 20

// DecodeNotifyEvent reads a notify request body. Malformed JSON is a
// BadRequest error.
func DecodeNotifyEvent(r io.Reader) (returns.ChangeEvent, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxNotifyBody+1))
	if err != nil {
		return returns.ChangeEvent{}, fmt.Errorf("read notify body: %w", err)
	}
	if len(body) > maxNotifyBody {
		return returns.ChangeEvent{}, services.BadRequest("Request body too large")
	}
	data, err := decodeObject(body)
	if err != nil {
		return returns.ChangeEvent{}, services.BadRequest("Malformed request body")
	}
	if inner, ok := data["data"].(map[string]any); ok {
		data = inner
	}
	return returns.ParseEvent(data), nil
}

func decodeObject(body []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, errors.New("trailing data after object")
	}
	if data == nil {
		data = map[string]any{}
	}
	return data, nil
}
