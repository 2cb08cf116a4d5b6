package provider

import (
	"fmt"

	"github.com/casualjim/strix/memory"
	"github.com/casualjim/strix/messages"
	"github.com/go-openapi/strfmt"
	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/sjson"
)

// Delimiters carried by Delim events.
const (
	DelimStart = "start"
	DelimEnd   = "end"
	DelimEmpty = "empty"
)

var (
	delimJSON    = []byte(`{"type":"delim"}`)
	chunkJSON    = []byte(`{"type":"chunk"}`)
	responseJSON = []byte(`{"type":"response"}`)
	errorJSON    = []byte(`{"type":"error"}`)
)

// StreamEvent is emitted by a Provider.
type StreamEvent interface {
	streamEvent()
}

// Delim marks a stream boundary.
type Delim struct {
	RunID  uuid.UUID `json:"run_id"`
	TurnID uuid.UUID `json:"turn_id"`
	Delim  string    `json:"delim"`
}

func (Delim) streamEvent() {}

// Chunk is one incremental fragment of a reply.
type Chunk[T messages.Response] struct {
	RunID     uuid.UUID       `json:"run_id"`
	TurnID    uuid.UUID       `json:"turn_id"`
	Chunk     T               `json:"chunk"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

func (Chunk[T]) streamEvent() {}

// Response is a complete reply together with the tokens it consumed.
type Response[T messages.Response] struct {
	RunID     uuid.UUID       `json:"run_id"`
	TurnID    uuid.UUID       `json:"turn_id"`
	Response  T               `json:"response"`
	Usage     memory.Usage    `json:"usage"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

func (Response[T]) streamEvent() {}

// Error reports a failed request or an interrupted stream.
type Error struct {
	RunID     uuid.UUID       `json:"run_id"`
	TurnID    uuid.UUID       `json:"turn_id"`
	Err       error           `json:"error"`
	Timestamp strfmt.DateTime `json:"timestamp,omitempty"`
}

func (Error) streamEvent() {}

func (e Error) Error() string {
	return fmt.Sprintf("run_id: %s, turn_id: %s, timestamp: %s, error: %v", e.RunID, e.TurnID, e.Timestamp, e.Err)
}

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e Error) Unwrap() error {
	return e.Err
}

func setIDs(dst []byte, runID, turnID uuid.UUID) ([]byte, error) {
	result, err := sjson.SetBytes(dst, "run_id", runID.String())
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(result, "turn_id", turnID.String())
}

func setTimestamp(dst []byte, ts strfmt.DateTime) ([]byte, error) {
	if ts.IsZero() {
		return dst, nil
	}
	return sjson.SetBytes(dst, "timestamp", ts.String())
}

// MarshalJSON implements custom JSON marshaling for Delim
func (d Delim) MarshalJSON() ([]byte, error) {
	result, err := setIDs(delimJSON, d.RunID, d.TurnID)
	if err != nil {
		return nil, err
	}
	return sjson.SetBytes(result, "delim", d.Delim)
}

// MarshalJSON implements custom JSON marshaling for Chunk[T]
func (c Chunk[T]) MarshalJSON() ([]byte, error) {
	result, err := setIDs(chunkJSON, c.RunID, c.TurnID)
	if err != nil {
		return nil, err
	}

	chunkBytes, err := json.Marshal(c.Chunk)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chunk: %w", err)
	}
	result, err = sjson.SetRawBytes(result, "chunk", chunkBytes)
	if err != nil {
		return nil, err
	}
	return setTimestamp(result, c.Timestamp)
}

// MarshalJSON implements custom JSON marshaling for Response[T]
func (r Response[T]) MarshalJSON() ([]byte, error) {
	result, err := setIDs(responseJSON, r.RunID, r.TurnID)
	if err != nil {
		return nil, err
	}

	responseBytes, err := json.Marshal(r.Response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	result, err = sjson.SetRawBytes(result, "response", responseBytes)
	if err != nil {
		return nil, err
	}

	if !r.Usage.IsZero() {
		usageBytes, err := json.Marshal(r.Usage)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal usage: %w", err)
		}
		result, err = sjson.SetRawBytes(result, "usage", usageBytes)
		if err != nil {
			return nil, err
		}
	}
	return setTimestamp(result, r.Timestamp)
}

// MarshalJSON implements custom JSON marshaling for Error
func (e Error) MarshalJSON() ([]byte, error) {
	result, err := setIDs(errorJSON, e.RunID, e.TurnID)
	if err != nil {
		return nil, err
	}
	if e.Err != nil {
		result, err = sjson.SetBytes(result, "error", e.Err.Error())
		if err != nil {
			return nil, err
		}
	}
	return setTimestamp(result, e.Timestamp)
}
