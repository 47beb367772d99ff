package audit

import (
	"encoding/json"
	"time"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Entry struct {
	ID            int64           `json:"id"`
	UserID        string          `json:"userId"`
	EntityType    string          `json:"entityType"`
	EntityID      int64           `json:"entityId"`
	Action        Action          `json:"action"`
	PayloadBefore json.RawMessage `json:"payloadBefore,omitempty"`
	PayloadAfter  json.RawMessage `json:"payloadAfter,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type InsertParams struct {
	UserID        string
	EntityType    string
	EntityID      int64
	Action        Action
	PayloadBefore json.RawMessage
	PayloadAfter  json.RawMessage
}
