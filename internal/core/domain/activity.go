package domain

import "time"

// Activity is an audit entry recorded after a lifecycle change touching an account.
type Activity struct {
	ID          string        `json:"id"                   bson:"_id"`
	AccountID   string        `json:"account_id"           bson:"account_id"`
	RequestID   string        `json:"request_id,omitempty" bson:"request_id,omitempty"`
	RequestKind RequestKind   `json:"request_kind"         bson:"request_kind"`
	Action      RequestAction `json:"action"               bson:"action"`
	Message     string        `json:"message"              bson:"message"`
	ActorID     string        `json:"actor_id,omitempty"   bson:"actor_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"           bson:"created_at"`
}

// Submission actions are recorded with this verb.
const ActionSubmit RequestAction = "submit"
