package state

import (
	"fmt"
	"time"

	contractx "github.com/mesra-labs/mesra-agent/agent/contract"
)

// MaxTurns bounds the per-session turn history. The oldest turn is evicted
// once the list is full.
const MaxTurns = 10

type Status string

const (
	StatusNew                   Status = "new"
	StatusActive                Status = "active"
	StatusAwaitingClarification Status = "awaiting_clarification"
	StatusEnded                 Status = "ended"
)

const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// Turn is one message exchange. Immutable once appended.
type Turn struct {
	Role           string           `json:"role"`
	Text           string           `json:"text"`
	Timestamp      time.Time        `json:"timestamp"`
	DetectedIntent contractx.Intent `json:"detected_intent,omitempty"`
	Confidence     float64          `json:"confidence,omitempty"`
}

// ConversationSession is the persistent source-of-truth for one conversation.
// It is owned by the context manager: one record per session id, mutated only
// through Update and the explicit status transitions below.
type ConversationSession struct {
	ID         string           `json:"session_id"`
	Status     Status           `json:"status"`
	Turns      []Turn           `json:"turns,omitempty"`
	Slots      contractx.Slots  `json:"slots"`
	LastIntent contractx.Intent `json:"last_intent,omitempty"`
	LastAction contractx.Action `json:"last_action,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func NewConversationSession(id string, now time.Time) *ConversationSession {
	return &ConversationSession{
		ID:        id,
		Status:    StatusNew,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

func (s *ConversationSession) Touch(now time.Time) {
	s.UpdatedAt = now.UTC()
}

// AppendTurn adds a turn, evicting the oldest once MaxTurns is reached.
func (s *ConversationSession) AppendTurn(t Turn) {
	if len(s.Turns) >= MaxTurns {
		s.Turns = append(s.Turns[:0], s.Turns[len(s.Turns)-MaxTurns+1:]...)
	}
	s.Turns = append(s.Turns, t)
}

// LastUserTurn returns the most recent user turn, or nil.
func (s *ConversationSession) LastUserTurn() *Turn {
	for i := len(s.Turns) - 1; i >= 0; i-- {
		if s.Turns[i].Role == RoleUser {
			return &s.Turns[i]
		}
	}
	return nil
}

// Update merges one classified user turn into the session. It is total: any
// session pointer in, a valid session out. Slot merge is "new value wins for
// the same key, otherwise keep". Entering from NEW or AWAITING_CLARIFICATION
// always lands on ACTIVE; a clarification prompt is considered answered by
// whatever the user says next.
func Update(s *ConversationSession, turn Turn, extracted contractx.Slots) *ConversationSession {
	if s == nil {
		s = NewConversationSession("", turn.Timestamp)
	}
	s.AppendTurn(turn)
	s.Slots.Merge(extracted)
	s.LastIntent = turn.DetectedIntent

	switch s.Status {
	case StatusNew, StatusAwaitingClarification, "":
		s.Status = StatusActive
	case StatusEnded:
		// A message after farewell restarts the conversation in place.
		s.Status = StatusActive
	}
	s.Touch(turn.Timestamp)
	return s
}

// AwaitClarification marks that the agent just asked a clarifying question.
func (s *ConversationSession) AwaitClarification(now time.Time) {
	if s.Status == StatusEnded {
		return
	}
	s.Status = StatusAwaitingClarification
	s.Touch(now)
}

// End closes the conversation and clears slots, the only path that deletes
// slot values.
func (s *ConversationSession) End(now time.Time) {
	s.Status = StatusEnded
	s.Slots.Clear()
	s.Touch(now)
}

func (s *ConversationSession) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil session", contractx.ErrSessionCorrupted)
	}
	switch s.Status {
	case StatusNew, StatusActive, StatusAwaitingClarification, StatusEnded:
	default:
		return fmt.Errorf("%w: unknown status %q", contractx.ErrSessionCorrupted, s.Status)
	}
	if len(s.Turns) > MaxTurns {
		return fmt.Errorf("%w: turn list over capacity (%d)", contractx.ErrSessionCorrupted, len(s.Turns))
	}
	for _, t := range s.Turns {
		if t.Role != RoleUser && t.Role != RoleAgent {
			return fmt.Errorf("%w: turn role %q", contractx.ErrSessionCorrupted, t.Role)
		}
		if t.Confidence < 0 || t.Confidence > 1 {
			return fmt.Errorf("%w: turn confidence %v out of range", contractx.ErrSessionCorrupted, t.Confidence)
		}
	}
	return nil
}

// Clone returns a deep copy so stores can hand out isolated snapshots.
func (s *ConversationSession) Clone() *ConversationSession {
	if s == nil {
		return nil
	}
	cp := *s
	cp.Turns = append([]Turn(nil), s.Turns...)
	if s.Slots.PriceMin != nil {
		v := *s.Slots.PriceMin
		cp.Slots.PriceMin = &v
	}
	if s.Slots.PriceMax != nil {
		v := *s.Slots.PriceMax
		cp.Slots.PriceMax = &v
	}
	return &cp
}
