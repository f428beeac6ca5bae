package models

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Role is the caller-asserted authority of a peer inside a room.
type Role string

const (
	// RoleOwner may mutate shared storage (educator).
	RoleOwner Role = "owner"
	// RoleObserver mirrors shared storage read-only (student).
	RoleObserver Role = "observer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleObserver
}

// CanMutate reports whether the role may write shared storage.
func (r Role) CanMutate() bool {
	return r == RoleOwner
}

// Cursor is a pointer position on the shared surface.
type Cursor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Presence is the ephemeral per-peer state. It is always replaced as a
// whole; the With* helpers return a copy with exactly one field changed.
type Presence struct {
	Cursor        *Cursor `json:"cursor"` // Cursor nil когда указатель вне поверхности
	ConnectionID  string  `json:"connectionId"`
	UserID        string  `json:"userId"`
	UserName      string  `json:"userName"`
	Color         string  `json:"color"`
	CurrentFileID string  `json:"currentFileId"`
	Selection     string  `json:"selection,omitempty"`
	CurrentPage   int     `json:"currentPage"`
	IsDrawingMode bool    `json:"isDrawingMode"`
}

// WithCursor returns a copy of p with the cursor replaced. A nil cursor
// means the pointer left the tracked surface.
func (p Presence) WithCursor(c *Cursor) Presence {
	if c != nil {
		cc := *c
		c = &cc
	}
	p.Cursor = c
	return p
}

// WithPage returns a copy of p looking at the given file page.
func (p Presence) WithPage(fileID string, page int) Presence {
	p.CurrentFileID = fileID
	p.CurrentPage = page
	return p
}

// WithDrawingMode returns a copy of p with the drawing flag set.
func (p Presence) WithDrawingMode(on bool) Presence {
	p.IsDrawingMode = on
	return p
}

// PresenceSet maps connection id to presence.
type PresenceSet map[string]Presence

// Clone returns a copy of the set.
func (s PresenceSet) Clone() PresenceSet {
	clone := make(PresenceSet, len(s))
	for k, v := range s {
		clone[k] = v.WithCursor(v.Cursor)
	}
	return clone
}

// StrokeDocument is the serialized free-hand drawing of one page.
type StrokeDocument struct {
	Version    string            `json:"version"`
	Background string            `json:"background,omitempty"`
	Objects    []json.RawMessage `json:"objects"`
}

// PollOption is one answer of a poll together with the voters.
type PollOption struct {
	Text  string   `json:"text"`
	Votes []string `json:"votes"` // Votes идентификаторы проголосовавших пользователей
}

// Poll is an owner-managed question with options.
type Poll struct {
	ID        string       `json:"id"`
	Question  string       `json:"question"`
	CreatedBy string       `json:"createdBy"`
	Options   []PollOption `json:"options"`
	CreatedAt int64        `json:"createdAt"`
	IsActive  bool         `json:"isActive"`
}

// HandRaise is one raised hand. Lowered hands stay in the list inactive.
type HandRaise struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	Timestamp int64  `json:"timestamp"`
	IsActive  bool   `json:"isActive"`
}

// Answer is an owner reply to a question.
type Answer struct {
	ID         string `json:"id"`
	Content    string `json:"content"`
	AuthorID   string `json:"authorId"`
	AuthorName string `json:"authorName"`
	CreatedAt  int64  `json:"createdAt"`
	IsBest     bool   `json:"isBest"`
}

// Question is a Q&A entry asked by any peer.
type Question struct {
	ID            string   `json:"id"`
	Content       string   `json:"content"`
	AuthorID      string   `json:"authorId"`
	AuthorName    string   `json:"authorName"`
	Answers       []Answer `json:"answers"`
	Upvotes       []string `json:"upvotes"` // Upvotes идентификаторы проголосовавших пользователей
	CreatedAt     int64    `json:"createdAt"`
	IsPinned      bool     `json:"isPinned"`
	IsSharedToAll bool     `json:"isSharedToAll"`
}

// SharedDocument is the authoritative state of a room.
type SharedDocument struct {
	Canvas        map[string]StrokeDocument `json:"canvas"`
	CurrentFileID string                    `json:"currentFileId"`
	Polls         []Poll                    `json:"polls,omitempty"`
	HandRaises    []HandRaise               `json:"handRaises,omitempty"`
	Questions     []Question                `json:"questions,omitempty"`
	CurrentPage   int                       `json:"currentPage"`
}

// PageKey builds the canvas key of a file page.
func PageKey(fileID string, page int) string {
	return fmt.Sprintf("%s-%d", fileID, page)
}

// Clone returns a deep copy of the document.
func (d SharedDocument) Clone() SharedDocument {
	clone := SharedDocument{
		CurrentFileID: d.CurrentFileID,
		CurrentPage:   d.CurrentPage,
		Canvas:        make(map[string]StrokeDocument, len(d.Canvas)),
	}
	for key, stroke := range d.Canvas {
		objects := make([]json.RawMessage, len(stroke.Objects))
		for i, obj := range stroke.Objects {
			objects[i] = append(json.RawMessage(nil), obj...)
		}
		clone.Canvas[key] = StrokeDocument{
			Version:    stroke.Version,
			Background: stroke.Background,
			Objects:    objects,
		}
	}
	if d.Polls != nil {
		clone.Polls = make([]Poll, len(d.Polls))
		for i, poll := range d.Polls {
			p := poll
			p.Options = make([]PollOption, len(poll.Options))
			for j, opt := range poll.Options {
				p.Options[j] = PollOption{
					Text:  opt.Text,
					Votes: append([]string(nil), opt.Votes...),
				}
			}
			clone.Polls[i] = p
		}
	}
	if d.HandRaises != nil {
		clone.HandRaises = slices.Clone(d.HandRaises)
	}
	if d.Questions != nil {
		clone.Questions = make([]Question, len(d.Questions))
		for i, q := range d.Questions {
			q.Answers = slices.Clone(q.Answers)
			q.Upvotes = slices.Clone(q.Upvotes)
			clone.Questions[i] = q
		}
	}
	return clone
}

// Snapshot is one replicated version of the shared document.
// Epoch changes whenever the room is recreated; Seq grows with every
// accepted owner mutation inside an epoch.
type Snapshot struct {
	Epoch    string         `json:"epoch"`
	Origin   string         `json:"origin,omitempty"` // Origin connection id автора изменения
	Document SharedDocument `json:"document"`
	Seq      uint64         `json:"seq"`
}

// Supersedes reports whether s may replace cur in a mirror.
// Within one epoch only a strictly greater sequence wins, so equal
// sequence numbers are treated as duplicates.
func (s Snapshot) Supersedes(cur Snapshot) bool {
	if cur.Epoch == "" || s.Epoch != cur.Epoch {
		return true
	}
	return s.Seq > cur.Seq
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	s.Document = s.Document.Clone()
	return s
}

// RoomEventType names a fire-and-forget room notification.
type RoomEventType string

const (
	EventEmojiReaction   RoomEventType = "EMOJI_REACTION"
	EventHandRaise       RoomEventType = "HAND_RAISE"
	EventHandLower       RoomEventType = "HAND_LOWER"
	EventPollCreated     RoomEventType = "POLL_CREATED"
	EventPollVote        RoomEventType = "POLL_VOTE"
	EventPollEnded       RoomEventType = "POLL_ENDED"
	EventQuestionAdded   RoomEventType = "QUESTION_ADDED"
	EventQuestionUpvoted RoomEventType = "QUESTION_UPVOTED"
	EventQuestionDeleted RoomEventType = "QUESTION_DELETED"
	EventAnswerAdded     RoomEventType = "ANSWER_ADDED"
	EventAnswerBest      RoomEventType = "ANSWER_MARKED_BEST"
	EventPageChange      RoomEventType = "PAGE_CHANGE"
	EventCanvasUpdate    RoomEventType = "CANVAS_UPDATE"
)

// RoomEvent is a non-persisted broadcast notification.
type RoomEvent struct {
	Type      RoomEventType   `json:"type"`
	From      string          `json:"from,omitempty"` // From connection id отправителя (заполняет сервер)
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp int64           `json:"timestamp"`
}

// PollVote is the payload of a POLL_VOTE event.
type PollVote struct {
	PollID      string `json:"pollId"`
	UserID      string `json:"userId"`
	OptionIndex int    `json:"optionIndex"`
}

// PageChange is the payload of a PAGE_CHANGE event.
type PageChange struct {
	FileID string `json:"fileId"`
	Page   int    `json:"page"`
}

// HandSignal is the payload of HAND_RAISE and HAND_LOWER events.
type HandSignal struct {
	ID       string `json:"id,omitempty"`
	UserID   string `json:"userId"`
	UserName string `json:"userName,omitempty"`
}

// QuestionUpvote is the payload of a QUESTION_UPVOTED event.
type QuestionUpvote struct {
	QuestionID string `json:"questionId"`
	UserID     string `json:"userId"`
}
