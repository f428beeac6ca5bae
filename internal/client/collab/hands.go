package collab

import (
	"github.com/google/uuid"

	"github.com/iudanet/notesync/internal/models"
)

// RaiseHand raises the local user's hand. Observers announce it with a
// HAND_RAISE event and the owner records it in the shared document.
func (s *Session) RaiseHand() error {
	self := s.Self()
	signal := models.HandSignal{
		ID:       uuid.New().String(),
		UserID:   self.UserID,
		UserName: self.UserName,
	}

	if s.opts.Role.CanMutate() {
		ts := s.now().UnixMilli()
		if err := s.mutate(func(doc *models.SharedDocument) bool {
			return ApplyHandRaise(doc, signal, ts)
		}); err != nil {
			return err
		}
	}
	return s.Broadcast(models.EventHandRaise, signal)
}

// LowerHand lowers the hand of userID, or the local user's hand when
// userID is empty. Only the owner may lower another user's hand.
func (s *Session) LowerHand(userID string) error {
	self := s.Self()
	if userID == "" {
		userID = self.UserID
	}
	if userID != self.UserID && !s.opts.Role.CanMutate() {
		return &AuthorityError{Role: s.opts.Role, Op: "lower another user's hand"}
	}

	if s.opts.Role.CanMutate() {
		if err := s.mutate(func(doc *models.SharedDocument) bool {
			return ApplyHandLower(doc, userID)
		}); err != nil {
			return err
		}
	}
	return s.Broadcast(models.EventHandLower, models.HandSignal{UserID: userID})
}

// ActiveHands returns the raised hands in the order they were raised.
func ActiveHands(doc models.SharedDocument) []models.HandRaise {
	var out []models.HandRaise
	for _, h := range doc.HandRaises {
		if h.IsActive {
			out = append(out, h)
		}
	}
	return out
}

// ApplyHandRaise records a raised hand. A user has at most one active
// raise; a repeated signal id is ignored. It reports whether doc changed.
func ApplyHandRaise(doc *models.SharedDocument, signal models.HandSignal, ts int64) bool {
	if signal.UserID == "" || signal.ID == "" {
		return false
	}
	for _, h := range doc.HandRaises {
		if h.ID == signal.ID || (h.UserID == signal.UserID && h.IsActive) {
			return false
		}
	}
	doc.HandRaises = append(doc.HandRaises, models.HandRaise{
		ID:        signal.ID,
		UserID:    signal.UserID,
		UserName:  signal.UserName,
		Timestamp: ts,
		IsActive:  true,
	})
	return true
}

// ApplyHandLower deactivates the active raise of userID. It reports
// whether doc changed.
func ApplyHandLower(doc *models.SharedDocument, userID string) bool {
	changed := false
	for i := range doc.HandRaises {
		if doc.HandRaises[i].UserID == userID && doc.HandRaises[i].IsActive {
			doc.HandRaises[i].IsActive = false
			changed = true
		}
	}
	return changed
}
