package collab

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/iudanet/notesync/internal/models"
)

// ErrPollNotFound is returned for unknown or closed polls.
var ErrPollNotFound = errors.New("poll not found")

// CreatePoll adds an active poll to the shared document and announces it.
func (s *Session) CreatePoll(question string, options []string) (models.Poll, error) {
	if question == "" || len(options) < 2 {
		return models.Poll{}, fmt.Errorf("poll needs a question and at least two options")
	}

	poll := models.Poll{
		ID:        uuid.New().String(),
		Question:  question,
		CreatedBy: s.Self().UserID,
		CreatedAt: s.now().UnixMilli(),
		IsActive:  true,
		Options:   make([]models.PollOption, len(options)),
	}
	for i, text := range options {
		poll.Options[i] = models.PollOption{Text: text, Votes: []string{}}
	}

	if err := s.Mutate(func(doc *models.SharedDocument) {
		doc.Polls = append(doc.Polls, poll)
	}); err != nil {
		return models.Poll{}, err
	}
	if err := s.Broadcast(models.EventPollCreated, poll); err != nil {
		s.logger.Warn("failed to announce poll", "poll_id", poll.ID, "error", err)
	}
	return poll, nil
}

// ClosePoll deactivates a poll. Votes already recorded are kept.
func (s *Session) ClosePoll(pollID string) error {
	found := false
	err := s.mutate(func(doc *models.SharedDocument) bool {
		for i := range doc.Polls {
			if doc.Polls[i].ID == pollID && doc.Polls[i].IsActive {
				doc.Polls[i].IsActive = false
				found = true
			}
		}
		return found
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrPollNotFound
	}
	if err := s.Broadcast(models.EventPollEnded, map[string]string{"pollId": pollID}); err != nil {
		s.logger.Warn("failed to announce poll end", "poll_id", pollID, "error", err)
	}
	return nil
}

// Vote casts the local user's vote. Observers send a POLL_VOTE event and
// the owner folds it into the document; the owner records its own vote
// directly.
func (s *Session) Vote(pollID string, optionIndex int) error {
	vote := models.PollVote{
		PollID:      pollID,
		UserID:      s.Self().UserID,
		OptionIndex: optionIndex,
	}

	snap := s.Snapshot()
	trial := snap.Document.Clone()
	if !ApplyVote(&trial, vote) && !hasVote(snap.Document, vote) {
		return ErrPollNotFound
	}

	if s.opts.Role.CanMutate() {
		return s.mutate(func(doc *models.SharedDocument) bool {
			return ApplyVote(doc, vote)
		})
	}
	return s.Broadcast(models.EventPollVote, vote)
}

// ApplyVote records vote in doc, moving an earlier vote of the same user.
// It reports whether doc changed.
func ApplyVote(doc *models.SharedDocument, vote models.PollVote) bool {
	if vote.UserID == "" {
		return false
	}
	for i := range doc.Polls {
		poll := &doc.Polls[i]
		if poll.ID != vote.PollID || !poll.IsActive {
			continue
		}
		if vote.OptionIndex < 0 || vote.OptionIndex >= len(poll.Options) {
			return false
		}
		if slices.Contains(poll.Options[vote.OptionIndex].Votes, vote.UserID) {
			return false
		}
		for j := range poll.Options {
			poll.Options[j].Votes = slices.DeleteFunc(poll.Options[j].Votes, func(u string) bool {
				return u == vote.UserID
			})
		}
		poll.Options[vote.OptionIndex].Votes = append(poll.Options[vote.OptionIndex].Votes, vote.UserID)
		return true
	}
	return false
}

// hasVote reports whether vote is already recorded in an active poll.
func hasVote(doc models.SharedDocument, vote models.PollVote) bool {
	for _, poll := range doc.Polls {
		if poll.ID == vote.PollID && poll.IsActive &&
			vote.OptionIndex >= 0 && vote.OptionIndex < len(poll.Options) {
			return slices.Contains(poll.Options[vote.OptionIndex].Votes, vote.UserID)
		}
	}
	return false
}
