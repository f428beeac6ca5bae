package collab

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/iudanet/notesync/internal/models"
)

var (
	// ErrQuestionNotFound is returned for unknown questions.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrAnswerNotFound is returned for unknown answers.
	ErrAnswerNotFound = errors.New("answer not found")
)

// AskQuestion posts a question from the local user. Observers announce it
// with a QUESTION_ADDED event and the owner records it.
func (s *Session) AskQuestion(content string) (models.Question, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Question{}, fmt.Errorf("question must not be empty")
	}

	self := s.Self()
	q := models.Question{
		ID:         uuid.New().String(),
		Content:    content,
		AuthorID:   self.UserID,
		AuthorName: self.UserName,
		Answers:    []models.Answer{},
		Upvotes:    []string{},
		CreatedAt:  s.now().UnixMilli(),
	}

	if s.opts.Role.CanMutate() {
		if err := s.mutate(func(doc *models.SharedDocument) bool {
			return ApplyQuestion(doc, q)
		}); err != nil {
			return models.Question{}, err
		}
	}
	if err := s.Broadcast(models.EventQuestionAdded, q); err != nil {
		return models.Question{}, err
	}
	return q, nil
}

// UpvoteQuestion adds the local user's upvote. Upvotes cannot be taken back.
func (s *Session) UpvoteQuestion(questionID string) error {
	up := models.QuestionUpvote{QuestionID: questionID, UserID: s.Self().UserID}
	if findQuestion(s.Snapshot().Document, questionID) < 0 {
		return ErrQuestionNotFound
	}

	if s.opts.Role.CanMutate() {
		return s.mutate(func(doc *models.SharedDocument) bool {
			return ApplyUpvote(doc, up)
		})
	}
	return s.Broadcast(models.EventQuestionUpvoted, up)
}

// AnswerQuestion adds an owner answer to a question.
func (s *Session) AnswerQuestion(questionID, content string) (models.Answer, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.Answer{}, fmt.Errorf("answer must not be empty")
	}

	self := s.Self()
	answer := models.Answer{
		ID:         uuid.New().String(),
		Content:    content,
		AuthorID:   self.UserID,
		AuthorName: self.UserName,
		CreatedAt:  s.now().UnixMilli(),
	}
	if err := s.editQuestion(questionID, "answer questions", func(q *models.Question) error {
		q.Answers = append(q.Answers, answer)
		return nil
	}); err != nil {
		return models.Answer{}, err
	}

	s.announce(models.EventAnswerAdded, map[string]string{"questionId": questionID, "answerId": answer.ID})
	return answer, nil
}

// MarkBestAnswer marks one answer as best and clears the mark on the others.
func (s *Session) MarkBestAnswer(questionID, answerID string) error {
	err := s.editQuestion(questionID, "mark answers", func(q *models.Question) error {
		if !slices.ContainsFunc(q.Answers, func(a models.Answer) bool { return a.ID == answerID }) {
			return ErrAnswerNotFound
		}
		for i := range q.Answers {
			q.Answers[i].IsBest = q.Answers[i].ID == answerID
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.announce(models.EventAnswerBest, map[string]string{"questionId": questionID, "answerId": answerID})
	return nil
}

// PinQuestion pins or unpins a question.
func (s *Session) PinQuestion(questionID string, pinned bool) error {
	return s.editQuestion(questionID, "pin questions", func(q *models.Question) error {
		q.IsPinned = pinned
		return nil
	})
}

// DeleteQuestion removes a question with its answers.
func (s *Session) DeleteQuestion(questionID string) error {
	found := false
	err := s.mutate(func(doc *models.SharedDocument) bool {
		i := findQuestion(*doc, questionID)
		if i < 0 {
			return false
		}
		doc.Questions = slices.Delete(doc.Questions, i, i+1)
		found = true
		return true
	})
	if err != nil {
		return err
	}
	if !found {
		return ErrQuestionNotFound
	}

	s.announce(models.EventQuestionDeleted, map[string]string{"questionId": questionID})
	return nil
}

// editQuestion applies an owner-only change to one question.
func (s *Session) editQuestion(questionID, op string, fn func(q *models.Question) error) error {
	if !s.opts.Role.CanMutate() {
		return &AuthorityError{Role: s.opts.Role, Op: op}
	}

	var editErr error
	err := s.mutate(func(doc *models.SharedDocument) bool {
		i := findQuestion(*doc, questionID)
		if i < 0 {
			editErr = ErrQuestionNotFound
			return false
		}
		if editErr = fn(&doc.Questions[i]); editErr != nil {
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	return editErr
}

// announce broadcasts an owner notification. The document is already
// replicated, so a failed send is only logged.
func (s *Session) announce(eventType models.RoomEventType, payload any) {
	if err := s.Broadcast(eventType, payload); err != nil {
		s.logger.Warn("failed to announce room event", "type", eventType, "error", err)
	}
}

// ApplyQuestion appends q unless a question with the same id exists. It
// reports whether doc changed.
func ApplyQuestion(doc *models.SharedDocument, q models.Question) bool {
	if q.ID == "" || q.AuthorID == "" || strings.TrimSpace(q.Content) == "" {
		return false
	}
	if findQuestion(*doc, q.ID) >= 0 {
		return false
	}
	if q.Answers == nil {
		q.Answers = []models.Answer{}
	}
	if q.Upvotes == nil {
		q.Upvotes = []string{}
	}
	doc.Questions = append(doc.Questions, q)
	return true
}

// ApplyUpvote records an upvote once per user. It reports whether doc changed.
func ApplyUpvote(doc *models.SharedDocument, up models.QuestionUpvote) bool {
	if up.UserID == "" {
		return false
	}
	i := findQuestion(*doc, up.QuestionID)
	if i < 0 || slices.Contains(doc.Questions[i].Upvotes, up.UserID) {
		return false
	}
	doc.Questions[i].Upvotes = append(doc.Questions[i].Upvotes, up.UserID)
	return true
}

func findQuestion(doc models.SharedDocument, questionID string) int {
	return slices.IndexFunc(doc.Questions, func(q models.Question) bool { return q.ID == questionID })
}
