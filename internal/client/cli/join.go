package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iudanet/notesync/internal/client/collab"
	"github.com/iudanet/notesync/internal/models"
)

const endTimeout = 5 * time.Second

// runJoin joins a room and prints what happens in it until the command is
// interrupted or the owner ends the session.
func (c *Cli) runJoin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing room ID. Usage: notesync join <room> [--role owner|observer]")
	}
	roomID := args[0]

	fs := newFlagSet("join")
	role := fs.String("role", string(models.RoleObserver), "owner or observer")
	name := fs.String("name", "", "display name")
	color := fs.String("color", "#4f46e5", "cursor color")
	file := fs.String("file", "", "file to show")
	page := fs.Int("page", 0, "page to show")
	react := fs.String("react", "", "emoji to send after joining")
	hand := fs.Bool("hand", false, "raise a hand after joining")
	ask := fs.String("ask", "", "question to ask after joining")
	end := fs.Bool("end", false, "owner: end the session for everyone on exit")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("join: %w", err)
	}

	r := models.Role(*role)
	if !r.Valid() {
		return fmt.Errorf("unknown role: %s", *role)
	}

	session, err := c.engine.JoinRoom(ctx, roomID, r, models.Presence{UserName: *name, Color: *color})
	if err != nil {
		var authErr *collab.AuthorityError
		switch {
		case errors.Is(err, collab.ErrRoomNotFound):
			return fmt.Errorf("room %s is not open, the owner has to join first", roomID)
		case errors.As(err, &authErr):
			return fmt.Errorf("cannot join as %s: %w", r, err)
		default:
			return err
		}
	}
	defer session.Leave()

	// вывод из подписок приходит из разных горутин
	var mu sync.Mutex
	say := func(format string, a ...any) {
		mu.Lock()
		defer mu.Unlock()
		c.io.Printf(format, a...)
	}

	say("✓ Joined %s as %s (connection %s)\n", roomID, r, session.ConnectionID())

	peers := -1
	disposePresence := session.Presence().Subscribe(func(set models.PresenceSet) {
		if len(set) != peers {
			peers = len(set)
			say("peers online: %d\n", peers)
		}
	})
	defer disposePresence()

	var shown string
	hands, questions := 0, 0
	disposeStorage := session.Storage().Subscribe(func(snap models.Snapshot) {
		doc := snap.Document
		current := fmt.Sprintf("%s#%d", doc.CurrentFileID, doc.CurrentPage)
		if current != shown {
			shown = current
			say("showing %s page %d\n", doc.CurrentFileID, doc.CurrentPage)
		}
		if n := len(collab.ActiveHands(doc)); n != hands {
			hands = n
			say("hands raised: %d\n", hands)
		}
		if n := len(doc.Questions); n != questions {
			questions = n
			say("questions: %d\n", questions)
		}
	})
	defer disposeStorage()

	disposeEvents := session.Events().Subscribe(func(ev models.RoomEvent) {
		say("event %s from %s\n", ev.Type, ev.From)
	})
	defer disposeEvents()

	if *file != "" {
		if err := session.SetPage(*file, *page); err != nil {
			return fmt.Errorf("failed to update presence: %w", err)
		}
		if r.CanMutate() {
			err := session.Mutate(func(doc *models.SharedDocument) {
				doc.CurrentFileID = *file
				doc.CurrentPage = *page
			})
			if err != nil {
				return fmt.Errorf("failed to change page: %w", err)
			}
		}
	}
	if *react != "" {
		if err := session.Broadcast(models.EventEmojiReaction, map[string]string{"emoji": *react}); err != nil {
			return fmt.Errorf("failed to send reaction: %w", err)
		}
	}
	if *hand {
		if err := session.RaiseHand(); err != nil {
			return fmt.Errorf("failed to raise hand: %w", err)
		}
	}
	if *ask != "" {
		if _, err := session.AskQuestion(*ask); err != nil {
			return fmt.Errorf("failed to ask question: %w", err)
		}
	}

	select {
	case <-session.Done():
		if err := session.Err(); err != nil && !errors.Is(err, collab.ErrSessionEnded) {
			return fmt.Errorf("session closed: %w", err)
		}
		say("Session ended by the owner.\n")
		return nil
	case <-ctx.Done():
	}

	if *end && r.CanMutate() {
		endCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), endTimeout)
		defer cancel()
		if err := session.End(endCtx); err != nil {
			return fmt.Errorf("failed to end session: %w", err)
		}
		say("Session ended for everyone.\n")
		return nil
	}

	say("Left %s.\n", roomID)
	return nil
}
