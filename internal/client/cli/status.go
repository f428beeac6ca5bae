package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/notesync/internal/client/status"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	auth, err := LoadAuth(ctx, c.auth, c.now())
	switch {
	case errors.Is(err, ErrNotAuthenticated):
		c.io.Println("Authentication: not authenticated")
	case err != nil:
		c.io.Printf("Authentication: %v\n", err)
	default:
		c.io.Printf("Authentication: %s (%s)\n", auth.UserName, auth.UserID)
		if auth.ExpiresAt > 0 {
			remaining := time.Unix(auth.ExpiresAt, 0).Sub(c.now())
			c.io.Printf("Token expires in: %s\n", remaining.Round(time.Second))
		}
	}

	st := c.engine.SyncStatus().Get()
	if err := render(c.io, statusTemplate, statusView{Status: st, Label: levelLabel(st.Level)}); err != nil {
		return err
	}

	if st.Level == status.LevelPending {
		c.io.Println("Run 'notesync sync' to push pending changes.")
	}
	if st.Failed > 0 {
		c.io.Println("Run 'notesync queue' to inspect failed changes.")
	}
	return nil
}

type statusView struct {
	status.Status
	Label string
}

func levelLabel(l status.Level) string {
	switch l {
	case status.LevelSuccess:
		return "✓ synchronized"
	case status.LevelPending:
		return "… changes waiting"
	case status.LevelSyncing:
		return "⟳ syncing"
	case status.LevelError:
		return "⚠ error"
	default:
		return fmt.Sprint(l)
	}
}
