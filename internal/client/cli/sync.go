package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/iudanet/notesync/internal/client/queue"
	"github.com/iudanet/notesync/internal/client/storage"
)

func (c *Cli) runSync(ctx context.Context) error {
	c.io.Println("=== Synchronization ===")
	c.io.Println()

	drained, pulled, err := c.engine.SyncNow(ctx)
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}
	if drained.Offline {
		c.io.Println("Server is unreachable. Changes stay queued and will be pushed later.")
		return nil
	}

	c.io.Println("✓ Synchronization completed")
	c.io.Println()
	c.io.Printf("Pushed to server:   %d change(s)\n", drained.Pushed)
	if drained.Conflicts > 0 {
		c.io.Printf("Superseded remotely: %d change(s)\n", drained.Conflicts)
	}
	if drained.Retrying > 0 {
		c.io.Printf("Will retry:         %d change(s)\n", drained.Retrying)
	}
	if drained.Failed > 0 {
		c.io.Printf("Failed:             %d change(s), see 'notesync queue'\n", drained.Failed)
	}
	if pulled != nil {
		c.io.Printf("Pulled from server: %d added, %d updated, %d deleted\n", pulled.Added, pulled.Updated, pulled.Deleted)
		if pulled.Skipped > 0 {
			c.io.Printf("Kept local (pending changes): %d\n", pulled.Skipped)
		}
	}
	return nil
}

func (c *Cli) runQueue(ctx context.Context) error {
	items, err := c.engine.QueueItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to list queue: %w", err)
	}
	if len(items) == 0 {
		c.io.Println("Queue is empty. All changes are on the server.")
		return nil
	}

	c.io.Printf("%d queued change(s):\n", len(items))
	return render(c.io, queueTemplate, items)
}

func (c *Cli) runRetry(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing item ID. Usage: notesync retry <id>")
	}

	if err := c.engine.Retry(ctx, args[0]); err != nil {
		return queueError(args[0], err)
	}
	c.io.Printf("✓ Item %s will be retried on the next sync\n", args[0])
	return nil
}

func (c *Cli) runDiscard(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing item ID. Usage: notesync discard <id>")
	}

	ok, err := c.io.Confirm(fmt.Sprintf("Discard change %s? The server will never see it", args[0]))
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := c.engine.Discard(ctx, args[0]); err != nil {
		return queueError(args[0], err)
	}
	c.io.Printf("✓ Item %s discarded\n", args[0])
	return nil
}

func queueError(id string, err error) error {
	switch {
	case errors.Is(err, storage.ErrItemNotFound):
		return fmt.Errorf("queue item not found with ID: %s", id)
	case errors.Is(err, queue.ErrItemInFlight):
		return fmt.Errorf("queue item %s is being sent, try again later", id)
	case errors.Is(err, queue.ErrItemNotFailed):
		return fmt.Errorf("queue item %s has not failed", id)
	default:
		return err
	}
}
