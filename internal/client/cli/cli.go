package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iudanet/notesync/internal/client/collab"
	"github.com/iudanet/notesync/internal/client/data"
	"github.com/iudanet/notesync/internal/client/iocli"
	"github.com/iudanet/notesync/internal/client/queue"
	"github.com/iudanet/notesync/internal/client/status"
	"github.com/iudanet/notesync/internal/client/storage"
	"github.com/iudanet/notesync/internal/client/stream"
	syncsvc "github.com/iudanet/notesync/internal/client/sync"
	"github.com/iudanet/notesync/internal/models"
)

//go:generate moq -out engine_mock.go . Engine

// Engine is the part of engine.Engine the commands drive.
type Engine interface {
	SyncNow(ctx context.Context) (queue.DrainResult, *syncsvc.Result, error)
	QueueItems(ctx context.Context) ([]*models.QueueItem, error)
	Retry(ctx context.Context, id string) error
	Discard(ctx context.Context, id string) error
	SyncStatus() stream.Observable[status.Status]
	JoinRoom(ctx context.Context, roomID string, role models.Role, presence models.Presence) (*collab.Session, error)
}

// ErrNotAuthenticated is returned by commands that need a stored token.
var ErrNotAuthenticated = errors.New("not authenticated, run 'notesync login' first")

// Passphrase lists the sources of the local store passphrase.
type Passphrase struct {
	FromEnv  string
	FromFile string
	FromArgs string
}

// Cli runs client commands. Commands that work offline on local data need
// the engine and the data service; login and logout only need auth storage.
type Cli struct {
	io     iocli.IO
	auth   storage.AuthStorage
	engine Engine
	data   data.Service
	now    func() time.Time
}

// New creates a CLI bound to auth storage. Attach adds sync components.
func New(io iocli.IO, auth storage.AuthStorage) *Cli {
	return &Cli{io: io, auth: auth, now: time.Now}
}

// Attach wires the engine and the data service.
func (c *Cli) Attach(engine Engine, dataService data.Service) {
	c.engine = engine
	c.data = dataService
}

// NeedsEngine reports whether command requires Attach before Run.
func NeedsEngine(command string) bool {
	switch command {
	case "login", "logout", "help":
		return false
	default:
		return true
	}
}

// Run executes one command.
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	if NeedsEngine(command) && c.engine == nil {
		return fmt.Errorf("command %q requires a sync engine", command)
	}

	switch command {
	case "login":
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "sync":
		return c.runSync(ctx)
	case "add":
		return c.runAdd(ctx, args)
	case "list":
		return c.runList(ctx, args)
	case "get":
		return c.runGet(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	case "queue":
		return c.runQueue(ctx)
	case "retry":
		return c.runRetry(ctx, args)
	case "discard":
		return c.runDiscard(ctx, args)
	case "join":
		return c.runJoin(ctx, args)
	case "help":
		PrintUsage(c.io)
		return nil
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// ResolvePassphrase returns the store passphrase with priority:
// 1. Environment variable NOTESYNC_PASSPHRASE
// 2. File given by --passphrase-file
// 3. --passphrase flag
// 4. Interactive prompt, only when the store is already encrypted
//
// An empty result means the store stays unencrypted.
func ResolvePassphrase(io iocli.IO, src Passphrase, encrypted bool) (string, error) {
	if src.FromEnv != "" {
		return src.FromEnv, nil
	}

	if src.FromFile != "" {
		content, err := os.ReadFile(src.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read passphrase file: %w", err)
		}
		// Убираем завершающий перевод строки
		passphrase := strings.TrimSpace(string(content))
		if passphrase == "" {
			return "", fmt.Errorf("passphrase file is empty")
		}
		return passphrase, nil
	}

	if src.FromArgs != "" {
		return src.FromArgs, nil
	}

	if !encrypted {
		return "", nil
	}

	passphrase, err := io.ReadPassword("Passphrase: ")
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	if passphrase == "" {
		return "", fmt.Errorf("passphrase cannot be empty")
	}
	return passphrase, nil
}

// PrintUsage writes command help.
func PrintUsage(io iocli.IO) {
	io.Println("notesync client")
	io.Println()
	io.Println("Usage:")
	io.Println("  notesync [OPTIONS] COMMAND [ARGS]")
	io.Println()
	io.Println("Options:")
	io.Println("  --version                Show version information")
	io.Println("  --server URL             Server URL (default: http://localhost:8080)")
	io.Println("  --db PATH                Path to local database (default: notesync-client.db)")
	io.Println("  --passphrase VALUE       Local store passphrase (not recommended, use env var or file)")
	io.Println("  --passphrase-file PATH   File containing the local store passphrase")
	io.Println("  --log-level LEVEL        debug, info, warn or error (default: warn)")
	io.Println()
	io.Println("Passphrase priority (highest to lowest):")
	io.Println("  1. NOTESYNC_PASSPHRASE environment variable")
	io.Println("  2. --passphrase-file")
	io.Println("  3. --passphrase")
	io.Println("  4. Interactive prompt when the store is encrypted")
	io.Println()
	io.Println("Commands:")
	io.Println("  login --token TOKEN                 Save an access token")
	io.Println("  logout                              Forget the access token")
	io.Println("  status                              Show authentication and sync status")
	io.Println("  sync                                Push queued changes and pull the server state")
	io.Println("  add note|folder|file|page|recording Add a record (see flags with -h)")
	io.Println("  list notes|folders|files|pages|recordings [NOTE_ID]")
	io.Println("  get NOTE_ID                         Show a note with its attachments")
	io.Println("  delete note|folder|file ID          Delete a record")
	io.Println("  queue                               List queued changes")
	io.Println("  retry ITEM_ID                       Retry a failed change")
	io.Println("  discard ITEM_ID                     Drop a queued change")
	io.Println("  join ROOM_ID [--role owner|observer] Join a collaboration room")
	io.Println()
	io.Println("Examples:")
	io.Println("  notesync login --token \"$(notesync-server -issue-token alice:Alice)\"")
	io.Println("  notesync add note --title 'Lecture 1' --tags math,algebra")
	io.Println("  notesync sync")
	io.Println("  notesync join lecture-42 --role owner --file slides.pdf --page 3")
}
