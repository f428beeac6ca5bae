package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/iudanet/notesync/internal/client/data"
	"github.com/iudanet/notesync/internal/models"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record type. Usage: notesync add <note|folder|file|page|recording>")
	}

	fs := newFlagSet("add " + args[0])
	var err error
	switch args[0] {
	case "note":
		note := &models.Note{}
		fs.StringVar(&note.ID, "id", "", "note id to update")
		fs.StringVar(&note.Title, "title", "", "title")
		fs.StringVar(&note.FolderID, "folder", "", "folder id")
		noteType := fs.String("type", string(models.NoteTypeStudent), "student or educator")
		tags := fs.String("tags", "", "comma separated tags")
		if err = fs.Parse(args[1:]); err != nil {
			break
		}
		if note.Title == "" {
			if note.Title, err = c.io.ReadInput("Title: "); err != nil {
				return fmt.Errorf("failed to read title: %w", err)
			}
		}
		note.Type = models.NoteType(*noteType)
		note.Tags = splitTags(*tags)
		if err = c.data.SaveNote(ctx, note); err == nil {
			c.io.Printf("✓ Note saved: %s\n", note.ID)
		}

	case "folder":
		folder := &models.Folder{}
		fs.StringVar(&folder.ID, "id", "", "folder id to rename")
		fs.StringVar(&folder.Name, "name", "", "name")
		fs.StringVar(&folder.ParentID, "parent", "", "parent folder id")
		if err = fs.Parse(args[1:]); err != nil {
			break
		}
		if err = c.data.SaveFolder(ctx, folder); err == nil {
			c.io.Printf("✓ Folder saved: %s\n", folder.ID)
		}

	case "file":
		file := &models.FileRef{}
		fs.StringVar(&file.NoteID, "note", "", "note id")
		fs.StringVar(&file.FileName, "name", "", "file name")
		fs.StringVar(&file.FileType, "type", "application/pdf", "MIME type")
		fs.StringVar(&file.BackendURL, "url", "", "uploaded file URL")
		fs.Int64Var(&file.FileSize, "size", 0, "size in bytes")
		fs.IntVar(&file.TotalPages, "pages", 0, "page count")
		if err = fs.Parse(args[1:]); err != nil {
			break
		}
		if err = c.data.AttachFile(ctx, file); err == nil {
			c.io.Printf("✓ File attached: %s\n", file.ID)
		}

	case "page":
		page := &models.ContentPage{}
		fs.StringVar(&page.NoteID, "note", "", "note id")
		fs.StringVar(&page.PageID, "page", "", "page id")
		text := fs.String("text", "", "text block, separate blocks with |")
		todo := fs.String("todo", "", "checklist items, separate with |")
		if err = fs.Parse(args[1:]); err != nil {
			break
		}
		page.Blocks = blocks(*text, *todo, c.now().UnixMilli())
		if err = c.data.SaveContentPage(ctx, page); err == nil {
			c.io.Printf("✓ Page %s saved with %d block(s)\n", page.PageID, len(page.Blocks))
		}

	case "recording":
		rec := &models.Recording{}
		fs.StringVar(&rec.NoteID, "note", "", "note id")
		fs.StringVar(&rec.Title, "title", "", "title")
		fs.Int64Var(&rec.DurationMs, "duration-ms", 0, "duration in milliseconds")
		if err = fs.Parse(args[1:]); err != nil {
			break
		}
		if err = c.data.SaveRecording(ctx, rec); err == nil {
			c.io.Printf("✓ Recording saved: %s\n", rec.ID)
		}

	default:
		return fmt.Errorf("unknown record type: %s", args[0])
	}

	if err != nil {
		return fmt.Errorf("add %s: %w", args[0], err)
	}
	return nil
}

func (c *Cli) runList(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing record type. Usage: notesync list <notes|folders|files|pages|recordings> [NOTE_ID]")
	}

	kind := args[0]
	noteID := ""
	if len(args) > 1 {
		noteID = args[1]
	}
	if noteID == "" && (kind == "files" || kind == "pages" || kind == "recordings") {
		return fmt.Errorf("list %s requires a note id", kind)
	}

	switch kind {
	case "notes":
		notes, err := c.data.ListNotes(ctx)
		if err != nil {
			return err
		}
		if len(notes) == 0 {
			c.io.Println("No notes found. Use 'notesync add note' to create one.")
			return nil
		}
		c.io.Printf("Found %d note(s):\n", len(notes))
		for i, n := range notes {
			c.io.Printf("%d. %s\n   ID: %s\n", i+1, n.Title, n.ID)
			if len(n.Tags) > 0 {
				c.io.Printf("   Tags: %s\n", strings.Join(n.Tags, ", "))
			}
		}

	case "folders":
		folders, err := c.data.ListFolders(ctx)
		if err != nil {
			return err
		}
		c.printFolders(folders)

	case "files":
		files, err := c.data.ListFiles(ctx, noteID)
		if err != nil {
			return err
		}
		for _, f := range files {
			c.io.Printf("%s  %s  %d bytes\n", f.ID, f.FileName, f.FileSize)
		}

	case "pages":
		pages, err := c.data.ListContentPages(ctx, noteID)
		if err != nil {
			return err
		}
		for _, p := range pages {
			c.io.Printf("page %s: %d block(s)\n", p.PageID, len(p.Blocks))
		}

	case "recordings":
		recs, err := c.data.ListRecordings(ctx, noteID)
		if err != nil {
			return err
		}
		for _, r := range recs {
			c.io.Printf("%s  %s  %d ms\n", r.ID, r.Title, r.DurationMs)
		}

	default:
		return fmt.Errorf("unknown record type: %s", kind)
	}
	return nil
}

// printFolders печатает дерево папок с отступами
func (c *Cli) printFolders(folders []*models.Folder) {
	if len(folders) == 0 {
		c.io.Println("No folders found.")
		return
	}

	children := make(map[string][]*models.Folder)
	for _, f := range folders {
		children[f.ParentID] = append(children[f.ParentID], f)
	}

	var walk func(parent string, depth int)
	walk = func(parent string, depth int) {
		for _, f := range children[parent] {
			c.io.Printf("%s%s  (%s)\n", strings.Repeat("  ", depth), f.Name, f.ID)
			walk(f.ID, depth+1)
		}
	}
	walk("", 0)
}

type noteView struct {
	Note       *models.Note
	Files      []*models.FileRef
	Pages      []*models.ContentPage
	Recordings []*models.Recording
}

func (c *Cli) runGet(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing note ID. Usage: notesync get <id>")
	}

	note, err := c.data.GetNote(ctx, args[0])
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return fmt.Errorf("note not found with ID: %s", args[0])
		}
		return fmt.Errorf("failed to get note: %w", err)
	}

	view := noteView{Note: note}
	if view.Files, err = c.data.ListFiles(ctx, note.ID); err != nil {
		return err
	}
	if view.Pages, err = c.data.ListContentPages(ctx, note.ID); err != nil {
		return err
	}
	if view.Recordings, err = c.data.ListRecordings(ctx, note.ID); err != nil {
		return err
	}

	return render(c.io, noteTemplate, view)
}

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: notesync delete <note|folder|file> <id>")
	}
	kind, id := args[0], args[1]

	var err error
	switch kind {
	case "note":
		ok, cerr := c.io.Confirm(fmt.Sprintf("Delete note %s with its files, pages and recordings?", id))
		if cerr != nil {
			return fmt.Errorf("failed to read confirmation: %w", cerr)
		}
		if !ok {
			c.io.Println("Cancelled.")
			return nil
		}
		err = c.data.DeleteNote(ctx, id)
	case "folder":
		err = c.data.DeleteFolder(ctx, id)
	case "file":
		err = c.data.DeleteFile(ctx, id)
	default:
		return fmt.Errorf("unknown record type: %s", kind)
	}

	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			return fmt.Errorf("%s not found with ID: %s", kind, id)
		}
		return fmt.Errorf("failed to delete %s: %w", kind, err)
	}

	c.io.Printf("✓ Deleted %s %s\n", kind, id)
	c.io.Println("The deletion will be pushed on the next sync.")
	return nil
}

func splitTags(s string) []string {
	var tags []string
	for tag := range strings.SplitSeq(s, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func blocks(text, todo string, now int64) []models.ContentBlock {
	var out []models.ContentBlock
	add := func(kind, content string) {
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		out = append(out, models.ContentBlock{
			ID:        fmt.Sprintf("b%d", len(out)+1),
			Type:      kind,
			Content:   content,
			Order:     len(out),
			CreatedAt: now,
		})
	}
	for part := range strings.SplitSeq(text, "|") {
		add("text", part)
	}
	for part := range strings.SplitSeq(todo, "|") {
		add("checklist", part)
	}
	return out
}
