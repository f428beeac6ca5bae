package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/iudanet/notesync/internal/client/storage"
	"github.com/iudanet/notesync/internal/models"
)

//go:generate moq -out mutator_mock.go . Mutator

// ErrNotFound is returned when a record does not exist locally.
var ErrNotFound = errors.New("record not found")

// Mutator writes an entity locally and queues it for the remote.
// engine.Engine implements it.
type Mutator interface {
	EnqueueMutation(ctx context.Context, op models.Operation, entity *models.Entity) (*models.QueueItem, error)
}

// Service определяет интерфейс для клиентского data сервиса
type Service interface {
	SaveNote(ctx context.Context, note *models.Note) error
	GetNote(ctx context.Context, id string) (*models.Note, error)
	ListNotes(ctx context.Context) ([]*models.Note, error)
	ListNotesInFolder(ctx context.Context, folderID string) ([]*models.Note, error)
	DeleteNote(ctx context.Context, id string) error

	SaveFolder(ctx context.Context, folder *models.Folder) error
	ListFolders(ctx context.Context) ([]*models.Folder, error)
	ListSubfolders(ctx context.Context, parentID string) ([]*models.Folder, error)
	DeleteFolder(ctx context.Context, id string) error

	AttachFile(ctx context.Context, file *models.FileRef) error
	ListFiles(ctx context.Context, noteID string) ([]*models.FileRef, error)
	DeleteFile(ctx context.Context, id string) error

	SaveContentPage(ctx context.Context, page *models.ContentPage) error
	GetContentPage(ctx context.Context, noteID, pageID string) (*models.ContentPage, error)
	ListContentPages(ctx context.Context, noteID string) ([]*models.ContentPage, error)

	SaveRecording(ctx context.Context, rec *models.Recording) error
	ListRecordings(ctx context.Context, noteID string) ([]*models.Recording, error)
}

// service maps domain records onto generic entities. Reads go to the
// local store; writes go through the mutator so they are synced.
type service struct {
	entities storage.EntityStorage
	mutator  Mutator
}

// NewService creates a new data service
func NewService(entities storage.EntityStorage, mutator Mutator) Service {
	return &service{entities: entities, mutator: mutator}
}

// SaveNote creates the note or updates it when the id is already known.
func (s *service) SaveNote(ctx context.Context, note *models.Note) error {
	if strings.TrimSpace(note.Title) == "" {
		return fmt.Errorf("note title is required")
	}
	if note.Type == "" {
		note.Type = models.NoteTypeStudent
	}
	if note.Type != models.NoteTypeStudent && note.Type != models.NoteTypeEducator {
		return fmt.Errorf("unknown note type: %q", note.Type)
	}
	if note.FolderID != "" {
		if err := s.exists(ctx, models.EntityTypeFolder, note.FolderID); err != nil {
			return fmt.Errorf("folder %s: %w", note.FolderID, err)
		}
	}
	note.ID = ensureID(note.ID)
	return s.save(ctx, models.EntityTypeNote, note.ID, note, index(models.IndexFolderID, note.FolderID))
}

// GetNote returns the note or ErrNotFound.
func (s *service) GetNote(ctx context.Context, id string) (*models.Note, error) {
	return get[models.Note](ctx, s.entities, models.EntityTypeNote, id)
}

// ListNotes returns every note ordered by id.
func (s *service) ListNotes(ctx context.Context) ([]*models.Note, error) {
	return list[models.Note](s.entities.ListAll(ctx, models.EntityTypeNote))
}

// ListNotesInFolder returns notes whose FolderID equals folderID.
// An empty folderID lists notes at the root.
func (s *service) ListNotesInFolder(ctx context.Context, folderID string) ([]*models.Note, error) {
	if folderID == "" {
		notes, err := s.ListNotes(ctx)
		if err != nil {
			return nil, err
		}
		return slices.DeleteFunc(notes, func(n *models.Note) bool { return n.FolderID != "" }), nil
	}
	return list[models.Note](s.entities.ListByIndex(ctx, models.EntityTypeNote, models.IndexFolderID, folderID))
}

// DeleteNote deletes the note together with its files, content pages and
// recordings. Children are queued before the note.
func (s *service) DeleteNote(ctx context.Context, id string) error {
	if err := s.exists(ctx, models.EntityTypeNote, id); err != nil {
		return err
	}

	for _, t := range []models.EntityType{models.EntityTypeFile, models.EntityTypeContentPage, models.EntityTypeRecording} {
		children, err := s.entities.ListByIndex(ctx, t, models.IndexNoteID, id)
		if err != nil {
			return fmt.Errorf("failed to list %s of note %s: %w", t, id, err)
		}
		for _, child := range children {
			if err := s.remove(ctx, t, child.ID); err != nil {
				return err
			}
		}
	}

	return s.remove(ctx, models.EntityTypeNote, id)
}

// SaveFolder creates or renames a folder. A folder cannot be its own ancestor.
func (s *service) SaveFolder(ctx context.Context, folder *models.Folder) error {
	if strings.TrimSpace(folder.Name) == "" {
		return fmt.Errorf("folder name is required")
	}
	folder.ID = ensureID(folder.ID)

	// Проверяем цепочку родителей на цикл
	for parent := folder.ParentID; parent != ""; {
		if parent == folder.ID {
			return fmt.Errorf("folder %s cannot be nested into itself", folder.ID)
		}
		p, err := get[models.Folder](ctx, s.entities, models.EntityTypeFolder, parent)
		if err != nil {
			return fmt.Errorf("parent folder %s: %w", parent, err)
		}
		parent = p.ParentID
	}

	return s.save(ctx, models.EntityTypeFolder, folder.ID, folder, index(models.IndexParentID, folder.ParentID))
}

// ListFolders returns every folder ordered by id.
func (s *service) ListFolders(ctx context.Context) ([]*models.Folder, error) {
	return list[models.Folder](s.entities.ListAll(ctx, models.EntityTypeFolder))
}

// ListSubfolders returns direct children of parentID, root folders for "".
func (s *service) ListSubfolders(ctx context.Context, parentID string) ([]*models.Folder, error) {
	if parentID == "" {
		folders, err := s.ListFolders(ctx)
		if err != nil {
			return nil, err
		}
		return slices.DeleteFunc(folders, func(f *models.Folder) bool { return f.ParentID != "" }), nil
	}
	return list[models.Folder](s.entities.ListByIndex(ctx, models.EntityTypeFolder, models.IndexParentID, parentID))
}

// DeleteFolder deletes the folder and moves its notes and subfolders to
// the folder's parent.
func (s *service) DeleteFolder(ctx context.Context, id string) error {
	folder, err := get[models.Folder](ctx, s.entities, models.EntityTypeFolder, id)
	if err != nil {
		return err
	}

	notes, err := s.ListNotesInFolder(ctx, id)
	if err != nil {
		return err
	}
	for _, n := range notes {
		n.FolderID = folder.ParentID
		if err := s.save(ctx, models.EntityTypeNote, n.ID, n, index(models.IndexFolderID, n.FolderID)); err != nil {
			return err
		}
	}

	subfolders, err := s.ListSubfolders(ctx, id)
	if err != nil {
		return err
	}
	for _, f := range subfolders {
		f.ParentID = folder.ParentID
		if err := s.save(ctx, models.EntityTypeFolder, f.ID, f, index(models.IndexParentID, f.ParentID)); err != nil {
			return err
		}
	}

	return s.remove(ctx, models.EntityTypeFolder, id)
}

// AttachFile records a file reference on an existing note.
func (s *service) AttachFile(ctx context.Context, file *models.FileRef) error {
	if file.FileName == "" {
		return fmt.Errorf("file name is required")
	}
	if file.FileSize < 0 || file.TotalPages < 0 {
		return fmt.Errorf("file size and page count must not be negative")
	}
	if err := s.exists(ctx, models.EntityTypeNote, file.NoteID); err != nil {
		return fmt.Errorf("note %s: %w", file.NoteID, err)
	}
	file.ID = ensureID(file.ID)
	return s.save(ctx, models.EntityTypeFile, file.ID, file, index(models.IndexNoteID, file.NoteID))
}

// ListFiles returns files attached to the note.
func (s *service) ListFiles(ctx context.Context, noteID string) ([]*models.FileRef, error) {
	return list[models.FileRef](s.entities.ListByIndex(ctx, models.EntityTypeFile, models.IndexNoteID, noteID))
}

// DeleteFile removes a file reference.
func (s *service) DeleteFile(ctx context.Context, id string) error {
	if err := s.exists(ctx, models.EntityTypeFile, id); err != nil {
		return err
	}
	return s.remove(ctx, models.EntityTypeFile, id)
}

// SaveContentPage writes the blocks of one page. The entity id is derived
// from note and page so every device addresses the same record.
func (s *service) SaveContentPage(ctx context.Context, page *models.ContentPage) error {
	if page.PageID == "" {
		return fmt.Errorf("page id is required")
	}
	if err := s.exists(ctx, models.EntityTypeNote, page.NoteID); err != nil {
		return fmt.Errorf("note %s: %w", page.NoteID, err)
	}
	for _, b := range page.Blocks {
		if b.Type != "text" && b.Type != "checklist" {
			return fmt.Errorf("unknown block type: %q", b.Type)
		}
	}
	slices.SortStableFunc(page.Blocks, func(a, b models.ContentBlock) int { return a.Order - b.Order })

	page.ID = contentPageID(page.NoteID, page.PageID)
	return s.save(ctx, models.EntityTypeContentPage, page.ID, page, index(models.IndexNoteID, page.NoteID))
}

// GetContentPage returns the content of one page or ErrNotFound.
func (s *service) GetContentPage(ctx context.Context, noteID, pageID string) (*models.ContentPage, error) {
	return get[models.ContentPage](ctx, s.entities, models.EntityTypeContentPage, contentPageID(noteID, pageID))
}

// ListContentPages returns every written page of the note.
func (s *service) ListContentPages(ctx context.Context, noteID string) ([]*models.ContentPage, error) {
	return list[models.ContentPage](s.entities.ListByIndex(ctx, models.EntityTypeContentPage, models.IndexNoteID, noteID))
}

// SaveRecording records an audio recording on an existing note.
func (s *service) SaveRecording(ctx context.Context, rec *models.Recording) error {
	if rec.DurationMs < 0 {
		return fmt.Errorf("recording duration must not be negative")
	}
	if err := s.exists(ctx, models.EntityTypeNote, rec.NoteID); err != nil {
		return fmt.Errorf("note %s: %w", rec.NoteID, err)
	}
	rec.ID = ensureID(rec.ID)
	return s.save(ctx, models.EntityTypeRecording, rec.ID, rec, index(models.IndexNoteID, rec.NoteID))
}

// ListRecordings returns recordings attached to the note.
func (s *service) ListRecordings(ctx context.Context, noteID string) ([]*models.Recording, error) {
	return list[models.Recording](s.entities.ListByIndex(ctx, models.EntityTypeRecording, models.IndexNoteID, noteID))
}

func (s *service) save(ctx context.Context, t models.EntityType, id string, v any, indexes map[string]string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", t, err)
	}

	op := models.OperationCreate
	existing, err := s.entities.Get(ctx, t, id)
	if err != nil {
		return fmt.Errorf("failed to read %s %s: %w", t, id, err)
	}
	if existing != nil {
		op = models.OperationUpdate
	}

	entity := &models.Entity{ID: id, Type: t, Data: data, Indexes: indexes}
	if _, err := s.mutator.EnqueueMutation(ctx, op, entity); err != nil {
		return fmt.Errorf("failed to save %s %s: %w", t, id, err)
	}
	return nil
}

func (s *service) remove(ctx context.Context, t models.EntityType, id string) error {
	if _, err := s.mutator.EnqueueMutation(ctx, models.OperationDelete, &models.Entity{ID: id, Type: t}); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", t, id, err)
	}
	return nil
}

func (s *service) exists(ctx context.Context, t models.EntityType, id string) error {
	if id == "" {
		return fmt.Errorf("%s id is required", t)
	}
	e, err := s.entities.Get(ctx, t, id)
	if err != nil {
		return fmt.Errorf("failed to read %s %s: %w", t, id, err)
	}
	if e == nil {
		return fmt.Errorf("%s %s: %w", t, id, ErrNotFound)
	}
	return nil
}

func get[T any](ctx context.Context, entities storage.EntityStorage, t models.EntityType, id string) (*T, error) {
	e, err := entities.Get(ctx, t, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s %s: %w", t, id, err)
	}
	if e == nil {
		return nil, fmt.Errorf("%s %s: %w", t, id, ErrNotFound)
	}
	return decode[T](e)
}

func list[T any](entities []*models.Entity, err error) ([]*T, error) {
	if err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	out := make([]*T, 0, len(entities))
	for _, e := range entities {
		v, err := decode[T](e)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func decode[T any](e *models.Entity) (*T, error) {
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s %s: %w", e.Type, e.ID, err)
	}
	return &v, nil
}

func index(field, value string) map[string]string {
	if value == "" {
		return nil
	}
	return map[string]string{field: value}
}

func ensureID(id string) string {
	if id == "" {
		return uuid.New().String()
	}
	return id
}

func contentPageID(noteID, pageID string) string {
	return noteID + ":" + pageID
}
