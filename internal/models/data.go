package models

// NoteType distinguishes personal notes from shared lecture notes.
type NoteType string

const (
	NoteTypeStudent  NoteType = "student"
	NoteTypeEducator NoteType = "educator"
)

// Note представляет заметку пользователя.
type Note struct {
	ID       string   `json:"id"`                 // ID уникальный идентификатор заметки (UUID)
	Title    string   `json:"title"`              // Title заголовок заметки
	FolderID string   `json:"folderId,omitempty"` // FolderID папка, в которой лежит заметка
	Type     NoteType `json:"type"`               // Type student или educator
	Tags     []string `json:"tags,omitempty"`     // Tags теги для поиска и группировки
}

// Folder представляет папку для группировки заметок.
type Folder struct {
	ID       string `json:"id"`                 // ID уникальный идентификатор папки (UUID)
	Name     string `json:"name"`               // Name название папки
	ParentID string `json:"parentId,omitempty"` // ParentID родительская папка, пусто для корня
}

// FileRef ссылается на файл (обычно PDF), прикреплённый к заметке.
// Содержимое файла хранится во внешнем blob-хранилище.
type FileRef struct {
	ID         string `json:"id"`
	NoteID     string `json:"noteId"`
	FileName   string `json:"fileName"`
	FileType   string `json:"fileType"`
	BackendURL string `json:"backendUrl,omitempty"` // BackendURL постоянный URL после загрузки на сервер
	FileSize   int64  `json:"fileSize"`
	TotalPages int    `json:"totalPages,omitempty"`
}

// ContentBlock is one text or checklist block written on a page.
type ContentBlock struct {
	ID        string `json:"id"`
	Type      string `json:"type"` // Type "text" или "checklist"
	Content   string `json:"content"`
	Order     int    `json:"order"`
	CreatedAt int64  `json:"createdAt"`
	Checked   bool   `json:"checked,omitempty"`
}

// ContentPage holds the blocks written on one page of a note file.
type ContentPage struct {
	ID     string         `json:"id"`
	NoteID string         `json:"noteId"`
	PageID string         `json:"pageId"`
	Blocks []ContentBlock `json:"blocks"`
}

// Recording references an audio recording attached to a note.
type Recording struct {
	ID         string `json:"id"`
	NoteID     string `json:"noteId"`
	Title      string `json:"title"`
	DurationMs int64  `json:"durationMs"`
}

// Index field names used by the local store.
const (
	IndexFolderID = "folderId"
	IndexNoteID   = "noteId"
	IndexParentID = "parentId"
)
