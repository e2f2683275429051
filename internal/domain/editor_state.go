package domain

// Mode is the editor surface mode.
type Mode string

const (
	ModeEdit    Mode = "edit"
	ModePreview Mode = "preview"
)

// Selection names what the properties panel is editing: nothing (""), the
// hero section (SelectionHero) or a block key. It is not checked against the
// document; a stale key simply resolves to no block.
type Selection string

const (
	SelectionNone Selection = ""
	SelectionHero Selection = "hero"
)

// EditorState is the complete state of an editing session, returned to the
// frontend to render the canvas and the properties panel.
type EditorState struct {
	Document    Document  `json:"courseData"`
	SelectedKey Selection `json:"selectedComponentId"`
	Mode        Mode      `json:"mode"`
	IsDragging  bool      `json:"isDragging"`
}

// NewEditorState starts a session in edit mode with nothing selected.
func NewEditorState(doc Document) EditorState {
	return EditorState{Document: doc, Mode: ModeEdit}
}

// SelectedBlock resolves the selection against the current document.
func (s EditorState) SelectedBlock() (Block, bool) {
	if s.SelectedKey == SelectionNone || s.SelectedKey == SelectionHero {
		return nil, false
	}
	return s.Document.FindBlock(string(s.SelectedKey))
}

// HeroSelected reports whether the hero section is being edited.
func (s EditorState) HeroSelected() bool {
	return s.SelectedKey == SelectionHero
}
