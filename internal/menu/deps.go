package menu

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/san-kum/gravsandbox/internal/body"
)

// Host is the window the menu belongs to. It owns the simulation run-state;
// the controller only reads it and asks for toggles.
type Host interface {
	ResetView()
	Update()
	ToggleSimulation()
	IsSimulationRunning() bool
	Close()
	SelectedBody() *body.Body
}

// Document is the part of the session document the handlers mutate.
type Document interface {
	Clear()
	Add(b body.Body) (body.Body, error)
	Update(b body.Body) error
	Remove(id string) error
	Bodies() []body.Body
	Len() int
	Select(id string) error
}

// Persister loads the document from, and saves it to, a file path.
type Persister interface {
	Load(path string) error
	Save(path string) error
}

// Filter restricts a file dialog to one extension.
type Filter struct {
	Description string
	Extension   string
}

// FileDialog is the single modal file prompt. It blocks until the user
// confirms a path (ok) or cancels.
type FileDialog interface {
	ShowDialog(ctx context.Context, title string, filter Filter) (path string, ok bool)
}

// BodyDialogs are the modal body editors. Each blocks and returns the
// confirmed data, or ok=false on cancel. Input validation is theirs.
type BodyDialogs interface {
	AddBody(ctx context.Context, host Host) (body.Body, bool)
	EditBody(ctx context.Context, host Host, selected *body.Body) (body.Body, bool)
	RemoveBody(ctx context.Context, host Host, bodies []body.Body) (id string, ok bool)
}

// Notifier shows a blocking error message.
type Notifier interface {
	ShowError(ctx context.Context, title, message string)
}

type Deps struct {
	Document  Document
	Persister Persister
	Host      Host
	Files     FileDialog
	Bodies    BodyDialogs
	Notifier  Notifier
	Logger    zerolog.Logger
}
