package menu

import "context"

type CommandID string

const (
	CmdNew       CommandID = "file.new"
	CmdOpen      CommandID = "file.open"
	CmdSaveAs    CommandID = "file.save_as"
	CmdExit      CommandID = "file.exit"
	CmdAddBody   CommandID = "edit.add_body"
	CmdEditBody  CommandID = "edit.edit_body"
	CmdRemove    CommandID = "edit.remove_body"
	CmdSimToggle CommandID = "sim.toggle"
)

const (
	LabelStart = "Start Simulation"
	// LabelStop keeps the spelling users have always seen on this item.
	LabelStop = "Stopp Simulation"
)

// XMLFilter is the filter both file commands prompt with.
var XMLFilter = Filter{Description: "XML files", Extension: "xml"}

// Handler runs one command to completion. Persistence failures are handled
// inside; a returned error is one the handler could not deal with.
type Handler func(ctx context.Context, c *Controller) error

// Command binds an ID to its label, shortcut, enablement and handler.
type Command struct {
	ID      CommandID
	Label   string
	Key     string
	Aliases []string
	Enabled func(c *Controller) bool
	Handler Handler
}

func alwaysEnabled(*Controller) bool { return true }

func hasBodies(c *Controller) bool { return c.doc.Len() > 0 }

func commandTable() []Command {
	return []Command{
		{ID: CmdNew, Label: "New system", Key: "n", Aliases: []string{"new", "clear"}, Enabled: alwaysEnabled, Handler: newSystem},
		{ID: CmdOpen, Label: "Open", Key: "o", Aliases: []string{"open", "load"}, Enabled: alwaysEnabled, Handler: openSystem},
		{ID: CmdSaveAs, Label: "Save as", Key: "s", Aliases: []string{"save", "saveas"}, Enabled: alwaysEnabled, Handler: saveSystemAs},
		{ID: CmdExit, Label: "Exit", Key: "q", Aliases: []string{"exit", "quit"}, Enabled: alwaysEnabled, Handler: exit},
		{ID: CmdAddBody, Label: "Add body", Key: "a", Aliases: []string{"add"}, Enabled: alwaysEnabled, Handler: addBody},
		{ID: CmdEditBody, Label: "Edit body", Key: "e", Aliases: []string{"edit"}, Enabled: hasBodies, Handler: editBody},
		{ID: CmdRemove, Label: "Remove body", Key: "x", Aliases: []string{"remove", "delete"}, Enabled: hasBodies, Handler: removeBody},
		{ID: CmdSimToggle, Label: LabelStart, Key: "space", Aliases: []string{"toggle", "start", "stop", "run"}, Enabled: alwaysEnabled, Handler: toggleSimulation},
	}
}

// Item is one entry of a menu: a command reference or a separator.
type Item struct {
	Command   CommandID
	Separator bool
}

type Menu struct {
	Title string
	Items []Item
}

func menuLayout() []Menu {
	return []Menu{
		{Title: "File", Items: []Item{
			{Command: CmdNew},
			{Command: CmdOpen},
			{Command: CmdSaveAs},
			{Separator: true},
			{Command: CmdExit},
		}},
		{Title: "Edit", Items: []Item{
			{Command: CmdAddBody},
			{Command: CmdEditBody},
			{Command: CmdRemove},
		}},
		{Title: "Simulation", Items: []Item{
			{Command: CmdSimToggle},
		}},
	}
}
