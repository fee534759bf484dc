package menu

import "errors"

var (
	// ErrUnknownCommand indicates a command ID or name with no binding.
	ErrUnknownCommand = errors.New("menu: unknown command")

	// ErrCommandDisabled indicates the command's enablement predicate is false.
	ErrCommandDisabled = errors.New("menu: command disabled")

	// ErrBusy indicates another command (and its modal dialog) is still running.
	ErrBusy = errors.New("menu: another command is in progress")
)
