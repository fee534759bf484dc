package menu

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/san-kum/gravsandbox/internal/persist"
)

func newSystem(ctx context.Context, c *Controller) error {
	c.doc.Clear()
	c.host.ResetView()
	c.host.Update()
	c.log.Info().Msg("new system")
	return nil
}

func openSystem(ctx context.Context, c *Controller) error {
	c.stopIfRunning()

	if path, ok := c.files.ShowDialog(ctx, "Open", XMLFilter); ok {
		if err := c.persist.Load(path); err != nil {
			c.reportPersistError(ctx, "Error loading system",
				"Could not load system from file \""+filepath.Base(path)+"\"!", err)
		} else {
			c.log.Info().Str("path", path).Msg("system loaded")
			c.host.ResetView()
		}
	}
	c.host.Update()
	return nil
}

// saveSystemAs prompts through the same dialog as openSystem.
func saveSystemAs(ctx context.Context, c *Controller) error {
	c.stopIfRunning()

	if path, ok := c.files.ShowDialog(ctx, "Save as", XMLFilter); ok {
		if err := c.persist.Save(path); err != nil {
			c.reportPersistError(ctx, "Error saving system",
				"Could not save system to file \""+filepath.Base(path)+"\"!", err)
		} else {
			c.log.Info().Str("path", path).Msg("system saved")
			c.host.ResetView()
		}
	}
	c.host.Update()
	return nil
}

func exit(ctx context.Context, c *Controller) error {
	c.host.Close()
	return nil
}

func addBody(ctx context.Context, c *Controller) error {
	b, ok := c.dialogs.AddBody(ctx, c.host)
	if !ok {
		return nil
	}
	added, err := c.doc.Add(b)
	if err != nil {
		return err
	}
	if err := c.doc.Select(added.ID); err != nil {
		return err
	}
	c.host.Update()
	return nil
}

func editBody(ctx context.Context, c *Controller) error {
	b, ok := c.dialogs.EditBody(ctx, c.host, c.host.SelectedBody())
	if !ok {
		return nil
	}
	if err := c.doc.Update(b); err != nil {
		return err
	}
	c.host.Update()
	return nil
}

func removeBody(ctx context.Context, c *Controller) error {
	id, ok := c.dialogs.RemoveBody(ctx, c.host, c.doc.Bodies())
	if !ok {
		return nil
	}
	if err := c.doc.Remove(id); err != nil {
		return err
	}
	c.host.Update()
	return nil
}

func toggleSimulation(ctx context.Context, c *Controller) error {
	c.syncSimulationLabel()
	c.host.ToggleSimulation()
	return nil
}

// stopIfRunning is the file-command pre-condition: load and save never run
// against a live simulation.
func (c *Controller) stopIfRunning() {
	if !c.host.IsSimulationRunning() {
		return
	}
	c.host.ToggleSimulation()
	c.RefreshLabels()
	c.log.Info().Msg("simulation stopped for file operation")
}

func (c *Controller) reportPersistError(ctx context.Context, title, summary string, err error) {
	c.log.Error().Err(err).Msg(title)
	c.notifier.ShowError(ctx, title, summary+"\nError message: "+causeMessage(err))
}

// causeMessage drops the op/path prefix of a persist.Error; the dialog
// already names the file.
func causeMessage(err error) string {
	var perr *persist.Error
	if errors.As(err, &perr) && perr.Err != nil {
		return perr.Err.Error()
	}
	return err.Error()
}
