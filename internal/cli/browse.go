package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Mythicsoul/spicetify-marketplace/internal/logger"
	"github.com/Mythicsoul/spicetify-marketplace/internal/ui"
)

func (c *CLI) runBrowser(ctx context.Context) error {
	svc, err := c.loadServices(ctx)
	if err != nil {
		return err
	}
	defer logger.Close()

	mailbox := ui.NewMailbox()
	coord := svc.coordinator(ctx, mailbox)
	defer coord.Close()

	model := ui.NewModel(ctx, ui.Options{
		Loader:     coord,
		Mailbox:    mailbox,
		Repository: svc.repo,
		Texts:      svc.raw,
		Quantity:   svc.cfg.LoadQuantity,
	})

	logger.Log("Starting marketplace browser")
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
