package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/shareling/internal/client/api"
	"github.com/dmitrijs2005/shareling/internal/client/config"
	"github.com/dmitrijs2005/shareling/internal/client/resolve"
	"github.com/dmitrijs2005/shareling/internal/client/selection"
)

// App wires the client core for interactive use.
type App struct {
	config      *config.Config
	api         *api.Client
	coordinator *selection.Coordinator
	resolver    *resolve.Resolver
	userName    string
	reader      *bufio.Reader
	out         io.Writer
}

// NewApp builds an App over the broker configured in c.
func NewApp(c *config.Config) (*App, error) {
	apiClient := api.New(c.BrokerBaseURL)

	a := &App{
		config:      c,
		api:         apiClient,
		coordinator: selection.New(apiClient),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
	a.resolver = resolve.New(apiClient, a.navigate)
	return a, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

// opCtx derives a per-request context; timeout policy is the CLI's to layer
// on top of the core.
func (a *App) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.RequestTimeout)
}
