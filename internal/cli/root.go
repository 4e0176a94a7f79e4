// Package cli is the planctl command tree: log in, list approved lands and
// build a crop plan from flags.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"alphafarm/pkg/apiclient"
)

// App is the state shared by every subcommand.
type App struct {
	Server    string
	Token     string
	TokenFile string
	Log       *zap.Logger
	Out       io.Writer
	In        io.Reader
}

func (a *App) client() *apiclient.Client {
	return apiclient.New(a.Server, a.Token, nil)
}

// DefaultTokenFile is ~/.alphafarm/token.
func DefaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".alphafarm-token"
	}
	return filepath.Join(home, ".alphafarm", "token")
}

func (a *App) loadToken() {
	if a.Token != "" || a.TokenFile == "" {
		return
	}
	if b, err := os.ReadFile(a.TokenFile); err == nil {
		a.Token = strings.TrimSpace(string(b))
	}
}

func (a *App) saveToken(tok string) error {
	if a.TokenFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(a.TokenFile), 0o700); err != nil {
		return err
	}
	return os.WriteFile(a.TokenFile, []byte(tok+"\n"), 0o600)
}

var errNotLoggedIn = errors.New("not logged in: run planctl login")

func (a *App) requireToken() error {
	a.loadToken()
	if a.Token == "" {
		return errNotLoggedIn
	}
	return nil
}

func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planctl",
		Short:         "Crop planning from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.Server, "server", envOr("ALPHAFARM_URL", "http://localhost:8080"), "API base URL")
	root.PersistentFlags().StringVar(&app.Token, "token", os.Getenv("ALPHAFARM_TOKEN"), "API token (defaults to the saved login)")
	root.PersistentFlags().StringVar(&app.TokenFile, "token-file", DefaultTokenFile(), "where login stores the token")

	root.AddCommand(
		newLoginCmd(app),
		newLandsCmd(app),
		newPlanCmd(app),
	)
	return root
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Execute runs the command tree against os.Args.
func Execute(ctx context.Context, app *App) error {
	return NewRootCmd(app).ExecuteContext(ctx)
}
