package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dtroode/shopfront/internal/config"
	"github.com/dtroode/shopfront/internal/logger"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// cli carries the state shared by the commands of one invocation.
type cli struct {
	out    io.Writer
	logOut io.Writer
	cfg    *config.Config
	logger *logger.Logger
	app    *app
}

func newRootCmd(out, logOut io.Writer) *cobra.Command {
	c := &cli{out: out, logOut: logOut}

	root := &cobra.Command{
		Use:   "shopfront",
		Short: "Product catalog browser with local accounts",
		Long: `shopfront browses a remote product catalog behind a local sign-in.

Accounts and the logged-in session are kept in the configured storage
backend (STORAGE_BACKEND). Run "shopfront serve" to expose the same
operations over gRPC.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.app.Close()
		},
	}
	root.SetOut(out)
	root.SetErr(logOut)

	root.AddCommand(
		c.serveCmd(),
		c.signupCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.profileCmd(),
		c.productsCmd(),
		c.versionCmd(),
	)

	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = logger.NewWithOutput(c.logOut, cfg.LogLevel)

	c.app, err = newApp(cmd.Context(), cfg, c.logger)
	return err
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// no storage needed
		PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
		PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			logAppVersion(c.out)
			return nil
		},
	}
}

func logAppVersion(w io.Writer) {
	tmpl := `Build version: %s
Build date: %s
Build commit: %s
`
	fmt.Fprintf(w, tmpl, buildVersion, buildDate, buildCommit)
}
