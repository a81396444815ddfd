package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/shopfront/internal/api/grpc/context"
	"github.com/dtroode/shopfront/internal/api/grpc/router"
	grpcServer "github.com/dtroode/shopfront/internal/api/grpc/server"
	"github.com/dtroode/shopfront/internal/model"
	"github.com/dtroode/shopfront/internal/server"
)

const shutdownTimeout = 10 * time.Second

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the shopfront gRPC API",
		Long: `Starts the shopfront.v1.Shopfront gRPC service on GRPC_PORT.

The catalog is fetched in the background on start. Set GRPC_ENABLE_HTTPS
with GRPC_CERT_FILE_NAME and GRPC_PRIVATE_KEY_FILE_NAME to serve over TLS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serve(cmd.Context())
		},
	}
}

func (c *cli) serve(ctx context.Context) error {
	logger := c.logger
	a := c.app

	s := router.New(a.session, a.catalog, a.guard, grpcctx.NewManager(), logger).Register()
	reflection.Register(s)
	grpcSrv := grpcServer.NewGRPCServer(s, fmt.Sprintf(":%s", c.cfg.GRPC.Port), logger)

	var sl model.SecurityLayer
	if c.cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(c.cfg.GRPC.CertFileName, c.cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup

	loadCtx, cancelLoad := context.WithCancel(ctx)
	defer cancelLoad()
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.catalog.Load(loadCtx); err != nil {
			logger.Warn("catalog unavailable, serving empty catalog", "error", err)
		}
	}()

	serveErr := make(chan error, 1)
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		serveErr <- s.Start(sl)
	}(grpcSrv)

	logAppVersion(c.logOut)

	var err error
	select {
	case <-ctx.Done():
		logger.Info("received interruption signal, shutting down")
	case err = <-serveErr:
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}

	cancelLoad()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if stopErr := grpcSrv.Stop(shutdownCtx); stopErr != nil {
		logger.Error("error during server shutdown", "error", stopErr, "address", grpcSrv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")

	return err
}
