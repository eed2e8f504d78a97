package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/session"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

type options struct {
	addr        string
	merchantID  string
	lang        string
	primaryLang string
	all         bool
	timeout     time.Duration
	verbose     bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Browse and arrange a merchant catalog",
		SilenceUsage:  true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.addr, "addr", "localhost:8083", "catalog service address")
	flags.StringVar(&opts.merchantID, "merchant", "", "merchant id (required)")
	flags.StringVar(&opts.lang, "lang", "", "display language, defaults to the primary language")
	flags.StringVar(&opts.primaryLang, "primary-lang", "pt", "merchant primary language")
	flags.BoolVar(&opts.all, "all", true, "include unavailable products")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "per command timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log session activity to stderr")
	_ = root.MarkPersistentFlagRequired("merchant")

	root.AddCommand(
		newTreeCmd(opts),
		newProductsCmd(opts),
		newGateCmd(opts),
		newReorderCategoriesCmd(opts),
		newReorderProductsCmd(opts),
		newToggleCmd(opts),
		newMoveCmd(opts),
	)
	return root
}

// withSession dials the service, loads the tree and hands the session to fn.
func withSession(cmd *cobra.Command, opts *options, fn func(ctx context.Context, s *session.Session) error) error {
	if opts.merchantID == "" {
		return errors.New("--merchant is required")
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	defer cancel()

	conn, err := grpc.NewClient(opts.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial %s: %w", opts.addr, err)
	}
	defer conn.Close()

	log := logger.NewNop()
	if opts.verbose {
		log = logger.NewZapLogger(&logger.ZapLoggerConfig{
			IsDevelopment:     true,
			Encoding:          "console",
			Level:             "debug",
			DisableStacktrace: true,
		})
	}

	s := session.New(session.NewGRPCBackend(conn, opts.merchantID, opts.lang), log, session.Options{
		PrimaryLang:        opts.primaryLang,
		IncludeUnavailable: opts.all,
	})
	if err := s.Refresh(ctx); err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	return fn(ctx, s)
}
