package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"hridhayam-client/internal/api"
	"hridhayam-client/internal/cart"
	"hridhayam-client/internal/config"
	"hridhayam-client/internal/contact"
	"hridhayam-client/internal/logger"
	"hridhayam-client/internal/metrics"
	"hridhayam-client/internal/notify"
	"hridhayam-client/internal/order"
	"hridhayam-client/internal/payment"
	"hridhayam-client/internal/product"
	"hridhayam-client/internal/session"
	"hridhayam-client/internal/user"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var errUsage = errors.New("usage")

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := run(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	logger.Sync()
	os.Exit(code)
}

// app holds everything a subcommand needs for one invocation.
type app struct {
	cfg      *config.Config
	client   *api.Client
	store    *session.Store
	sess     *session.Session
	notifier notify.Notifier
	registry *prometheus.Registry
	out      io.Writer
	errOut   io.Writer

	products product.Service
	catalog  product.AdminService
	carts    cart.Service
	users    user.Service
	orders   order.Service
	contact  contact.Service
	gateway  payment.Gateway
	widget   payment.Widget
	checkout *metrics.Checkout
}

func newApp(cfg *config.Config, out, errOut io.Writer) (*app, error) {
	reg := prometheus.NewRegistry()

	client, err := api.NewClient(api.Options{
		BaseURL:   cfg.APIBaseURL,
		Timeout:   cfg.HTTPTimeout,
		RateLimit: cfg.APIRateLimit,
		RateBurst: cfg.APIRateBurst,
		Metrics:   metrics.NewAPI(reg),
	})
	if err != nil {
		return nil, err
	}

	store := session.NewStore(cfg.SessionFile)
	sess, err := store.Load()
	if err != nil {
		return nil, err
	}
	if sess != nil {
		client.SetToken(sess.Token)
	}

	return &app{
		cfg:      cfg,
		client:   client,
		store:    store,
		sess:     sess,
		notifier: notify.NewWriter(errOut),
		registry: reg,
		out:      out,
		errOut:   errOut,
		products: product.NewService(client),
		catalog:  product.NewAdminService(client),
		carts:    cart.NewService(client),
		users:    user.NewService(client, client, store),
		orders:   order.NewService(client),
		contact:  contact.NewService(client),
		gateway:  payment.NewBackendGateway(client),
		widget: payment.NewLoopbackWidget(cfg.CallbackAddr, func(url string) {
			fmt.Fprintf(errOut, "Open this page in your browser to pay: %s\n", url)
		}),
		checkout: metrics.NewCheckout(reg),
	}, nil
}

// run dispatches one subcommand and returns the process exit code.
func run(ctx context.Context, cfg *config.Config, args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("storefront", flag.ContinueOnError)
	fs.SetOutput(errOut)
	metricsFile := fs.String("metrics-file", "", "write client metrics to this file on exit")
	fs.Usage = func() { usage(errOut) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		usage(errOut)
		return 2
	}

	name, rest := fs.Arg(0), fs.Args()[1:]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(errOut, "unknown command %q\n", name)
		usage(errOut)
		return 2
	}

	a, err := newApp(cfg, out, errOut)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return 1
	}

	log := logger.FromCtx(ctx).With(zap.String("command", name))
	err = cmd.run(ctx, a, rest)

	if *metricsFile != "" {
		if werr := prometheus.WriteToTextfile(*metricsFile, a.registry); werr != nil {
			log.Warn("failed to write metrics", zap.Error(werr))
		}
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		fmt.Fprintf(errOut, "usage: storefront %s %s\n", name, cmd.usage)
		return 2
	case errors.Is(err, session.ErrNotLoggedIn):
		fmt.Fprintln(errOut, "please log in first: storefront login -email <email> -password <password>")
		return 1
	default:
		log.Debug("command failed", zap.Error(err))
		fmt.Fprintln(errOut, err)
		return 1
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: storefront [-metrics-file path] <command> [flags]")
	fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-22s %s\n", name, commands[name].usage)
	}
}
