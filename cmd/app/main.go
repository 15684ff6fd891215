package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"orderdesk/cmd"
	httpin "orderdesk/internal/adapters/in/http"
	"orderdesk/internal/adapters/out/postgres/migrations"
	"orderdesk/internal/adapters/out/rabbitmq"
	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/domain/model/actor"
	"orderdesk/internal/core/ports"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	app := &cli.App{
		Name:  "orderdesk",
		Usage: "order desk for a small kitchen: customer intake, chef and courier panels",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "env-file", Value: ".env", Usage: "optional dotenv file"},
		},
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
			actorCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrap loads configuration and the logger every command needs.
func bootstrap(c *cli.Context) (cmd.Config, *logrus.Logger, error) {
	cfg, err := cmd.LoadConfig(c.String("env-file"))
	if err != nil {
		return cmd.Config{}, nil, err
	}
	logger, err := cmd.NewLogger(cfg)
	if err != nil {
		return cmd.Config{}, nil, err
	}
	return cfg, logger, nil
}

// compose opens both database handles and builds the composition root.
// The returned closer releases everything compose opened.
func compose(cfg cmd.Config, logger *logrus.Logger, publisher ports.OrderEventPublisher) (cmd.CompositionRoot, func(), error) {
	gormDB, err := cmd.OpenGorm(cfg, logger)
	if err != nil {
		return cmd.CompositionRoot{}, nil, err
	}
	closeGorm := func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	readDB, err := cmd.OpenSqlx(cfg)
	if err != nil {
		closeGorm()
		return cmd.CompositionRoot{}, nil, err
	}

	closer := func() {
		closeGorm()
		_ = readDB.Close()
	}
	return cmd.NewCompositionRoot(cfg, gormDB, readDB, publisher, logger), closer, nil
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API and maintenance jobs",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "migrate", Usage: "apply pending migrations before serving"},
		},
		Action: func(c *cli.Context) error {
			cfg, logger, err := bootstrap(c)
			if err != nil {
				return err
			}

			if c.Bool("migrate") {
				if err = migrations.Up(cfg.DSN()); err != nil {
					return pkgerrors.Wrap(err, "apply migrations")
				}
				logger.Info("Migrations applied")
			}

			publisher, closePublisher, err := newPublisher(cfg, logger)
			if err != nil {
				return err
			}
			defer closePublisher()

			root, closeDB, err := compose(cfg, logger, publisher)
			if err != nil {
				return err
			}
			defer closeDB()

			return serve(c.Context, cfg, root, logger)
		},
	}
}

func newPublisher(cfg cmd.Config, logger logrus.FieldLogger) (ports.OrderEventPublisher, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP_URL is empty, order events are disabled")
		return rabbitmq.NopPublisher{}, func() {}, nil
	}

	conn, err := rabbitmq.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(err, "connect to broker")
	}
	publisher := rabbitmq.NewOrderEventPublisher(conn, cfg.AMQPExchange)
	return publisher, func() {
		_ = publisher.Close()
		_ = conn.Close()
	}, nil
}

func serve(parent context.Context, cfg cmd.Config, root cmd.CompositionRoot, logger *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := httpin.NewRouter(ctx, root.RouterConfig())
	if err != nil {
		return pkgerrors.Wrap(err, "build router")
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)
		logger.WithField("addr", addr).Info("HTTP server started")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return pkgerrors.Wrap(err, "http server")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Shutting down")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func migrateCommand() *cli.Command {
	run := func(name string, step func(dsn string) error) *cli.Command {
		return &cli.Command{
			Name:  name,
			Usage: "migrate the schema " + name,
			Action: func(c *cli.Context) error {
				cfg, logger, err := bootstrap(c)
				if err != nil {
					return err
				}
				if err = step(cfg.DSN()); err != nil {
					return pkgerrors.Wrapf(err, "migrate %s", name)
				}
				version, dirty, err := migrations.Version(cfg.DSN())
				if err != nil {
					return pkgerrors.Wrap(err, "read schema version")
				}
				logger.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Schema migrated")
				return nil
			},
		}
	}

	return &cli.Command{
		Name:        "migrate",
		Usage:       "apply or revert schema migrations",
		Subcommands: []*cli.Command{run("up", migrations.Up), run("down", migrations.Down)},
	}
}

func actorCommand() *cli.Command {
	roleFlag := &cli.StringFlag{Name: "role", Required: true, Usage: "chef or courier"}
	codeFlag := &cli.StringFlag{Name: "code", Required: true, Usage: "access code"}

	return &cli.Command{
		Name:  "actor",
		Usage: "manage chefs and couriers",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "register a chef or courier",
				Flags: []cli.Flag{
					roleFlag,
					codeFlag,
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "phone", Usage: "contact phone, couriers only"},
				},
				Action: withRoot(func(c *cli.Context, root cmd.CompositionRoot) error {
					role, err := actor.ParseRole(c.String("role"))
					if err != nil {
						return err
					}
					command, err := commands.NewAddActorCommand(role, c.String("code"), c.String("name"), c.String("phone"))
					if err != nil {
						return err
					}
					id, err := root.CreateAddActorCommandHandler().Handle(c.Context, command)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.App.Writer, "added %s %s (%s)\n", role, command.Code(), id)
					return nil
				}),
			},
			setActiveCommand("activate", true, roleFlag, codeFlag),
			setActiveCommand("deactivate", false, roleFlag, codeFlag),
			{
				Name:  "list",
				Usage: "list actors with masked codes",
				Flags: []cli.Flag{&cli.StringFlag{Name: "role", Usage: "chef or courier, empty for all"}},
				Action: withRoot(func(c *cli.Context, root cmd.CompositionRoot) error {
					query, err := queries.NewListActorsQuery(c.String("role"))
					if err != nil {
						return err
					}
					actors, err := root.CreateListActorsQueryHandler().Handle(c.Context, query)
					if err != nil {
						return err
					}

					w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
					fmt.Fprintln(w, "ROLE\tCODE\tNAME\tPHONE\tACTIVE\tCREATED")
					for _, a := range actors {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n",
							a.Role, a.MaskedCode, a.Name, a.Phone, a.IsActive, a.CreatedAt.Format(time.DateTime))
					}
					return w.Flush()
				}),
			},
		},
	}
}

func setActiveCommand(name string, active bool, flags ...cli.Flag) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: name + " a chef or courier; deactivation takes effect on the next request",
		Flags: flags,
		Action: withRoot(func(c *cli.Context, root cmd.CompositionRoot) error {
			role, err := actor.ParseRole(c.String("role"))
			if err != nil {
				return err
			}
			command, err := commands.NewSetActorActiveCommand(role, c.String("code"), active)
			if err != nil {
				return err
			}
			if err = root.CreateSetActorActiveCommandHandler().Handle(c.Context, command); err != nil {
				return err
			}
			fmt.Fprintf(c.App.Writer, "%sd %s %s\n", name, role, command.Code())
			return nil
		}),
	}
}

// withRoot runs action against a composition root without an event publisher.
func withRoot(action func(c *cli.Context, root cmd.CompositionRoot) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, logger, err := bootstrap(c)
		if err != nil {
			return err
		}
		root, closeDB, err := compose(cfg, logger, nil)
		if err != nil {
			return err
		}
		defer closeDB()
		return action(c, root)
	}
}
