package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"custody/internal/api"
	"custody/internal/app/config"
	"custody/internal/app/logger"
	"custody/internal/app/role"
	"custody/internal/app/service"
	"custody/internal/app/storage"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "termctl",
		Usage: "Operator commands for custody terms",
		Commands: []*cli.Command{
			rerenderCommand(),
			verifyCommand(),
			sweepCommand(),
			userCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		logrus.Fatal(err)
	}
}

type env struct {
	svc *service.Service
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Log); err != nil {
		return nil, err
	}

	repo, err := api.OpenRepository(cfg)
	if err != nil {
		return nil, err
	}
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc, err := api.NewService(cfg, repo, store)
	if err != nil {
		return nil, err
	}
	return &env{svc: svc}, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func rerenderCommand() *cli.Command {
	return &cli.Command{
		Name:  "rerender",
		Usage: "Regenerate the signed document of a term",
		Flags: []cli.Flag{&cli.StringFlag{Name: "term", Usage: "term token", Required: true}},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(ctx)
			if err != nil {
				return err
			}
			ref, err := e.svc.Rerender(ctx, c.String("term"))
			if err != nil {
				return err
			}
			fmt.Println(ref)
			return nil
		},
	}
}

func verifyCommand() *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Recompute the signature hash of a signed term",
		Flags: []cli.Flag{&cli.StringFlag{Name: "term", Usage: "term token", Required: true}},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(ctx)
			if err != nil {
				return err
			}
			v, err := e.svc.Verify(ctx, c.String("term"))
			if err != nil {
				return err
			}
			if err := printJSON(v); err != nil {
				return err
			}
			if !v.Valid {
				return cli.Exit("signature hash mismatch", 2)
			}
			return nil
		},
	}
}

func sweepCommand() *cli.Command {
	return &cli.Command{
		Name:  "sweep",
		Usage: "Render signed terms that have no stored document",
		Flags: []cli.Flag{&cli.IntFlag{Name: "limit", Value: 50}},
		Action: func(ctx context.Context, c *cli.Command) error {
			e, err := setup(ctx)
			if err != nil {
				return err
			}
			n, err := e.svc.Sweep(ctx, int(c.Int("limit")))
			fmt.Printf("rendered %d\n", n)
			return err
		},
	}
}

func userCommand() *cli.Command {
	return &cli.Command{
		Name:  "user",
		Usage: "User accounts",
		Commands: []*cli.Command{
			{
				Name:  "create",
				Usage: "Create a user with a bcrypt password",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "login", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "first-name"},
					&cli.StringFlag{Name: "last-name"},
					&cli.StringFlag{Name: "email"},
					&cli.BoolFlag{Name: "admin"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					e, err := setup(ctx)
					if err != nil {
						return err
					}
					r := role.Employee
					if c.Bool("admin") {
						r = role.Admin
					}
					user, err := e.svc.CreateUser(ctx, service.UserInput{
						Login:     c.String("login"),
						Password:  c.String("password"),
						FirstName: c.String("first-name"),
						LastName:  c.String("last-name"),
						Email:     c.String("email"),
						Role:      r,
					})
					if err != nil {
						return err
					}
					fmt.Printf("created user %d (%s, %s)\n", user.ID, user.Login, user.Role)
					return nil
				},
			},
		},
	}
}
