package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/tracker/cmd/app/commands"
	"github.com/allisson/tracker/internal/app"
	"github.com/allisson/tracker/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "generate-keys",
			Usage: "Generate an RSA key pair for token signing",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "private-key-path",
					Value:   "private.pem",
					Usage:   "Output path for the PEM-encoded private key",
				},
				&cli.StringFlag{
					Name:    "public-key-path",
					Value:   "public.pem",
					Usage:   "Output path for the PEM-encoded public key",
				},
				&cli.IntFlag{
					Name:    "bits",
					Aliases: []string{"b"},
					Value:   2048,
					Usage:   "RSA key size in bits (minimum 2048)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunGenerateKeys(
					commands.DefaultIO().Writer,
					cmd.String("private-key-path"),
					cmd.String("public-key-path"),
					int(cmd.Int("bits")),
				)
			},
		},
		{
			Name:  "unlock-account",
			Usage: "Clear the failed-login lockout for an account",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Email address of the locked account",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				sessionUseCase, err := container.SessionUseCase()
				if err != nil {
					return err
				}

				return commands.RunUnlockAccount(
					ctx,
					sessionUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("email"),
				)
			},
		},
	}
}
