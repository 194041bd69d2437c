// Package cli реализует административную консоль manage: создание
// пользователей внутреннего раздела и применение миграций.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/nutriede/internal/config"
	"github.com/magabrotheeeer/nutriede/internal/lib/jwt"
	"github.com/magabrotheeeer/nutriede/internal/migrations"
	"github.com/magabrotheeeer/nutriede/internal/services/auth"
	"github.com/magabrotheeeer/nutriede/internal/storage/repository"
)

const (
	roleFlag    = "role"
	connTimeout = 10 * time.Second
)

// NewRootCommand собирает команду manage со всеми подкомандами.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "manage",
		Short:         "Administrative commands for the Nutriêde website",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newCreateUserCommand())
	root.AddCommand(newMigrateCommand())
	return root
}

func newCreateUserCommand() *cobra.Command {
	flags := map[string]cobraflags.Flag{
		roleFlag: &cobraflags.StringFlag{
			Name:  roleFlag,
			Value: "",
			Usage: "Role of the new user (for example manager); empty means no role",
		},
	}

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create a user for the internal area",
		Long: `Create a user for the internal area.

Prompts for username, e-mail and password (twice). The password is read
without echo when stdin is a terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), connTimeout)
			storage, err := repository.New(ctx, cfg.DSN())
			cancel()
			if err != nil {
				return err
			}
			defer storage.Close()

			// создание пользователя не трогает сессии, Redis не нужен
			svc := auth.NewAuthService(storage, nil, jwt.NewJWTMaker(cfg.SecretKey, cfg.TokenTTL), cfg.Access)
			prompter := NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return CreateUser(cmd.Context(), svc, prompter, cmd.OutOrStdout(), flags[roleFlag].GetString())
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), connTimeout)
			storage, err := repository.New(ctx, cfg.DSN())
			cancel()
			if err != nil {
				return err
			}
			defer storage.Close()

			version, err := migrations.Run(storage.DB, cfg.MigrationsPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Migrações aplicadas. Versão atual: %d\n", version)
			return nil
		},
	}
}

// Execute запускает manage и возвращает код выхода.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		if !errors.Is(err, ErrCommandFailed) {
			fmt.Fprintf(os.Stderr, "Erro: %s\n", err)
		}
		return 1
	}
	return 0
}
