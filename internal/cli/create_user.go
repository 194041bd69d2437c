package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/magabrotheeeer/nutriede/internal/services/auth"
)

// ErrCommandFailed команда завершилась неудачно, сообщение уже напечатано.
var ErrCommandFailed = errors.New("command failed")

// UserCreator создаёт учётную запись.
type UserCreator interface {
	CreateUser(ctx context.Context, nu auth.NewUser) (int64, error)
}

// CreateUser спрашивает данные нового пользователя и создаёт его.
func CreateUser(ctx context.Context, svc UserCreator, p *Prompter, out io.Writer, role string) error {
	const op = "cli.CreateUser"

	fmt.Fprintln(out, "--- Criar Novo Usuário Admin ---")

	username, err := p.Ask("Digite o nome de usuário: ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	email, err := p.Ask("Digite o e-mail do usuário: ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	password, err := p.AskSecret("Digite a senha: ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	confirm, err := p.AskSecret("Confirme a senha: ")
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	_, err = svc.CreateUser(ctx, auth.NewUser{
		Username: username,
		Email:    email,
		Password: password,
		Confirm:  confirm,
		Role:     role,
	})
	switch {
	case err == nil:
		fmt.Fprintf(out, "Usuário '%s' criado com sucesso!\n", username)
		return nil
	case errors.Is(err, auth.ErrPasswordMismatch):
		fmt.Fprintln(out, "As senhas não coincidem. Operação cancelada.")
		return ErrCommandFailed
	case errors.Is(err, auth.ErrUserExists):
		fmt.Fprintln(out, "Erro: Já existe um usuário com esse nome ou e-mail.")
		return ErrCommandFailed
	case errors.Is(err, auth.ErrInvalidUser):
		fmt.Fprintln(out, "Erro: Nome de usuário, e-mail e senha são obrigatórios.")
		return ErrCommandFailed
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
