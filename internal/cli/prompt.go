package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter задаёт вопросы в консоли. Пароль читается без эха, если ввод идёт с терминала.
type Prompter struct {
	in       *bufio.Reader
	out      io.Writer
	terminal *os.File
}

// NewPrompter создает Prompter поверх in и out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.terminal = f
	}
	return p
}

// Ask печатает вопрос и возвращает введённую строку без перевода строки.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprint(p.out, question)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// AskSecret как Ask, но без эха на терминале.
func (p *Prompter) AskSecret(question string) (string, error) {
	if p.terminal == nil {
		return p.Ask(question)
	}
	fmt.Fprint(p.out, question)
	secret, err := term.ReadPassword(int(p.terminal.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(secret), nil
}
