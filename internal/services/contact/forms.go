package contact

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/magabrotheeeer/nutriede/internal/models"
)

// form типизированная заявка одного вида.
type form interface {
	subject() string
	body() string
	attachment() *models.Attachment
}

type quoteForm struct {
	Nome         string `validate:"required"`
	Empresa      string `validate:"required"`
	CNPJ         string
	QtdRefeicoes string
	Email        string `validate:"required"`
	Mensagem     string
}

func (f quoteForm) subject() string {
	return "Novo Pedido de Orçamento - " + f.Empresa
}

func (f quoteForm) body() string {
	return fmt.Sprintf(`Novo pedido de ORÇAMENTO recebido pelo site:

Nome: %s
Empresa: %s
CNPJ: %s
Nº de Refeições/Dia: %s
E-mail: %s
Mensagem: %s
`, f.Nome, f.Empresa, f.CNPJ, f.QtdRefeicoes, f.Email, f.Mensagem)
}

func (quoteForm) attachment() *models.Attachment { return nil }

type supplierForm struct {
	Empresa string `validate:"required"`
	Contato string `validate:"required"`
	Email   string `validate:"required"`
	Produto string
}

func (f supplierForm) subject() string {
	return "Novo Contato de Fornecedor - " + f.Empresa
}

func (f supplierForm) body() string {
	return fmt.Sprintf(`Novo contato de FORNECEDOR recebido pelo site:

Nome da Empresa: %s
Nome do Contato: %s
E-mail: %s
Produto/Serviço: %s
`, f.Empresa, f.Contato, f.Email, f.Produto)
}

func (supplierForm) attachment() *models.Attachment { return nil }

type jobForm struct {
	Nome      string             `validate:"required"`
	Email     string             `validate:"required"`
	Telefone  string             `validate:"required"`
	Curriculo *models.Attachment `validate:"required"`
}

func (f jobForm) subject() string {
	return "Nova Candidatura Recebida - " + f.Nome
}

func (f jobForm) body() string {
	return fmt.Sprintf(`Nova candidatura para 'TRABALHE CONOSCO' recebida pelo site:

Nome Completo: %s
E-mail: %s
Telefone: %s

O currículo está em anexo.
`, f.Nome, f.Email, f.Telefone)
}

func (f jobForm) attachment() *models.Attachment { return f.Curriculo }

// parseForm раскладывает поля заявки по структуре нужного вида.
// Второе значение false, если вид заявки неизвестен.
func parseForm(sub models.Submission) (form, bool) {
	switch sub.FormType {
	case models.FormQuote:
		return quoteForm{
			Nome:         sub.Field("nome"),
			Empresa:      sub.Field("empresa"),
			CNPJ:         sub.Field("cnpj"),
			QtdRefeicoes: sub.Field("qtd_refeicoes"),
			Email:        sub.Field("email"),
			Mensagem:     sub.Field("mensagem"),
		}, true
	case models.FormSupplier:
		return supplierForm{
			Empresa: sub.Field("fornecedor_empresa"),
			Contato: sub.Field("fornecedor_contato"),
			Email:   sub.Field("fornecedor_email"),
			Produto: sub.Field("fornecedor_produto"),
		}, true
	case models.FormJobApplication:
		f := jobForm{
			Nome:     sub.Field("candidato_nome"),
			Email:    sub.Field("candidato_email"),
			Telefone: sub.Field("candidato_telefone"),
		}
		if sub.Attachment != nil {
			a := *sub.Attachment
			a.Filename = SanitizeFilename(a.Filename)
			f.Curriculo = &a
		}
		return f, true
	default:
		return nil, false
	}
}

const fallbackFilename = "curriculo"

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeFilename оставляет от имени файла только базовое имя из ASCII-букв,
// цифр, точек, дефисов и подчёркиваний. Пробелы заменяются на "_".
// Пустое исходное имя остаётся пустым.
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))

	if folded, _, err := transform.String(stripMarks, name); err == nil {
		name = folded
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}

	out := strings.Trim(b.String(), "._")
	if out == "" {
		return fallbackFilename
	}
	return out
}
