package models

import "strings"

// Дискриминаторы контактных форм сайта.
const (
	FormQuote          = "orcamento"
	FormSupplier       = "fornecedor"
	FormJobApplication = "trabalhe_conosco"
)

// Attachment описывает файл, приложенный к заявке (резюме кандидата).
type Attachment struct {
	Filename    string `validate:"required"`
	ContentType string
	Data        []byte `validate:"required,min=1"`
}

// Submission заявка из контактной формы. Живёт только в рамках одного запроса
// и никуда не сохраняется.
type Submission struct {
	FormType   string
	Fields     map[string]string
	Attachment *Attachment
}

// Field возвращает значение поля без пробелов по краям, для отсутствующего поля пустую строку.
func (s Submission) Field(name string) string {
	return strings.TrimSpace(s.Fields[name])
}
