// Package metrics содержит счётчики Prometheus, которые отдаются на /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/magabrotheeeer/nutriede/internal/models"
)

const namespace = "nutriede"

var (
	// ContactSubmissions считает обработанные формы по типу и исходу.
	ContactSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "contact",
		Name:      "submissions_total",
		Help:      "Contact form submissions by form type and outcome.",
	}, []string{"form_type", "outcome"})

	// SendFailures считает неудачные отправки писем по причине.
	SendFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "mail",
		Name:      "send_failures_total",
		Help:      "Failed SMTP deliveries by cause.",
	}, []string{"cause"})

	// LoginAttempts считает попытки входа по результату.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "auth",
		Name:      "login_attempts_total",
		Help:      "Login attempts by result.",
	}, []string{"result"})
)

// Результаты попыток входа.
const (
	LoginSuccess     = "success"
	LoginInvalid     = "invalid_credentials"
	LoginRoleDenied  = "role_denied"
	LoginStoreFailed = "error"
)

// UnknownFormType метка для form_type, которого нет среди форм сайта.
const UnknownFormType = "unknown"

// ObserveContact фиксирует исход обработки формы. form_type приходит от
// посетителя, поэтому в метку попадают только известные виды форм.
func ObserveContact(formType, outcome string) {
	ContactSubmissions.WithLabelValues(formTypeLabel(formType), outcome).Inc()
}

func formTypeLabel(formType string) string {
	switch formType {
	case models.FormQuote, models.FormSupplier, models.FormJobApplication:
		return formType
	default:
		return UnknownFormType
	}
}

// ObserveSendFailure фиксирует сбой отправки письма.
func ObserveSendFailure(cause string) {
	SendFailures.WithLabelValues(cause).Inc()
}

// ObserveLogin фиксирует результат попытки входа.
func ObserveLogin(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}
