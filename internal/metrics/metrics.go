package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the bot's Prometheus collectors. It satisfies the
// registration flow's Recorder interface.
type Metrics struct {
	Updates          *prometheus.CounterVec
	Registrations    *prometheus.CounterVec
	PhoneValidations *prometheus.CounterVec
	ForwardFailures  prometheus.Counter
}

// New registers the collectors with reg and returns the bundle. Passing
// prometheus.DefaultRegisterer wires them into the default /metrics
// exposition.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "signupbot",
			Name:      "updates_total",
			Help:      "Inbound Telegram updates by kind.",
		}, []string{"kind"}),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "signupbot",
			Name:      "registrations_total",
			Help:      "Registration flow transitions by outcome.",
		}, []string{"outcome"}),
		PhoneValidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "signupbot",
			Name:      "phone_validations_total",
			Help:      "Phone number validations by result.",
		}, []string{"result"}),
		ForwardFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "signupbot",
			Name:      "forward_failures_total",
			Help:      "Failed operator notification deliveries.",
		}),
	}
	reg.MustRegister(m.Updates, m.Registrations, m.PhoneValidations, m.ForwardFailures)
	return m
}

// Handler exposes the default Prometheus registry over HTTP.
func Handler() http.Handler {
	return promhttp.Handler()
}

// UpdateReceived counts one inbound update of the given kind.
func (m *Metrics) UpdateReceived(kind string) {
	m.Updates.WithLabelValues(kind).Inc()
}

// RegistrationStarted counts a started registration.
func (m *Metrics) RegistrationStarted() {
	m.Registrations.WithLabelValues("started").Inc()
}

// RegistrationCompleted counts a forwarded submission.
func (m *Metrics) RegistrationCompleted() {
	m.Registrations.WithLabelValues("completed").Inc()
}

// RegistrationCancelled counts a user-cancelled registration.
func (m *Metrics) RegistrationCancelled() {
	m.Registrations.WithLabelValues("cancelled").Inc()
}

// RegistrationRestarted counts a restart from the confirmation summary.
func (m *Metrics) RegistrationRestarted() {
	m.Registrations.WithLabelValues("restarted").Inc()
}

// PhoneValidated counts one validation attempt.
func (m *Metrics) PhoneValidated(ok bool) {
	result := "rejected"
	if ok {
		result = "accepted"
	}
	m.PhoneValidations.WithLabelValues(result).Inc()
}
