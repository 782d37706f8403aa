package ops

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the flow-level counters exposed on /metrics. It satisfies
// the engine's Metrics interface.
type Metrics struct {
	UpdatesReceived prometheus.Counter
	Registrations   prometheus.Counter
	ProfileUpdates  prometheus.Counter
	Submissions     prometheus.Counter
	RelayFailures   prometheus.Counter
	Exports         prometheus.Counter
	HandlerErrors   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UpdatesReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "tanlovbot_updates_received_total",
			Help: "Inbound Telegram updates handed to the flow engine.",
		}),
		Registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "tanlovbot_registrations_completed_total",
			Help: "Participants created together with their first submission.",
		}),
		ProfileUpdates: factory.NewCounter(prometheus.CounterOpts{
			Name: "tanlovbot_registrations_updated_total",
			Help: "Existing participant records rewritten from the confirmation screen.",
		}),
		Submissions: factory.NewCounter(prometheus.CounterOpts{
			Name: "tanlovbot_submissions_relayed_total",
			Help: "Submissions forwarded to the review channel and persisted.",
		}),
		RelayFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "tanlovbot_relay_failures_total",
			Help: "Submission attempts rolled back because the channel relay failed.",
		}),
		Exports: factory.NewCounter(prometheus.CounterOpts{
			Name: "tanlovbot_exports_generated_total",
			Help: "Admin xlsx exports generated.",
		}),
		HandlerErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "tanlovbot_handler_errors_total",
			Help: "Updates whose handling returned an error.",
		}),
	}
}

func (m *Metrics) RegistrationCompleted() { m.Registrations.Inc() }
func (m *Metrics) RegistrationUpdated()   { m.ProfileUpdates.Inc() }
func (m *Metrics) SubmissionRelayed()     { m.Submissions.Inc() }
func (m *Metrics) RelayFailed()           { m.RelayFailures.Inc() }
func (m *Metrics) ExportGenerated()       { m.Exports.Inc() }
