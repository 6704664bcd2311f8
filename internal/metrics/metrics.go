// Package metrics exposes game counters and balances as Prometheus metrics.
//
// The engine never serves HTTP; a Recorder owns its own registry and can dump
// it in the text exposition format for a node-exporter textfile collector.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "goodcents"

// Recorder holds every game metric. A nil *Recorder is valid and records
// nothing.
type Recorder struct {
	reg *prometheus.Registry

	weeksAdvanced   prometheus.Counter
	monthsRolled    prometheus.Counter
	transactions    *prometheus.CounterVec
	eventsSelected  *prometheus.CounterVec
	actionsTaken    *prometheus.CounterVec
	weeklyEvents    *prometheus.CounterVec
	quizPoints      prometheus.Counter
	lessonsFinished prometheus.Counter
	operationErrors *prometheus.CounterVec
	balance         *prometheus.GaugeVec
	promotionLevel  prometheus.Gauge
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		reg: reg,
		weeksAdvanced: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "time",
			Name:      "weeks_advanced_total",
			Help:      "Total game weeks advanced.",
		}),
		monthsRolled: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "time",
			Name:      "months_rolled_total",
			Help:      "Total month boundaries crossed, each paying interest.",
		}),
		transactions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "transactions_total",
			Help:      "Total ledger entries recorded by account.",
		}, []string{"account"}),
		eventsSelected: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "selected_total",
			Help:      "Interactive event draws by outcome (event, none).",
		}, []string{"outcome"}),
		actionsTaken: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "actions_total",
			Help:      "Interactive event actions performed by type.",
		}, []string{"type"}),
		weeklyEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "weekly_total",
			Help:      "Weekly random events applied by tier.",
		}, []string{"tier"}),
		quizPoints: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "progression",
			Name:      "quiz_points_total",
			Help:      "Total promotion points awarded by quizzes.",
		}),
		lessonsFinished: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "progression",
			Name:      "lessons_completed_total",
			Help:      "Total lesson completions recorded.",
		}),
		operationErrors: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operation_errors_total",
			Help:      "Rejected or failed operations by name.",
		}, []string{"operation"}),
		balance: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "account",
			Name:      "balance",
			Help:      "Current balance by account.",
		}, []string{"account"}),
		promotionLevel: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "progression",
			Name:      "promotion_level",
			Help:      "Current promotion level (0-4).",
		}),
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

func (r *Recorder) WeekAdvanced(monthRolled bool) {
	if r == nil {
		return
	}
	r.weeksAdvanced.Inc()
	if monthRolled {
		r.monthsRolled.Inc()
	}
}

func (r *Recorder) TransactionRecorded(account string) {
	if r == nil {
		return
	}
	r.transactions.WithLabelValues(account).Inc()
}

// EventSelected counts a draw; none marks the "no events found" sentinel.
func (r *Recorder) EventSelected(none bool) {
	if r == nil {
		return
	}
	outcome := "event"
	if none {
		outcome = "none"
	}
	r.eventsSelected.WithLabelValues(outcome).Inc()
}

func (r *Recorder) ActionPerformed(actionType string) {
	if r == nil {
		return
	}
	r.actionsTaken.WithLabelValues(actionType).Inc()
}

func (r *Recorder) WeeklyEvent(tier string) {
	if r == nil {
		return
	}
	r.weeklyEvents.WithLabelValues(tier).Inc()
}

func (r *Recorder) QuizAwarded(points int) {
	if r == nil || points <= 0 {
		return
	}
	r.quizPoints.Add(float64(points))
}

func (r *Recorder) LessonCompleted() {
	if r == nil {
		return
	}
	r.lessonsFinished.Inc()
}

func (r *Recorder) OperationFailed(operation string) {
	if r == nil {
		return
	}
	r.operationErrors.WithLabelValues(operation).Inc()
}

func (r *Recorder) SetBalance(account string, value float64) {
	if r == nil {
		return
	}
	r.balance.WithLabelValues(account).Set(value)
}

func (r *Recorder) SetPromotionLevel(level int) {
	if r == nil {
		return
	}
	r.promotionLevel.Set(float64(level))
}

// WriteFile dumps the registry to path in the text exposition format.
func (r *Recorder) WriteFile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
