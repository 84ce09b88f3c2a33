// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type Recorder interface {
	RecordSubmissionAccepted()
	RecordSubmissionRejected(reason string)
	RecordAuthDenied()
	RecordHTTPStatus(statusCode int)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	submissionsAccepted prometheus.Counter
	submissionsRejected *prometheus.CounterVec
	authDenied          prometheus.Counter
	httpStatus          *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		submissionsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formgate_submissions_accepted_total",
			Help: "受理された投稿の合計数",
		}),
		submissionsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "formgate_submissions_rejected_total",
			Help: "検証で拒否された投稿の理由別合計数",
		}, []string{"reason"}),
		authDenied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "formgate_auth_denied_total",
			Help: "許可リスト照合で拒否されたリクエストの合計数",
		}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "formgate_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
	}

	reg.MustRegister(
		c.submissionsAccepted,
		c.submissionsRejected,
		c.authDenied,
		c.httpStatus,
	)

	return c
}

// RecordSubmissionAccepted は投稿の受理を記録する。
func (c *Collector) RecordSubmissionAccepted() {
	c.submissionsAccepted.Inc()
}

// RecordSubmissionRejected は投稿の検証拒否を理由付きで記録する。
func (c *Collector) RecordSubmissionRejected(reason string) {
	c.submissionsRejected.WithLabelValues(reason).Inc()
}

// RecordAuthDenied は許可リスト照合による拒否を記録する。
func (c *Collector) RecordAuthDenied() {
	c.authDenied.Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var _ Recorder = (*Collector)(nil)
