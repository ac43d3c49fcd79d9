// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artspace_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// LikesTotal counts like operations by content kind and resulting action.
	LikesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artspace_likes_total",
		Help: "Total number of like operations",
	}, []string{"kind", "action"})

	// UploadsTotal counts stored uploads by category and backend.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artspace_uploads_total",
		Help: "Total number of stored uploads",
	}, []string{"category", "backend"})
)

// RecordLike increments the like counter. kind is "artwork" or "video";
// action is "like" or "unlike".
func RecordLike(kind, action string) {
	LikesTotal.WithLabelValues(kind, action).Inc()
}

// RecordUpload increments the upload counter.
func RecordUpload(category, backend string) {
	UploadsTotal.WithLabelValues(category, backend).Inc()
}
