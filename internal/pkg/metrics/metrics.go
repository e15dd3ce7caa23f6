package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики пайплайна загрузки границ
var (
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "boundary",
		Name:      "pipeline_runs_total",
		Help:      "Boundary pipeline runs by outcome",
	}, []string{"status"})

	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "boundary",
		Name:      "pipeline_duration_seconds",
		Help:      "End-to-end duration of a boundary pipeline run",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	SegmentsStitched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "boundary",
		Name:      "segments_stitched_total",
		Help:      "Input way segments consumed by the stitcher",
	})

	SegmentsLeftover = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "boundary",
		Name:      "segments_leftover_total",
		Help:      "Way segments the stitcher could not connect",
	})

	ValidationRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "boundary",
		Name:      "validation_rejections_total",
		Help:      "Boundaries rejected by area validation",
	})
)

// Статусы для PipelineRuns
const (
	StatusSuccess         = "success"
	StatusDownloadFailed  = "download_failed"
	StatusStitchFailed    = "stitch_failed"
	StatusRejected        = "rejected"
	StatusDiscoveryFailed = "discovery_failed"
	StatusPersistFailed   = "persist_failed"
)
