package rsp

import "github.com/sirupsen/logrus"

type config struct {
	logger       logrus.FieldLogger
	mergeHeaders bool
}

type Option func(*config)

// WithLogger sets the logger that receives per-line debug traces.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMergeHeaders folds stacked "[K = V]" headers that have no records
// between them into the defaults of a single section.
func WithMergeHeaders(merge bool) Option {
	return func(c *config) {
		c.mergeHeaders = merge
	}
}

func newConfig(opts []Option) config {
	c := config{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
