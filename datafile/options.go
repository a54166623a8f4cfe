package datafile

import (
	"os"
	"time"
)

// Option configures Open.
type Option func(*config)

type config struct {
	operator string
	root     string
	note     string
	reporter Reporter
	now      func() time.Time
}

func defaultConfig() *config {
	return &config{
		operator: "unknown",
		root:     "/",
		reporter: NewConsoleReporter(os.Stderr),
		now:      time.Now,
	}
}

// WithOperator records who opened the container in the init log entry.
func WithOperator(operator string) Option {
	return func(c *config) {
		if operator != "" {
			c.operator = operator
		}
	}
}

// WithRoot sets the root group path all keys are resolved against.
func WithRoot(root string) Option {
	return func(c *config) {
		if root != "" {
			c.root = root
		}
	}
}

// WithNote attaches a free-text note to the init log entry.
func WithNote(note string) Option {
	return func(c *config) {
		c.note = note
	}
}

// WithReporter replaces the console reporter.
func WithReporter(r Reporter) Option {
	return func(c *config) {
		if r != nil {
			c.reporter = r
		}
	}
}

// WithNow replaces the clock used for timestamps. Intended for tests.
func WithNow(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// SaveOption configures a single save operation.
type SaveOption func(*saveOptions)

type saveOptions struct {
	overwrite bool
	typeTag   string
	encoding  string
}

func applySaveOptions(opts []SaveOption) *saveOptions {
	o := &saveOptions{
		overwrite: true,
		typeTag:   "double",
		encoding:  "utf-8",
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithOverwrite controls whether an existing dataset at the target name is
// replaced. Defaults to true; with false, a name collision fails the save.
func WithOverwrite(overwrite bool) SaveOption {
	return func(o *saveOptions) {
		o.overwrite = overwrite
	}
}

// WithTypeTag sets the typestr recorded in a variable's provenance.
func WithTypeTag(tag string) SaveOption {
	return func(o *saveOptions) {
		if tag != "" {
			o.typeTag = tag
		}
	}
}

// WithEncoding declares the text encoding for SaveString. Only UTF-8 is
// supported; the declared name is recorded in the provenance record.
func WithEncoding(encoding string) SaveOption {
	return func(o *saveOptions) {
		if encoding != "" {
			o.encoding = encoding
		}
	}
}
