package onnxmeta

// Option configures a Differ or Pipeline.
type Option func(*config)

// config holds injectable collaborators. Zero fields fall back to the
// built-in ONNX implementations.
type config struct {
	// introspector extracts model interfaces.
	introspector ModelIntrospector

	// store opens artifacts for metadata access.
	store ArtifactMetadataStore

	// schema is the metadata schema to validate against.
	schema *Schema

	// logger receives diagnostic log messages.
	logger Logger
}

// newConfig returns a config with the built-in defaults applied.
func newConfig(opts []Option) *config {
	c := &config{
		introspector: NewIntrospector(),
		store:        NewArtifactStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithIntrospector sets a custom model introspector.
// Useful for testing without real model files.
func WithIntrospector(mi ModelIntrospector) Option {
	return func(c *config) {
		c.introspector = mi
	}
}

// WithStore sets a custom artifact metadata store.
func WithStore(s ArtifactMetadataStore) Option {
	return func(c *config) {
		c.store = s
	}
}

// WithSchema overrides the default metadata schema.
func WithSchema(s Schema) Option {
	return func(c *config) {
		c.schema = &s
	}
}

// WithLogger sets a logger for diagnostic output.
// If not set, logging is disabled.
func WithLogger(logger Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// Logger is the interface for diagnostic logging.
// Compatible with slog, zap, logrus, and other structured loggers.
type Logger interface {
	// Debug logs a debug-level message with optional key-value pairs.
	Debug(msg string, keysAndValues ...any)

	// Info logs an info-level message with optional key-value pairs.
	Info(msg string, keysAndValues ...any)

	// Warn logs a warning-level message with optional key-value pairs.
	Warn(msg string, keysAndValues ...any)

	// Error logs an error-level message with optional key-value pairs.
	Error(msg string, keysAndValues ...any)
}
