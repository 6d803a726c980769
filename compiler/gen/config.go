package gen

import "runtime"

// Config holds the generator configuration.
type Config struct {
	// Schema is the path to the YAML schema document.
	Schema string
	// Target is the directory generated files are written to.
	Target string
	// Package is the package name of the generated files. Defaults to the
	// base name of Target.
	Package string
	// Workers bounds the number of files generated in parallel.
	Workers int
	// Header is the comment placed at the top of every generated file.
	Header string
}

// Option configures the generator.
type Option func(*Config)

// WithSchema sets the schema document path.
func WithSchema(path string) Option {
	return func(c *Config) { c.Schema = path }
}

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) { c.Target = dir }
}

// WithPackage sets the package name of the generated files.
func WithPackage(pkg string) Option {
	return func(c *Config) { c.Package = pkg }
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Workers = n
		}
	}
}

// WithHeader overrides the generated-file header comment.
func WithHeader(header string) Option {
	return func(c *Config) { c.Header = header }
}

// NewConfig builds a Config from options and validates it.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Workers: runtime.GOMAXPROCS(0),
		Header:  "Code generated by tuskgen. DO NOT EDIT.",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Schema == "" {
		return nil, NewConfigError("Schema", nil, "missing schema document path")
	}
	if c.Target == "" {
		return nil, NewConfigError("Target", nil, "missing target directory")
	}
	return c, nil
}
