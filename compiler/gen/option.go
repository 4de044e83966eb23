package gen

import (
	"errors"
	"go/token"
	"log/slog"
	"strings"

	"github.com/enkigen/enki/dialect"
)

// Option configures code generation.
type Option func(*Config) error

// WithTarget sets the output directory.
func WithTarget(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Target", nil, "target directory cannot be empty")
		}
		c.Target = dir
		return nil
	}
}

// WithTablePrefix sets the prefix of every table, cache region, index and
// view name. For example: "ENKI_".
func WithTablePrefix(prefix string) Option {
	return func(c *Config) error {
		if strings.ContainsAny(prefix, " \t\n\"`'") {
			return NewConfigError("TablePrefix", prefix, "prefix cannot contain whitespace or quotes")
		}
		c.TablePrefix = prefix
		return nil
	}
}

// WithDefaultStringLength sets the column length of string attributes
// without a max length tag.
func WithDefaultStringLength(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("DefaultStringLength", n, "length must be positive")
		}
		c.DefaultStringLength = n
		return nil
	}
}

// WithIdentifierLimit sets the maximum length of generated identifiers.
// Longer names are truncated, which may make them collide; tune the limit
// per metamodel and database. Zero disables truncation.
func WithIdentifierLimit(n int) Option {
	return func(c *Config) error {
		if n < 0 {
			return NewConfigError("IdentifierLimit", n, "limit must not be negative")
		}
		c.IdentifierLimit = n
		return nil
	}
}

// WithIncludedPackages restricts generation to a comma separated list of
// slash separated package paths, for example "Shop,Core/Types".
func WithIncludedPackages(list string) Option {
	return func(c *Config) error {
		paths, ok := parsePackagePaths(list)
		if !ok {
			return NewConfigError("IncludedPackages", list, "package path has an empty segment")
		}
		c.IncludedPackages = paths
		return nil
	}
}

// WithPlugin enables plugin mode.
func WithPlugin(plugin bool) Option {
	return func(c *Config) error {
		c.Plugin = plugin
		return nil
	}
}

// WithViews enables view generation.
func WithViews(views bool) Option {
	return func(c *Config) error {
		c.Views = views
		return nil
	}
}

// WithDialects sets the dialects receiving index and view DDL.
// Supported names: "mysql", "hsqldb", "postgres" and "sqlite".
func WithDialects(names ...string) Option {
	return func(c *Config) error {
		if len(names) == 0 {
			return NewConfigError("Dialects", nil, "at least one dialect is required")
		}
		ds := make([]dialect.Dialect, 0, len(names))
		for _, name := range names {
			d, err := dialect.Parse(name)
			if err != nil {
				return NewConfigError("Dialects", name, "unsupported dialect; use mysql, hsqldb, postgres, or sqlite")
			}
			ds = append(ds, d)
		}
		c.Dialects = ds
		return nil
	}
}

// WithExtentName sets the extent name recorded in the properties file.
func WithExtentName(name string) Option {
	return func(c *Config) error {
		c.ExtentName = name
		return nil
	}
}

// WithInitializer sets the fully qualified initializer class name.
func WithInitializer(class string) Option {
	return func(c *Config) error {
		c.Initializer = class
		return nil
	}
}

// WithTransientPackages marks every class contained in a package with one of
// the given names as transient, in addition to the enki.transient tag.
func WithTransientPackages(names ...string) Option {
	return func(c *Config) error {
		c.TransientPackages = append(c.TransientPackages, names...)
		return nil
	}
}

// WithImplSuffix sets the suffix naming implementation classes.
func WithImplSuffix(suffix string) Option {
	return func(c *Config) error {
		if suffix == "" {
			return NewConfigError("ImplSuffix", nil, "suffix cannot be empty")
		}
		c.ImplSuffix = suffix
		return nil
	}
}

// WithStoragePackage sets the Java package of the association archetypes.
func WithStoragePackage(pkg string) Option {
	return func(c *Config) error {
		if pkg == "" {
			return NewConfigError("StoragePackage", nil, "package cannot be empty")
		}
		c.StoragePackage = pkg
		return nil
	}
}

// WithCatalog enables the Go catalog artifact in the given package.
func WithCatalog(pkg string) Option {
	return func(c *Config) error {
		if !token.IsIdentifier(pkg) {
			return NewConfigError("Catalog", pkg, "catalog must be a valid Go package name")
		}
		c.Catalog = pkg
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers sets the number of artifacts written concurrently.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
