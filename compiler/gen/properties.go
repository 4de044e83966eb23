package gen

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Keys of the properties file.
const (
	PropImplementationType = "enki.implementationType"
	PropTopLevelPackage    = "enki.topLevelPackage"
	PropExtentName         = "enki.extentName"
	PropInitializer        = "enki.initializer"
	PropPlugin             = "enki.plugin"
	PropTablePrefix        = "enki.tablePrefix"
)

// ImplementationType identifies the Hibernate storage provider.
const ImplementationType = "ENKI_HIBERNATE"

// Property is one key=value line.
type Property struct {
	Key, Value string
}

// Properties is an ordered properties file.
type Properties []Property

// Get returns the value of key, or "".
func (p Properties) Get(key string) string {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value
		}
	}
	return ""
}

var propEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "=", `\=`, ":", `\:`)

// WriteTo writes the properties in order, one per line.
func (p Properties) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	bw.WriteString("# Generated by enki. DO NOT EDIT.\n")
	for _, kv := range p {
		bw.WriteString(kv.Key)
		bw.WriteByte('=')
		bw.WriteString(propEscaper.Replace(kv.Value))
		bw.WriteByte('\n')
	}
	err := bw.Flush()
	return cw.n, err
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// properties returns the configuration recorded for the runtime.
func (e *emitter) properties() (Properties, error) {
	props := Properties{{PropImplementationType, ImplementationType}}
	if !e.cfg.Plugin {
		if e.md.rootPackage == "" {
			return nil, NewConfigError("topLevelPackage", nil, "no mapped class to derive the top-level package from")
		}
		props = append(props, Property{PropTopLevelPackage, e.md.rootPackage})
	}
	extent := e.cfg.ExtentName
	if extent == "" {
		extent = e.model.Name
	}
	if extent == "" {
		return nil, NewConfigError("extentName", nil, "no extent name and the model is unnamed")
	}
	props = append(props, Property{PropExtentName, extent})
	initializer, err := e.initializer()
	if err != nil {
		return nil, err
	}
	props = append(props,
		Property{PropInitializer, initializer},
		Property{PropPlugin, strconv.FormatBool(e.cfg.Plugin)},
	)
	if e.cfg.TablePrefix != "" {
		props = append(props, Property{PropTablePrefix, e.cfg.TablePrefix})
	}
	return props, nil
}

// initializer returns the configured initializer class, or the one derived
// from the root package. Plugins must name theirs.
func (e *emitter) initializer() (string, error) {
	switch {
	case e.cfg.Initializer != "":
		return e.cfg.Initializer, nil
	case e.cfg.Plugin:
		return "", NewConfigError("initializer", nil, "plugin models must name their initializer class")
	case e.md.rootPackage == "":
		return "", NewConfigError("initializer", nil, "no initializer class name and no root package to derive one")
	default:
		return e.md.rootPackage + ".init.Initializer", nil
	}
}
