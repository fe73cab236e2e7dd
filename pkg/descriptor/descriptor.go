package descriptor

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mandelsoft/goutils/maputils"
	"github.com/mandelsoft/vfs/pkg/vfs"
)

// ParseError is reported for unreadable or malformed descriptors.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse descriptor %q: %s", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extract reads the configuration block of the given plugin from the
// descriptor at path. Only the first matching plugin declaration is
// used. A descriptor without such a declaration yields an empty
// configuration.
func Extract(fs vfs.FileSystem, path string, plugin Plugin) (Configuration, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	cfg, err := Parse(data, plugin)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	log.Debug("found configuration keys {{keys}} in {{descriptor}}", "keys", maputils.OrderedKeys(cfg), "descriptor", path)
	return cfg, nil
}

// Parse extracts the plugin configuration from descriptor content.
func Parse(data []byte, plugin Plugin) (Configuration, error) {
	var root node

	dec := xml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		return nil, err
	}
	if err := trailer(dec); err != nil {
		return nil, err
	}

	cfg := Configuration{}
	for _, p := range root.Elements("plugin") {
		if !matches(p, plugin) {
			continue
		}
		c := p.First("configuration")
		if c != nil {
			for _, e := range c.Nodes {
				if strings.HasPrefix(e.Name(), "#") {
					continue
				}
				cfg[e.Name()] = strings.TrimSpace(e.Content())
			}
		}
		break
	}
	return cfg, nil
}

// trailer checks that only comments, processing instructions and
// white space follow the root element.
func trailer(dec *xml.Decoder) error {
	for {
		t, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		switch e := t.(type) {
		case xml.StartElement:
			return fmt.Errorf("unexpected element %q after root element", e.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(e)) != 0 {
				return fmt.Errorf("unexpected text after root element")
			}
		}
	}
}

func matches(p *node, plugin Plugin) bool {
	g, ok := p.FirstContent("groupId")
	if !ok || g != plugin.GroupID {
		return false
	}
	a, ok := p.FirstContent("artifactId")
	return ok && a == plugin.ArtifactID
}
