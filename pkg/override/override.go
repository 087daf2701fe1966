// Package override provides the textual override resource of
// the generator. Overrides are keyed by class name, qualified
// member name or the literal key "header" and fully replace
// the generated text for their key.
package override

import (
	"fmt"
	"strings"

	"github.com/drone/envsubst"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"

	"github.com/mandelsoft/metagen/pkg/utils"
)

// HEADER is the reserved key for text prepended after the
// generated file header.
const HEADER = "header"

type entry struct {
	typ  string
	text string
}

type Overrides struct {
	overrides map[string]*entry
}

// New creates an empty override table.
func New() *Overrides {
	return &Overrides{overrides: map[string]*entry{}}
}

// Load reads an override resource. The format is a sequence of
// blocks
//
//	override <key>[: <type>]
//	<literal text>
//	%%
//
// separated by optional blank and comment (#) lines. Override
// bodies are subject to environment variable substitution.
func Load(path string, fss ...vfs.FileSystem) (*Overrides, error) {
	fs := utils.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...)

	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read override file %q: %w", path, err)
	}
	o, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("override file %q: %w", path, err)
	}
	return o, nil
}

func Parse(data string) (*Overrides, error) {
	o := New()

	var key string
	var typ string
	var body []string
	in := false

	for no, line := range strings.Split(data, "\n") {
		if !in {
			trimmed := strings.TrimSpace(line)
			switch {
			case trimmed == "" || strings.HasPrefix(trimmed, "#"):
				continue
			case strings.HasPrefix(trimmed, "override "):
				key = strings.TrimSpace(trimmed[len("override "):])
				typ = ""
				if i := strings.Index(key, ":"); i >= 0 {
					typ = strings.TrimSpace(key[i+1:])
					key = strings.TrimSpace(key[:i])
				}
				if key == "" {
					return nil, fmt.Errorf("line %d: override without key", no+1)
				}
				if _, ok := o.overrides[key]; ok {
					return nil, fmt.Errorf("line %d: duplicate override for %q", no+1, key)
				}
				body = nil
				in = true
			default:
				return nil, fmt.Errorf("line %d: unexpected text outside override block", no+1)
			}
			continue
		}

		if strings.TrimRight(line, " \t") == "%%" {
			text, err := envsubst.EvalEnv(strings.Join(body, "\n"))
			if err != nil {
				return nil, fmt.Errorf("override %q: %w", key, err)
			}
			o.overrides[key] = &entry{typ: typ, text: text}
			in = false
			continue
		}
		body = append(body, line)
	}
	if in {
		return nil, fmt.Errorf("unterminated override block for %q", key)
	}
	return o, nil
}

// Header returns the override text for the reserved header key.
func (o *Overrides) Header() string {
	return o.GetOverride(HEADER)
}

func (o *Overrides) HasOverride(key string) bool {
	if o == nil {
		return false
	}
	_, ok := o.overrides[key]
	return ok
}

// GetOverride returns the literal replacement text for a key.
func (o *Overrides) GetOverride(key string) string {
	if o == nil {
		return ""
	}
	e := o.overrides[key]
	if e == nil {
		return ""
	}
	return e.text
}

// GetType returns the declared type annotation of an override,
// used when the key is mentioned in a class body.
func (o *Overrides) GetType(key string) string {
	if o == nil {
		return ""
	}
	e := o.overrides[key]
	if e == nil {
		return ""
	}
	return e.typ
}

// Keys returns all override keys in stable order.
func (o *Overrides) Keys() []string {
	if o == nil {
		return nil
	}
	return utils.OrderedMapKeys(o.overrides)
}
