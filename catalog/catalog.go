// Package catalog holds the declarative list of business questions and the
// configuration data they reference (region sets, country aliases).
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ebrunovs/bi-atvi2/engine"
	"github.com/ebrunovs/bi-atvi2/schema"
)

//go:embed questions.yaml
var defaultYAML []byte

// Catalog is a validated question list.
type Catalog struct {
	Sets           map[string][]string `yaml:"sets" json:"sets,omitempty"`
	CountryAliases map[string]string   `yaml:"country_aliases" json:"countryAliases,omitempty"`
	Questions      []engine.Question   `yaml:"questions" json:"questions"`
}

// ValidationError reports a catalog that decoded but cannot be used.
type ValidationError struct {
	Question string
	Err      error
}

func (e *ValidationError) Error() string {
	return "invalid catalog: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// UnknownQuestionError reports a lookup that matched no question.
type UnknownQuestionError struct {
	Ref string
}

func (e *UnknownQuestionError) Error() string {
	return fmt.Sprintf("unknown question %q", e.Ref)
}

// Default returns the built-in question catalog.
func Default() (*Catalog, error) {
	return Load(bytes.NewReader(defaultYAML))
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a YAML catalog. Unknown fields are rejected.
func Load(r io.Reader) (*Catalog, error) {
	var c Catalog
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Err: errors.New("empty document")}
		}
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	if err := c.resolve(); err != nil {
		return nil, err
	}
	return &c, nil
}

// resolve fills defaults, expands $set references and validates every question.
func (c *Catalog) resolve() error {
	if len(c.Questions) == 0 {
		return &ValidationError{Err: errors.New("no questions")}
	}

	aliases := make(map[string]string, len(c.CountryAliases))
	for from, to := range c.CountryAliases {
		aliases[strings.ToLower(schema.NormalizeText(from))] = schema.NormalizeText(to)
	}

	ids := make(map[string]bool)
	numbers := make(map[int]string)
	for i := range c.Questions {
		q := engine.Normalize(c.Questions[i])

		if err := q.Check(); err != nil {
			return &ValidationError{Question: q.ID, Err: err}
		}
		if ids[q.ID] {
			return &ValidationError{Question: q.ID, Err: fmt.Errorf("question %q: duplicate id", q.ID)}
		}
		ids[q.ID] = true
		if q.Number != 0 {
			if other, ok := numbers[q.Number]; ok {
				return &ValidationError{Question: q.ID, Err: fmt.Errorf("question %q: number %d already used by %q", q.ID, q.Number, other)}
			}
			numbers[q.Number] = q.ID
		}

		dims, err := c.expand(q, aliases)
		if err != nil {
			return err
		}
		q.Filters.Dimensions = dims
		c.Questions[i] = q
	}
	return nil
}

// expand returns a copy of the question's dimension filters with set
// references replaced by their members and country aliases applied.
func (c *Catalog) expand(q engine.Question, aliases map[string]string) (map[string][]string, error) {
	if len(q.Filters.Dimensions) == 0 {
		return q.Filters.Dimensions, nil
	}

	out := make(map[string][]string, len(q.Filters.Dimensions))
	for key, values := range q.Filters.Dimensions {
		var expanded []string
		seen := make(map[string]bool)
		add := func(v string) {
			v = schema.NormalizeText(v)
			if key == schema.CustomerCountry {
				if to, ok := aliases[strings.ToLower(v)]; ok {
					v = to
				}
			}
			if !seen[v] {
				seen[v] = true
				expanded = append(expanded, v)
			}
		}

		for _, v := range values {
			if !strings.HasPrefix(v, "$") {
				add(v)
				continue
			}
			members, ok := c.Sets[v[1:]]
			if !ok {
				return nil, &ValidationError{Question: q.ID, Err: fmt.Errorf("question %q: undefined set %q", q.ID, v)}
			}
			for _, m := range members {
				add(m)
			}
		}
		out[key] = expanded
	}
	return out, nil
}

// Lookup finds a question by id or by number ("8").
func (c *Catalog) Lookup(ref string) (engine.Question, error) {
	ref = strings.TrimSpace(ref)
	n, err := strconv.Atoi(ref)
	for _, q := range c.Questions {
		if q.ID == ref || (err == nil && q.Number == n) {
			return q, nil
		}
	}
	return engine.Question{}, &UnknownQuestionError{Ref: ref}
}

// Select returns the questions named by refs, in the order given.
// No refs selects every question.
func (c *Catalog) Select(refs ...string) ([]engine.Question, error) {
	if len(refs) == 0 {
		return c.Questions, nil
	}
	out := make([]engine.Question, 0, len(refs))
	for _, ref := range refs {
		q, err := c.Lookup(ref)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

// IDs returns the question ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.Questions))
	for i, q := range c.Questions {
		ids[i] = q.ID
	}
	return ids
}

// ComputeReport answers one question of the catalog over ds.
func (c *Catalog) ComputeReport(ref string, ds *engine.Dataset) (*engine.Report, error) {
	q, err := c.Lookup(ref)
	if err != nil {
		return nil, err
	}
	return engine.ComputeReport(q, ds)
}
