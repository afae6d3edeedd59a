package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var (
	schemaMu    sync.Mutex
	schemaCache = map[string]*jsonschema.Schema{}
)

// compileSchema compiles s once and caches it by name.
func compileSchema(s *Schema) (*jsonschema.Schema, error) {
	schemaMu.Lock()
	defer schemaMu.Unlock()

	if cs, ok := schemaCache[s.Name]; ok {
		return cs, nil
	}
	raw, err := json.Marshal(s.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %s: %w", s.Name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", s.Name, err)
	}
	url := "mem://" + s.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %s: %w", s.Name, err)
	}
	cs, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", s.Name, err)
	}
	schemaCache[s.Name] = cs
	return cs, nil
}

// validateResponse checks that content is JSON matching s.
func validateResponse(s *Schema, content json.RawMessage) error {
	cs, err := compileSchema(s)
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(content))
	if err != nil {
		return &ErrInvalidResponse{Content: content, Err: fmt.Errorf("not JSON: %w", err)}
	}
	if err := cs.Validate(doc); err != nil {
		return &ErrInvalidResponse{Content: content, Err: err}
	}
	return nil
}
