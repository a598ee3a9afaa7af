// Package snapshot serializes a finalized registry to a flat JSON document
// for inspection or for feeding renderers out-of-process. Values are
// encoded with their cty types so a reload reconstructs the exact value
// shape.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/vk/parametry/internal/param"
	"github.com/vk/parametry/internal/registry"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Record is the serialized form of one registry entry.
type Record struct {
	Path        string          `json:"path"`
	Value       json.RawMessage `json:"value"`
	Type        json.RawMessage `json:"type"`
	Status      string          `json:"status"`
	Units       string          `json:"units,omitempty"`
	Source      string          `json:"source,omitempty"`
	DerivedFrom []string        `json:"derived_from,omitempty"`
}

// Write serializes every registry entry, path-sorted for stable output.
func Write(reg *registry.Registry, w io.Writer) error {
	paths := reg.Paths()
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })

	records := make([]Record, 0, len(paths))
	for _, p := range paths {
		entry, err := reg.Get(p)
		if err != nil {
			return err
		}

		valueJSON, err := ctyjson.Marshal(entry.Value, entry.Value.Type())
		if err != nil {
			return fmt.Errorf("failed to encode value of %q: %w", p, err)
		}
		typeJSON, err := ctyjson.MarshalType(entry.Value.Type())
		if err != nil {
			return fmt.Errorf("failed to encode type of %q: %w", p, err)
		}

		derivedFrom := make([]string, 0, len(entry.DerivedFrom))
		for _, dep := range entry.DerivedFrom {
			derivedFrom = append(derivedFrom, string(dep))
		}

		records = append(records, Record{
			Path:        string(p),
			Value:       valueJSON,
			Type:        typeJSON,
			Status:      entry.Status.String(),
			Units:       entry.Units,
			Source:      entry.Source,
			DerivedFrom: derivedFrom,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// Read deserializes a snapshot into entries suitable for seeding a fresh
// registry. Reloaded entries are leaf-equivalent: their derived_from chains
// are dropped, so provenance validation is not repeated across the reload
// boundary.
func Read(r io.Reader) ([]*param.Entry, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	entries := make([]*param.Entry, 0, len(records))
	for _, rec := range records {
		path, err := param.ParsePath(rec.Path)
		if err != nil {
			return nil, err
		}
		status, err := param.ParseStatus(rec.Status)
		if err != nil {
			return nil, fmt.Errorf("snapshot entry %q: %w", rec.Path, err)
		}

		valType, err := ctyjson.UnmarshalType(rec.Type)
		if err != nil {
			return nil, fmt.Errorf("snapshot entry %q: invalid type: %w", rec.Path, err)
		}
		val, err := ctyjson.Unmarshal(rec.Value, valType)
		if err != nil {
			return nil, fmt.Errorf("snapshot entry %q: invalid value: %w", rec.Path, err)
		}

		entries = append(entries, &param.Entry{
			Path:   path,
			Value:  val,
			Status: status,
			Units:  rec.Units,
			Source: rec.Source,
		})
	}
	return entries, nil
}
