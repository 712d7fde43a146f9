package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/JonMunkholm/assort/internal/core"
)

// snapshotProduct is a record of the version-map shape.
type snapshotProduct struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	SizeRange string `json:"sizeRange"`
	Gender    string `json:"gender"`
}

// versionMap marshals partitions with keys in catalog version order.
type versionMap struct {
	versions   []string
	partitions map[string][]core.Product
}

func (m versionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range m.versions {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalUnescaped(v)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		products := m.partitions[v]
		rows := make([]snapshotProduct, len(products))
		for j, p := range products {
			rows[j] = snapshotProduct{
				ID:        p.ID,
				Name:      p.Name,
				Category:  p.Category,
				SizeRange: p.SizeRange,
				Gender:    p.Gender,
			}
		}
		body, err := marshalUnescaped(rows)
		if err != nil {
			return nil, err
		}
		buf.Write(body)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteSnapshot writes the whole dataset in the version-map shape as
// two-space indented JSON with a trailing newline. HTML characters in
// values are not escaped.
func WriteSnapshot(w io.Writer, cat *core.Catalog) error {
	doc := struct {
		Version versionMap `json:"version"`
	}{
		Version: versionMap{versions: cat.Versions(), partitions: cat.Partitions()},
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// marshalUnescaped is json.Marshal without HTML escaping, so names such as
// "Socks & Liners" are written as-is.
func marshalUnescaped(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}
