package domain

import (
	"database/sql/driver"
	"errors"

	"github.com/goccy/go-json"
)

// Document is the raw key/value payload kept by the document store.
type Document map[string]interface{}

func (d Document) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *Document) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(bytes, d)
}

// Clone copies the top level so writers never share maps with readers.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
