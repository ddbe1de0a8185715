// Package seed loads fixture items from JSON or TOML files.
//
// Both formats hold a list under "items":
//
//	{"items": [{"name": "bread", "price": "2.50", "stock": 12}]}
//
//	[[items]]
//	name = "bread"
//	price = "2.50"
//	stock = 12
package seed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/hpungsan/shelf/internal/errors"
	"github.com/hpungsan/shelf/internal/item"
	"github.com/hpungsan/shelf/internal/ops"
)

// MaxFileSize caps how much of a seed file is read.
const MaxFileSize = 4 << 20

// File is the decoded form of a seed file.
type File struct {
	Items []Entry `json:"items" toml:"items"`
}

// Entry is one seed item. Price keeps its decimal text so it goes through the
// same parser as console input.
type Entry struct {
	Name  string         `json:"name" toml:"name"`
	Price item.PriceText `json:"price" toml:"price"`
	Stock int64          `json:"stock" toml:"stock"`
}

// Load reads the seed file at path. The format follows the extension.
func Load(path string) ([]ops.CreateInput, error) {
	f, err := openNoFollowRead(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	if len(data) > MaxFileSize {
		return nil, errors.NewValidation(fmt.Sprintf("seed file exceeds %d bytes", MaxFileSize))
	}

	file, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, err
	}
	return file.Inputs()
}

// Decode parses data in the format named by ext (".json" or ".toml").
// Unknown keys are rejected.
func Decode(ext string, data []byte) (*File, error) {
	var file File

	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, errors.NewValidation(fmt.Sprintf("invalid seed JSON: %v", err))
		}
	case ".toml":
		md, err := toml.Decode(string(data), &file)
		if err != nil {
			return nil, errors.NewValidation(fmt.Sprintf("invalid seed TOML: %v", err))
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.NewValidation(fmt.Sprintf("unknown seed keys: %v", undecoded))
		}
	default:
		return nil, errors.NewValidation(fmt.Sprintf("unsupported seed file extension %q (expected .json or .toml)", ext))
	}

	return &file, nil
}

// Inputs converts the entries into create inputs, parsing each price.
func (f *File) Inputs() ([]ops.CreateInput, error) {
	inputs := make([]ops.CreateInput, 0, len(f.Items))
	for i, e := range f.Items {
		price, err := e.Price.Parse()
		if err != nil {
			return nil, errors.NewValidation(fmt.Sprintf("seed item %d: %s", i+1, errors.As(err).Message))
		}
		inputs = append(inputs, ops.CreateInput{
			Name:  e.Name,
			Price: price,
			Stock: e.Stock,
		})
	}
	return inputs, nil
}
