package seo

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Pages []Bundle `yaml:"pages"`
}

// LoadBundles decodes a YAML seed document of the form
//
//	pages:
//	  - page_name: Home
//	    meta_title: ...
func LoadBundles(r io.Reader) ([]Bundle, error) {
	var f seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	for i, b := range f.Pages {
		if firstNonBlank(b.PageName) == "" {
			return nil, fmt.Errorf("seed entry %d: %w", i, ErrInvalidPageName)
		}
	}
	return f.Pages, nil
}
