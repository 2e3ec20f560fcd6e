// Package yaml loads site profiles from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/cinedex"
	"gopkg.in/yaml.v3"
)

// LoadSiteProfile reads a site profile from path. Keys present in the file
// override the default profile; absent keys keep their default values.
// Unknown keys are rejected so that a misspelled selector does not
// silently fall back to the default.
func LoadSiteProfile(path string) (*cinedex.SiteProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cinedex.Errorf(cinedex.ENOTFOUND, "profile %s not found", path)
		}
		return nil, err
	}
	return ParseSiteProfile(data)
}

// ParseSiteProfile decodes a YAML profile over the default profile and
// validates the result.
func ParseSiteProfile(data []byte) (*cinedex.SiteProfile, error) {
	p := cinedex.DefaultSiteProfile()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil && !errors.Is(err, io.EOF) {
		return nil, cinedex.Errorf(cinedex.EINVALID, "parse profile: %v", err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
