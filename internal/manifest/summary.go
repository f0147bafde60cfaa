package manifest

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/quantmind-br/tiappxml/internal/xmldoc"
)

// Summary holds the top-level application metadata of a manifest
type Summary struct {
	File        string `json:"file,omitempty" yaml:"file,omitempty"`
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Publisher   string `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Copyright   string `json:"copyright,omitempty" yaml:"copyright,omitempty"`
	GUID        string `json:"guid,omitempty" yaml:"guid,omitempty"`
	SDKVersion  string `json:"sdk_version,omitempty" yaml:"sdk_version,omitempty"`
}

// Summarize reads the metadata elements directly under the root element.
// Missing elements are left empty.
func Summarize(doc *xmldoc.Document) Summary {
	text := func(name string) string {
		// expressions are constant and known to compile
		v, _ := doc.Text("/*/" + name)
		return v
	}

	return Summary{
		ID:          text("id"),
		Name:        text("name"),
		Version:     text("version"),
		Publisher:   text("publisher"),
		URL:         text("url"),
		Description: text("description"),
		Copyright:   text("copyright"),
		GUID:        text("guid"),
		SDKVersion:  text("sdk-version"),
	}
}

// Summary summarizes the currently held document. File is only set when
// the document was loaded from it.
func (t *Tiapp) Summary() (Summary, error) {
	t.mu.RLock()
	file, doc, state := t.file, t.doc, t.stateLocked()
	t.mu.RUnlock()

	if doc == nil {
		return Summary{}, ErrNotLoaded
	}

	s := Summarize(doc)
	if state == Loaded {
		s.File = file
	}
	return s, nil
}

// ParseSDKVersion parses an SDK version such as "12.2.0.GA".
// A fourth dot-separated qualifier becomes semver build metadata, so
// "12.2.0.GA" parses as "12.2.0+GA".
func ParseSDKVersion(s string) (*semver.Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty sdk version", ErrInvalidArgument)
	}

	if parts := strings.SplitN(s, ".", 4); len(parts) == 4 {
		s = strings.Join(parts[:3], ".") + "+" + parts[3]
	}

	v, err := semver.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("invalid sdk version %q: %w", s, err)
	}
	return v, nil
}

// SDKSatisfies reports whether the summary's sdk-version meets a semver
// constraint such as ">= 12.0.0".
func (s Summary) SDKSatisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("%w: invalid constraint %q: %v", ErrInvalidArgument, constraint, err)
	}

	v, err := ParseSDKVersion(s.SDKVersion)
	if err != nil {
		return false, err
	}
	return c.Check(v), nil
}
