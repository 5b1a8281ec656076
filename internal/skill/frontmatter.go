package skill

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
)

// Frontmatter is the typed view of the allowed SKILL.md header keys. Only
// Name and Description are required; the rest are optional.
type Frontmatter struct {
	Name                   string         `mapstructure:"name"`
	Description            string         `mapstructure:"description"`
	License                string         `mapstructure:"license"`
	AllowedTools           any            `mapstructure:"allowed-tools"`
	Metadata               map[string]any `mapstructure:"metadata"`
	Version                string         `mapstructure:"version"`
	Model                  string         `mapstructure:"model"`
	DisableModelInvocation bool           `mapstructure:"disable-model-invocation"`
	UserInvocable          *bool          `mapstructure:"user-invocable"`
	Context                string         `mapstructure:"context"`
	Agent                  string         `mapstructure:"agent"`
	ArgumentHint           string         `mapstructure:"argument-hint"`
	Hooks                  map[string]any `mapstructure:"hooks"`
	Compatibility          any            `mapstructure:"compatibility"`
}

// AllowedKeys is the set of top-level header keys a SKILL.md may use.
var AllowedKeys = []string{
	"name",
	"description",
	"license",
	"allowed-tools",
	"metadata",
	"version",
	"model",
	"disable-model-invocation",
	"user-invocable",
	"context",
	"agent",
	"argument-hint",
	"hooks",
	"compatibility",
}

var allowedKeySet = func() map[string]bool {
	m := make(map[string]bool, len(AllowedKeys))
	for _, k := range AllowedKeys {
		m[k] = true
	}
	return m
}()

// IsAllowedKey reports whether key may appear in the header.
func IsAllowedKey(key string) bool { return allowedKeySet[key] }

// DecodeFrontmatter decodes a parsed header mapping. Scalars are converted
// weakly (a numeric version becomes a string). When an optional field has an
// unusable shape the error is returned together with a Frontmatter that still
// carries string name and description values.
func DecodeFrontmatter(fields map[string]any) (*Frontmatter, error) {
	var fm Frontmatter
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &fm,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating frontmatter decoder: %w", err)
	}
	if err := dec.Decode(fields); err != nil {
		partial := &Frontmatter{}
		partial.Name, _ = fields["name"].(string)
		partial.Description, _ = fields["description"].(string)
		return partial, fmt.Errorf("decoding frontmatter: %w", err)
	}
	return &fm, nil
}
