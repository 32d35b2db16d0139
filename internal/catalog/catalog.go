package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Audience string

const (
	AudienceFamily   Audience = "family"
	AudienceInvestor Audience = "investor"
	AudienceSingle   Audience = "single"
)

type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneEmotional    Tone = "emotional"
	ToneLuxury       Tone = "luxury"
)

type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Style is the furniture style applied to furnish instructions.
type Style string

const (
	StyleNordic     Style = "nordic"
	StyleModern     Style = "modern"
	StyleIndustrial Style = "industrial"
)

var (
	Audiences = []Audience{AudienceFamily, AudienceInvestor, AudienceSingle}
	Tones     = []Tone{ToneProfessional, ToneEmotional, ToneLuxury}
	Lengths   = []Length{LengthShort, LengthMedium, LengthLong}
	Styles    = []Style{StyleNordic, StyleModern, StyleIndustrial}
)

const (
	DefaultAudience = AudienceFamily
	DefaultTone     = ToneEmotional
	DefaultLength   = LengthMedium
	DefaultStyle    = StyleNordic
)

//go:embed default.yaml
var defaultYAML []byte

type StyleFragment struct {
	Name   string `yaml:"name"`
	Prompt string `yaml:"prompt"`
}

type captionFragments struct {
	Tones     map[Tone]string     `yaml:"tones"`
	Audiences map[Audience]string `yaml:"audiences"`
	Body      string              `yaml:"body"`
	Endings   map[Length]string   `yaml:"endings"`
}

type instructionFragments struct {
	Furnish string `yaml:"furnish"`
	Empty   string `yaml:"empty"`
}

type labelFragments struct {
	Audiences map[Audience]string `yaml:"audiences"`
	Tones     map[Tone]string     `yaml:"tones"`
	Lengths   map[Length]string   `yaml:"lengths"`
}

// Catalog holds every natural-language fragment used by the caption
// generator and the instruction builder.
type Catalog struct {
	Captions     captionFragments        `yaml:"caption"`
	Styles       map[Style]StyleFragment `yaml:"styles"`
	Instructions instructionFragments    `yaml:"instructions"`
	Labels       labelFragments          `yaml:"labels"`
}

// Default returns the embedded fragment set.
func Default() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded default is invalid: %v", err))
	}
	return c
}

// Load reads a fragment file, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	var missing []string
	for _, t := range Tones {
		if strings.TrimSpace(c.Captions.Tones[t]) == "" {
			missing = append(missing, "caption.tones."+string(t))
		}
	}
	for _, a := range Audiences {
		if strings.TrimSpace(c.Captions.Audiences[a]) == "" {
			missing = append(missing, "caption.audiences."+string(a))
		}
	}
	if strings.TrimSpace(c.Captions.Body) == "" {
		missing = append(missing, "caption.body")
	}
	for _, l := range Lengths {
		if strings.TrimSpace(c.Captions.Endings[l]) == "" {
			missing = append(missing, "caption.endings."+string(l))
		}
	}
	for _, s := range Styles {
		if strings.TrimSpace(c.Styles[s].Prompt) == "" {
			missing = append(missing, "styles."+string(s)+".prompt")
		}
	}
	if !strings.Contains(c.Instructions.Furnish, "{style}") {
		missing = append(missing, "instructions.furnish ({style} placeholder)")
	}
	if strings.TrimSpace(c.Instructions.Empty) == "" {
		missing = append(missing, "instructions.empty")
	}
	if len(missing) > 0 {
		return errors.New("missing fragments: " + strings.Join(missing, ", "))
	}
	return nil
}

type NamedOption struct {
	Key  string
	Name string
}

func (c *Catalog) AudienceOptions() []NamedOption {
	out := make([]NamedOption, 0, len(Audiences))
	for _, a := range Audiences {
		out = append(out, NamedOption{Key: string(a), Name: labelOr(c.Labels.Audiences[a], string(a))})
	}
	return out
}

func (c *Catalog) ToneOptions() []NamedOption {
	out := make([]NamedOption, 0, len(Tones))
	for _, t := range Tones {
		out = append(out, NamedOption{Key: string(t), Name: labelOr(c.Labels.Tones[t], string(t))})
	}
	return out
}

func (c *Catalog) LengthOptions() []NamedOption {
	out := make([]NamedOption, 0, len(Lengths))
	for _, l := range Lengths {
		out = append(out, NamedOption{Key: string(l), Name: labelOr(c.Labels.Lengths[l], string(l))})
	}
	return out
}

func (c *Catalog) StyleOptions() []NamedOption {
	out := make([]NamedOption, 0, len(Styles))
	for _, s := range Styles {
		out = append(out, NamedOption{Key: string(s), Name: labelOr(c.Styles[s].Name, string(s))})
	}
	return out
}

func labelOr(label, fallback string) string {
	if strings.TrimSpace(label) == "" {
		return fallback
	}
	return label
}
