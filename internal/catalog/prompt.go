package catalog

import (
	"fmt"
	"strings"
)

func ParseAudience(s string) (Audience, error) {
	switch a := Audience(normalize(s)); a {
	case AudienceFamily, AudienceInvestor, AudienceSingle:
		return a, nil
	}
	return "", fmt.Errorf("unknown audience %q", s)
}

func ParseTone(s string) (Tone, error) {
	switch t := Tone(normalize(s)); t {
	case ToneProfessional, ToneEmotional, ToneLuxury:
		return t, nil
	}
	return "", fmt.Errorf("unknown tone %q", s)
}

func ParseLength(s string) (Length, error) {
	switch l := Length(normalize(s)); l {
	case LengthShort, LengthMedium, LengthLong:
		return l, nil
	}
	return "", fmt.Errorf("unknown length %q", s)
}

func ParseStyle(s string) (Style, error) {
	switch st := Style(normalize(s)); st {
	case StyleNordic, StyleModern, StyleIndustrial:
		return st, nil
	}
	return "", fmt.Errorf("unknown furniture style %q", s)
}

// Caption concatenates the tone opening, the audience sentence, the constant
// body and the length closing, in that order. It is pure: the same inputs
// always produce the same bytes.
func (c *Catalog) Caption(audience Audience, tone Tone, length Length) string {
	return strings.Join([]string{
		c.Captions.Tones[tone],
		c.Captions.Audiences[audience],
		c.Captions.Body,
		c.Captions.Endings[length],
	}, " ")
}

// FurnishInstruction builds the virtual staging instruction for style.
// Unknown styles fall back to the default style.
func (c *Catalog) FurnishInstruction(style Style) string {
	frag, ok := c.Styles[style]
	if !ok {
		frag = c.Styles[DefaultStyle]
	}
	return strings.TrimSpace(strings.ReplaceAll(c.Instructions.Furnish, "{style}", frag.Prompt))
}

// EmptyInstruction builds the virtual decluttering instruction.
func (c *Catalog) EmptyInstruction() string {
	return strings.TrimSpace(c.Instructions.Empty)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
