package handlers

import (
	"strings"
	"unicode"

	"twins-digital-web/internal/catalog"
	"twins-digital-web/internal/staging"
)

var actionWords = map[string]staging.Action{
	"vaciar":    staging.ActionEmpty,
	"vacia":     staging.ActionEmpty,
	"vacía":     staging.ActionEmpty,
	"limpiar":   staging.ActionEmpty,
	"empty":     staging.ActionEmpty,
	"original":  staging.ActionNone,
	"nada":      staging.ActionNone,
	"none":      staging.ActionNone,
	"amueblar":  staging.ActionFurnish,
	"furnish":   staging.ActionFurnish,
	"decorar":   staging.ActionFurnish,
	"amueblado": staging.ActionFurnish,
}

var styleWords = map[string]catalog.Style{
	"nordic":      catalog.StyleNordic,
	"nórdico":     catalog.StyleNordic,
	"nordico":     catalog.StyleNordic,
	"ikea":        catalog.StyleNordic,
	"modern":      catalog.StyleModern,
	"moderno":     catalog.StyleModern,
	"minimalista": catalog.StyleModern,
	"industrial":  catalog.StyleIndustrial,
	"loft":        catalog.StyleIndustrial,
}

var audienceWords = map[string]catalog.Audience{
	"family":        catalog.AudienceFamily,
	"familia":       catalog.AudienceFamily,
	"familias":      catalog.AudienceFamily,
	"investor":      catalog.AudienceInvestor,
	"inversionista": catalog.AudienceInvestor,
	"inversor":      catalog.AudienceInvestor,
	"single":        catalog.AudienceSingle,
	"soltero":       catalog.AudienceSingle,
	"joven":         catalog.AudienceSingle,
}

var toneWords = map[string]catalog.Tone{
	"professional": catalog.ToneProfessional,
	"profesional":  catalog.ToneProfessional,
	"emotional":    catalog.ToneEmotional,
	"emocional":    catalog.ToneEmotional,
	"luxury":       catalog.ToneLuxury,
	"lujo":         catalog.ToneLuxury,
	"exclusivo":    catalog.ToneLuxury,
}

var lengthWords = map[string]catalog.Length{
	"short":  catalog.LengthShort,
	"corto":  catalog.LengthShort,
	"medium": catalog.LengthMedium,
	"medio":  catalog.LengthMedium,
	"long":   catalog.LengthLong,
	"largo":  catalog.LengthLong,
}

// request is what a photo caption or /anuncio arguments ask for. Words the
// parser does not know are ignored; unset selectors keep their defaults.
type request struct {
	Action   staging.Action
	Settings staging.Settings
	Unknown  []string
}

func parseRequest(text string) request {
	req := request{
		Action:   staging.ActionFurnish,
		Settings: staging.DefaultSettings(),
	}

	for _, word := range words(text) {
		if a, ok := actionWords[word]; ok {
			req.Action = a
			continue
		}
		if s, ok := styleWords[word]; ok {
			req.Settings.Style = s
			continue
		}
		if a, ok := audienceWords[word]; ok {
			req.Settings.Audience = a
			continue
		}
		if t, ok := toneWords[word]; ok {
			req.Settings.Tone = t
			continue
		}
		if l, ok := lengthWords[word]; ok {
			req.Settings.Length = l
			continue
		}
		req.Unknown = append(req.Unknown, word)
	}
	return req
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
