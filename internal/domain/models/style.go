package models

import (
	"sort"
	"strings"
)

// StyleOption maps a selectable key to the prompt fragment it stands for.
type StyleOption struct {
	Key      string `json:"key"`
	Fragment string `json:"fragment"`
}

// StyleCatalog is the static table of art styles and color tones offered
// on the generation form.
type StyleCatalog struct {
	ArtStyles  map[string]string
	ColorTones map[string]string
}

func DefaultStyleCatalog() StyleCatalog {
	return StyleCatalog{
		ArtStyles: map[string]string{
			"디지털아트":    "digital art, highly detailed",
			"수채화":      "watercolor painting, soft brushstrokes",
			"유화":       "oil painting, textured",
			"펜화":       "pen and ink drawing, line art",
			"연필화":      "pencil sketch, detailed shading",
			"로고_미니멀":   "minimal logo design, clean lines, simple shapes, professional, vector style",
			"로고_3D":    "3D logo design, depth, glossy surface, professional branding, modern",
			"로고_그라디언트": "gradient logo design, smooth color transitions, modern branding, professional",
			"로고_빈티지":   "vintage logo design, retro style, classic branding, timeless",
			"로고_모던":    "modern logo design, contemporary style, sleek, professional branding",
		},
		ColorTones: map[string]string{
			"밝은":  "bright colors, vibrant, high key lighting",
			"어두운": "dark tones, moody, low key lighting",
			"파스텔": "pastel colors, soft tones",
			"흑백":  "black and white, monochrome",
			"컬러풀": "colorful, saturated colors",
			"모노톤": "monochromatic color scheme, professional, clean",
			"메탈릭": "metallic finish, silver and gold tones, premium look",
		},
	}
}

func (c StyleCatalog) HasArtStyle(key string) bool {
	_, ok := c.ArtStyles[key]
	return ok
}

func (c StyleCatalog) HasColorTone(key string) bool {
	_, ok := c.ColorTones[key]
	return ok
}

// EnhancePrompt appends the style fragments to a user prompt. Unknown keys
// are passed through as-is.
func (c StyleCatalog) EnhancePrompt(prompt, artStyle, colorTone string) string {
	parts := []string{strings.TrimSpace(prompt)}

	if frag, ok := c.ArtStyles[artStyle]; ok {
		parts = append(parts, frag)
	} else if artStyle != "" {
		parts = append(parts, artStyle)
	}

	if frag, ok := c.ColorTones[colorTone]; ok {
		parts = append(parts, frag)
	} else if colorTone != "" {
		parts = append(parts, colorTone)
	}

	return strings.Join(parts, ", ")
}

// Options returns both tables as key-sorted slices.
func (c StyleCatalog) Options() (artStyles, colorTones []StyleOption) {
	return sortedOptions(c.ArtStyles), sortedOptions(c.ColorTones)
}

func sortedOptions(m map[string]string) []StyleOption {
	out := make([]StyleOption, 0, len(m))
	for k, v := range m {
		out = append(out, StyleOption{Key: k, Fragment: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
