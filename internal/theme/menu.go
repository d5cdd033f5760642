// Package theme holds the two fixed template catalogs: menu templates that
// style the public menu page, and admin templates that style the admin panel.
// Lookups never fail; unknown or empty ids resolve to the catalog default.
package theme

import (
	"fmt"
	"strings"
)

// DefaultMenuTemplate is returned for unknown menu template ids.
const DefaultMenuTemplate = "neo-brutal"

// MenuTemplate is a self-contained set of style tokens for the public menu.
type MenuTemplate struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Preview     string     `json:"preview"`
	Styles      MenuStyles `json:"styles"`
}

type MenuStyles struct {
	Background          string `json:"background"`
	Foreground          string `json:"foreground"`
	Primary             string `json:"primary"`
	PrimaryForeground   string `json:"primary_foreground"`
	Secondary           string `json:"secondary"`
	SecondaryForeground string `json:"secondary_foreground"`
	Muted               string `json:"muted"`
	MutedForeground     string `json:"muted_foreground"`
	Accent              string `json:"accent"`
	AccentForeground    string `json:"accent_foreground"`
	Border              string `json:"border"`
	BorderWidth         string `json:"border_width"`
	BorderRadius        string `json:"border_radius"`
	Shadow              string `json:"shadow"`
	FontHeading         string `json:"font_heading"`
	FontBody            string `json:"font_body"`
}

var menuOrder = []string{"neo-brutal", "minimal", "dark", "colorful", "rustic"}

var menuTemplates = map[string]MenuTemplate{
	"neo-brutal": {
		ID:          "neo-brutal",
		Name:        "Neo Brutal",
		Description: "Bordas marcadas, sombras duras, alto contraste",
		Preview:     "⚡",
		Styles: MenuStyles{
			Background:          "#FFFBEB",
			Foreground:          "#1C1917",
			Primary:             "#FACC15",
			PrimaryForeground:   "#1C1917",
			Secondary:           "#FEF3C7",
			SecondaryForeground: "#1C1917",
			Muted:               "#F5F5F4",
			MutedForeground:     "#78716C",
			Accent:              "#1C1917",
			AccentForeground:    "#FACC15",
			Border:              "#1C1917",
			BorderWidth:         "2px",
			BorderRadius:        "0px",
			Shadow:              "4px 4px 0px #1C1917",
			FontHeading:         "'Space Grotesk', sans-serif",
			FontBody:            "'Inter', sans-serif",
		},
	},
	"minimal": {
		ID:          "minimal",
		Name:        "Minimal",
		Description: "Clean, elegante, muito espaço branco",
		Preview:     "✨",
		Styles: MenuStyles{
			Background:          "#FFFFFF",
			Foreground:          "#171717",
			Primary:             "#171717",
			PrimaryForeground:   "#FFFFFF",
			Secondary:           "#FAFAFA",
			SecondaryForeground: "#171717",
			Muted:               "#F5F5F5",
			MutedForeground:     "#737373",
			Accent:              "#171717",
			AccentForeground:    "#FFFFFF",
			Border:              "#E5E5E5",
			BorderWidth:         "1px",
			BorderRadius:        "8px",
			Shadow:              "0 1px 3px rgba(0,0,0,0.1)",
			FontHeading:         "'Outfit', sans-serif",
			FontBody:            "'Inter', sans-serif",
		},
	},
	"dark": {
		ID:          "dark",
		Name:        "Dark Mode",
		Description: "Fundo escuro, detalhes dourados, sofisticado",
		Preview:     "🌙",
		Styles: MenuStyles{
			Background:          "#0A0A0A",
			Foreground:          "#FAFAFA",
			Primary:             "#D4AF37",
			PrimaryForeground:   "#0A0A0A",
			Secondary:           "#1C1C1C",
			SecondaryForeground: "#FAFAFA",
			Muted:               "#262626",
			MutedForeground:     "#A3A3A3",
			Accent:              "#D4AF37",
			AccentForeground:    "#0A0A0A",
			Border:              "#2A2A2A",
			BorderWidth:         "1px",
			BorderRadius:        "4px",
			Shadow:              "0 4px 12px rgba(0,0,0,0.5)",
			FontHeading:         "'Playfair Display', serif",
			FontBody:            "'Inter', sans-serif",
		},
	},
	"colorful": {
		ID:          "colorful",
		Name:        "Colorful",
		Description: "Vibrante, gradientes suaves, divertido",
		Preview:     "🌈",
		Styles: MenuStyles{
			Background:          "#FDF2F8",
			Foreground:          "#1E293B",
			Primary:             "#EC4899",
			PrimaryForeground:   "#FFFFFF",
			Secondary:           "#E0F2FE",
			SecondaryForeground: "#1E293B",
			Muted:               "#F1F5F9",
			MutedForeground:     "#64748B",
			Accent:              "#8B5CF6",
			AccentForeground:    "#FFFFFF",
			Border:              "#E2E8F0",
			BorderWidth:         "2px",
			BorderRadius:        "16px",
			Shadow:              "0 4px 14px rgba(236, 72, 153, 0.15)",
			FontHeading:         "'Poppins', sans-serif",
			FontBody:            "'Inter', sans-serif",
		},
	},
	"rustic": {
		ID:          "rustic",
		Name:        "Rustic",
		Description: "Tons terrosos, acolhedor, tradicional",
		Preview:     "🍕",
		Styles: MenuStyles{
			Background:          "#FFFBF5",
			Foreground:          "#3D2314",
			Primary:             "#8B4513",
			PrimaryForeground:   "#FFFBF5",
			Secondary:           "#F5E6D3",
			SecondaryForeground: "#3D2314",
			Muted:               "#EDE0D4",
			MutedForeground:     "#6B5344",
			Accent:              "#2D5016",
			AccentForeground:    "#FFFBF5",
			Border:              "#D4C4B0",
			BorderWidth:         "1px",
			BorderRadius:        "4px",
			Shadow:              "0 2px 8px rgba(61, 35, 20, 0.1)",
			FontHeading:         "'Playfair Display', serif",
			FontBody:            "'Lora', serif",
		},
	},
}

// Menu returns the menu template with the given id, or the default template.
func Menu(id string) MenuTemplate {
	if t, ok := menuTemplates[id]; ok {
		return t
	}
	return menuTemplates[DefaultMenuTemplate]
}

// MenuTemplates lists the catalog in display order.
func MenuTemplates() []MenuTemplate {
	out := make([]MenuTemplate, 0, len(menuOrder))
	for _, id := range menuOrder {
		out = append(out, menuTemplates[id])
	}
	return out
}

func IsMenuTemplate(id string) bool {
	_, ok := menuTemplates[id]
	return ok
}

// CSSVariables renders the template's tokens as CSS custom property
// declarations, one per line, for a :root or wrapper selector.
func CSSVariables(t MenuTemplate) string {
	s := t.Styles
	vars := [][2]string{
		{"background", s.Background},
		{"foreground", s.Foreground},
		{"primary", s.Primary},
		{"primary-foreground", s.PrimaryForeground},
		{"secondary", s.Secondary},
		{"secondary-foreground", s.SecondaryForeground},
		{"muted", s.Muted},
		{"muted-foreground", s.MutedForeground},
		{"accent", s.Accent},
		{"accent-foreground", s.AccentForeground},
		{"border", s.Border},
		{"border-width", s.BorderWidth},
		{"radius", s.BorderRadius},
		{"shadow", s.Shadow},
		{"font-heading", s.FontHeading},
		{"font-body", s.FontBody},
	}
	var b strings.Builder
	for _, v := range vars {
		fmt.Fprintf(&b, "--%s: %s;\n", v[0], v[1])
	}
	return b.String()
}
