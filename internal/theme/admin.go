package theme

// DefaultAdminTemplate is returned for unknown admin template ids.
const DefaultAdminTemplate = "sunset"

// AdminTemplate styles the admin panel. Colors hold utility class strings
// consumed by the panel front end.
type AdminTemplate struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Colors      AdminColors `json:"colors"`
}

type AdminColors struct {
	SidebarBg           string `json:"sidebar_bg"`
	SidebarText         string `json:"sidebar_text"`
	SidebarTextMuted    string `json:"sidebar_text_muted"`
	SidebarBorder       string `json:"sidebar_border"`
	SidebarHover        string `json:"sidebar_hover"`
	SidebarActive       string `json:"sidebar_active"`
	SidebarActiveShadow string `json:"sidebar_active_shadow"`
	LogoBg              string `json:"logo_bg"`
	LogoAccent          string `json:"logo_accent"`
	LogoShadow          string `json:"logo_shadow"`
	HeaderBg            string `json:"header_bg"`
	HeaderText          string `json:"header_text"`
	HeaderTextMuted     string `json:"header_text_muted"`
	SearchBg            string `json:"search_bg"`
	SearchBorder        string `json:"search_border"`
	SearchFocus         string `json:"search_focus"`
	MainBg              string `json:"main_bg"`
	MainPattern         string `json:"main_pattern"`
	CardBg              string `json:"card_bg"`
	CardBorder          string `json:"card_border"`
	CardText            string `json:"card_text"`
	CardTextMuted       string `json:"card_text_muted"`
	BannerGradient      string `json:"banner_gradient"`
	BannerText          string `json:"banner_text"`
	ActionPrimary       string `json:"action_primary"`
	ActionSecondary     string `json:"action_secondary"`
	ActionTertiary      string `json:"action_tertiary"`
	Accent              string `json:"accent"`
	AccentLight         string `json:"accent_light"`
	AccentGradient      string `json:"accent_gradient"`
}

var adminOrder = []string{"sunset", "ocean", "midnight"}

var adminTemplates = map[string]AdminTemplate{
	"sunset": {
		ID:          "sunset",
		Name:        "Sunset",
		Description: "Tons quentes de âmbar e laranja",
		Icon:        "🌅",
		Colors: AdminColors{
			SidebarBg:           "bg-linear-to-b from-slate-900 via-slate-800 to-slate-900",
			SidebarText:         "text-white",
			SidebarTextMuted:    "text-slate-400",
			SidebarBorder:       "border-slate-700/50",
			SidebarHover:        "hover:text-white hover:bg-slate-700/50",
			SidebarActive:       "bg-linear-to-r from-amber-500 to-orange-500 text-white shadow-lg shadow-amber-500/25",
			SidebarActiveShadow: "shadow-amber-500/25",
			LogoBg:              "bg-linear-to-r from-amber-500/10 to-orange-500/10",
			LogoAccent:          "bg-linear-to-br from-amber-400 to-orange-500",
			LogoShadow:          "shadow-amber-500/20",
			HeaderBg:            "bg-white/80",
			HeaderText:          "text-slate-900",
			HeaderTextMuted:     "text-slate-500",
			SearchBg:            "bg-slate-50",
			SearchBorder:        "border-slate-200",
			SearchFocus:         "focus:ring-amber-500/50 focus:border-amber-500",
			MainBg:              "bg-linear-to-br from-slate-50 via-white to-slate-100",
			MainPattern:         "rgb(226 232 240)",
			CardBg:              "bg-white/80",
			CardBorder:          "border-slate-200/50",
			CardText:            "text-slate-900",
			CardTextMuted:       "text-slate-500",
			BannerGradient:      "bg-linear-to-r from-amber-500 via-orange-500 to-rose-500",
			BannerText:          "text-white",
			ActionPrimary:       "bg-blue-500 hover:bg-blue-600",
			ActionSecondary:     "bg-amber-500 hover:bg-amber-600",
			ActionTertiary:      "bg-emerald-500 hover:bg-emerald-600",
			Accent:              "amber",
			AccentLight:         "text-amber-400",
			AccentGradient:      "from-amber-500 to-orange-500",
		},
	},
	"ocean": {
		ID:          "ocean",
		Name:        "Ocean",
		Description: "Azul profundo e tons de cyan",
		Icon:        "🌊",
		Colors: AdminColors{
			SidebarBg:           "bg-linear-to-b from-blue-950 via-blue-900 to-slate-900",
			SidebarText:         "text-white",
			SidebarTextMuted:    "text-blue-300/70",
			SidebarBorder:       "border-blue-700/30",
			SidebarHover:        "hover:text-white hover:bg-blue-800/50",
			SidebarActive:       "bg-linear-to-r from-cyan-500 to-blue-500 text-white shadow-lg shadow-cyan-500/25",
			SidebarActiveShadow: "shadow-cyan-500/25",
			LogoBg:              "bg-linear-to-r from-cyan-500/10 to-blue-500/10",
			LogoAccent:          "bg-linear-to-br from-cyan-400 to-blue-500",
			LogoShadow:          "shadow-cyan-500/20",
			HeaderBg:            "bg-white/80",
			HeaderText:          "text-slate-900",
			HeaderTextMuted:     "text-slate-500",
			SearchBg:            "bg-slate-50",
			SearchBorder:        "border-slate-200",
			SearchFocus:         "focus:ring-cyan-500/50 focus:border-cyan-500",
			MainBg:              "bg-linear-to-br from-blue-50/50 via-white to-cyan-50/30",
			MainPattern:         "rgb(219 234 254)",
			CardBg:              "bg-white/80",
			CardBorder:          "border-blue-100",
			CardText:            "text-slate-900",
			CardTextMuted:       "text-slate-500",
			BannerGradient:      "bg-linear-to-r from-cyan-500 via-blue-500 to-indigo-500",
			BannerText:          "text-white",
			ActionPrimary:       "bg-cyan-500 hover:bg-cyan-600",
			ActionSecondary:     "bg-blue-500 hover:bg-blue-600",
			ActionTertiary:      "bg-teal-500 hover:bg-teal-600",
			Accent:              "cyan",
			AccentLight:         "text-cyan-400",
			AccentGradient:      "from-cyan-500 to-blue-500",
		},
	},
	"midnight": {
		ID:          "midnight",
		Name:        "Midnight",
		Description: "Modo escuro elegante",
		Icon:        "🌙",
		Colors: AdminColors{
			SidebarBg:           "bg-linear-to-b from-zinc-950 via-zinc-900 to-black",
			SidebarText:         "text-white",
			SidebarTextMuted:    "text-zinc-500",
			SidebarBorder:       "border-zinc-800",
			SidebarHover:        "hover:text-white hover:bg-zinc-800",
			SidebarActive:       "bg-linear-to-r from-violet-500 to-purple-500 text-white shadow-lg shadow-violet-500/25",
			SidebarActiveShadow: "shadow-violet-500/25",
			LogoBg:              "bg-linear-to-r from-violet-500/10 to-purple-500/10",
			LogoAccent:          "bg-linear-to-br from-violet-400 to-purple-500",
			LogoShadow:          "shadow-violet-500/20",
			HeaderBg:            "bg-zinc-900/90",
			HeaderText:          "text-white",
			HeaderTextMuted:     "text-zinc-400",
			SearchBg:            "bg-zinc-800",
			SearchBorder:        "border-zinc-700",
			SearchFocus:         "focus:ring-violet-500/50 focus:border-violet-500",
			MainBg:              "bg-linear-to-br from-zinc-900 via-zinc-950 to-black",
			MainPattern:         "rgb(39 39 42)",
			CardBg:              "bg-zinc-800/80",
			CardBorder:          "border-zinc-700/50",
			CardText:            "text-white",
			CardTextMuted:       "text-zinc-400",
			BannerGradient:      "bg-linear-to-r from-violet-600 via-purple-600 to-fuchsia-600",
			BannerText:          "text-white",
			ActionPrimary:       "bg-violet-500 hover:bg-violet-600",
			ActionSecondary:     "bg-purple-500 hover:bg-purple-600",
			ActionTertiary:      "bg-fuchsia-500 hover:bg-fuchsia-600",
			Accent:              "violet",
			AccentLight:         "text-violet-400",
			AccentGradient:      "from-violet-500 to-purple-500",
		},
	},
}

// Admin returns the admin template with the given id, or the default template.
func Admin(id string) AdminTemplate {
	if t, ok := adminTemplates[id]; ok {
		return t
	}
	return adminTemplates[DefaultAdminTemplate]
}

// AdminTemplates lists the catalog in display order.
func AdminTemplates() []AdminTemplate {
	out := make([]AdminTemplate, 0, len(adminOrder))
	for _, id := range adminOrder {
		out = append(out, adminTemplates[id])
	}
	return out
}

func IsAdminTemplate(id string) bool {
	_, ok := adminTemplates[id]
	return ok
}
