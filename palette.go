package verdure

const twemojiBase = "https://raw.githubusercontent.com/twitter/twemoji/master/assets/72x72/"

// Fallback icons for unknown/custom types.
const (
	fallbackTreeIcon = twemojiBase + "1f333.png"
	fallbackItemIcon = twemojiBase + "2b50.png"
)

// Translator resolves a template key to a display name. Palettes accept any
// lookup; nil means keys are used verbatim.
type Translator func(key string) string

// Template describes a placeable item type in the palette.
type Template struct {
	ID       string
	Name     string
	Category Category
	ImageURL string
}

// Palette is the set of predefined item templates, grouped by category.
type Palette struct {
	Trees     []Template
	Buildings []Template
	Other     []Template

	byID map[string]Template
}

// NewPalette builds the predefined palette, resolving display names through
// t when given.
func NewPalette(t Translator) *Palette {
	if t == nil {
		t = func(key string) string { return key }
	}
	p := &Palette{
		Trees: []Template{
			{ID: "olive", Name: t("olive"), Category: CategoryTree, ImageURL: twemojiBase + "1fad2.png"},
			{ID: "orange", Name: t("orange"), Category: CategoryTree, ImageURL: twemojiBase + "1f34a.png"},
			{ID: "lemon", Name: t("lemon"), Category: CategoryTree, ImageURL: twemojiBase + "1f34b.png"},
			{ID: "fig", Name: t("fig"), Category: CategoryTree, ImageURL: twemojiBase + "1f96d.png"},
			{ID: "herbs", Name: t("herbs"), Category: CategoryTree, ImageURL: twemojiBase + "1f33f.png"},
			{ID: "other-tree", Name: t("other-tree"), Category: CategoryTree, ImageURL: twemojiBase + "1f334.png"},
		},
		Buildings: []Template{
			{ID: "trullo", Name: t("trullo"), Category: CategoryBuilding, ImageURL: twemojiBase + "1f6d6.png"},
			{ID: "kitchen", Name: t("kitchen"), Category: CategoryBuilding, ImageURL: twemojiBase + "1f373.png"},
			{ID: "campfire", Name: t("campfire"), Category: CategoryBuilding, ImageURL: twemojiBase + "1f525.png"},
			{ID: "toilet", Name: t("toilet"), Category: CategoryBuilding, ImageURL: twemojiBase + "1f6be.png"},
			{ID: "storage", Name: t("storage"), Category: CategoryBuilding, ImageURL: twemojiBase + "1f4e6.png"},
			{ID: "custom-building", Name: t("custom-building"), Category: CategoryBuilding, ImageURL: twemojiBase + "1f3d7.png"},
		},
		Other: []Template{
			{ID: "entrance", Name: t("entrance"), Category: CategoryOther, ImageURL: twemojiBase + "1f6a7.png"},
			{ID: "hammock", Name: t("hammock"), Category: CategoryOther, ImageURL: twemojiBase + "1f6cf.png"},
			{ID: "custom", Name: t("custom"), Category: CategoryOther, ImageURL: twemojiBase + "2b50.png"},
		},
	}
	p.byID = make(map[string]Template)
	for _, group := range [][]Template{p.Trees, p.Buildings, p.Other} {
		for _, tpl := range group {
			p.byID[tpl.ID] = tpl
		}
	}
	return p
}

// Lookup returns the template for a type key.
func (p *Palette) Lookup(typeID string) (Template, bool) {
	tpl, ok := p.byID[typeID]
	return tpl, ok
}

// All returns every template in palette order.
func (p *Palette) All() []Template {
	out := make([]Template, 0, len(p.Trees)+len(p.Buildings)+len(p.Other))
	out = append(out, p.Trees...)
	out = append(out, p.Buildings...)
	out = append(out, p.Other...)
	return out
}

// CategoryOf classifies a type key. Unknown types are CategoryOther unless
// asTree is true, matching how custom tree types keep their table.
func (p *Palette) CategoryOf(typeID string) Category {
	if tpl, ok := p.byID[typeID]; ok {
		return tpl.Category
	}
	return CategoryOther
}

// TreeIcon resolves the icon for a tree type: the predefined icon, then the
// other-tree icon, then the hard fallback.
func (p *Palette) TreeIcon(typeID string) string {
	if tpl, ok := p.byID[typeID]; ok && tpl.Category == CategoryTree {
		return tpl.ImageURL
	}
	if tpl, ok := p.byID["other-tree"]; ok {
		return tpl.ImageURL
	}
	return fallbackTreeIcon
}

// ItemIcon resolves the icon for a building/other type, falling back to the
// star icon for unknown types.
func (p *Palette) ItemIcon(typeID string) string {
	if tpl, ok := p.byID[typeID]; ok && tpl.Category != CategoryTree {
		return tpl.ImageURL
	}
	return fallbackItemIcon
}

// Known reports whether the type key belongs to the predefined set.
func (p *Palette) Known(typeID string) bool {
	_, ok := p.byID[typeID]
	return ok
}
