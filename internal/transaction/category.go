package transaction

// CategoryMeta is the display metadata for a spending category.
type CategoryMeta struct {
	ID   string `json:"id"`
	Icon string `json:"icon"`
	Name string `json:"name"`
}

// CategoryOther is the fallback category for missing or unknown values.
const CategoryOther = "other"

// categoryMeta is the fixed category table. Lookups for anything not listed
// here resolve to the "other" entry; the stored category value itself is kept
// as-is.
var categoryMeta = map[string]CategoryMeta{
	"food":          {ID: "food", Icon: "🍔", Name: "Food & Dining"},
	"transport":     {ID: "transport", Icon: "🚗", Name: "Transportation"},
	"shopping":      {ID: "shopping", Icon: "🛍️", Name: "Shopping"},
	"entertainment": {ID: "entertainment", Icon: "🎬", Name: "Entertainment"},
	"bills":         {ID: "bills", Icon: "💡", Name: "Bills & Utilities"},
	"health":        {ID: "health", Icon: "⚕️", Name: "Healthcare"},
	"education":     {ID: "education", Icon: "📚", Name: "Education"},
	"salary":        {ID: "salary", Icon: "💼", Name: "Salary"},
	CategoryOther:   {ID: CategoryOther, Icon: "📦", Name: "Other"},
}

// categoryOrder fixes the presentation order of the table.
var categoryOrder = []string{
	"food", "transport", "shopping", "entertainment", "bills",
	"health", "education", "salary", CategoryOther,
}

// Categories returns the fixed category table in presentation order.
func Categories() []CategoryMeta {
	metas := make([]CategoryMeta, len(categoryOrder))
	for i, id := range categoryOrder {
		metas[i] = categoryMeta[id]
	}

	return metas
}

// CategoryIcon returns the icon for a category, falling back to "other".
func CategoryIcon(category string) string {
	return categoryLookup(category).Icon
}

// CategoryName returns the display name for a category, falling back to "other".
func CategoryName(category string) string {
	return categoryLookup(category).Name
}

func categoryLookup(category string) CategoryMeta {
	if meta, ok := categoryMeta[category]; ok {
		return meta
	}

	return categoryMeta[CategoryOther]
}
