package core

// CategoryEntry pairs a category name with its display glyph.
type CategoryEntry struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// The catalog is static for the process lifetime. Transactions reference
// categories by name only; unknown names are stored as-is and resolve to
// the kind's default glyph at display time.
var (
	expenseCategories = []CategoryEntry{
		{Name: "Food & Dining", Icon: "🍔"},
		{Name: "Transportation", Icon: "🚗"},
		{Name: "Shopping", Icon: "🛍️"},
		{Name: "Entertainment", Icon: "🎬"},
		{Name: "Bills & Utilities", Icon: "💡"},
		{Name: "Health & Fitness", Icon: "🏥"},
		{Name: "Travel", Icon: "✈️"},
		{Name: "Other", Icon: "📦"},
	}

	incomeCategories = []CategoryEntry{
		{Name: "Salary", Icon: "🏢"},
		{Name: "Freelance", Icon: "💼"},
		{Name: "Investment", Icon: "📈"},
		{Name: "Gift", Icon: "🎁"},
		{Name: "Other", Icon: "💰"},
	}
)

const (
	defaultExpenseIcon = "📦"
	defaultIncomeIcon  = "💰"
)

// Categories returns the catalog entries for a transaction kind, in display
// order. The returned slice is a copy.
func Categories(kind TransactionKind) []CategoryEntry {
	switch kind {
	case Income:
		return append([]CategoryEntry{}, incomeCategories...)
	default:
		return append([]CategoryEntry{}, expenseCategories...)
	}
}

// IconFor resolves the display glyph for a category name. Unknown names
// fall back to the kind's default glyph; lookup never fails.
func IconFor(kind TransactionKind, name string) string {
	for _, c := range Categories(kind) {
		if c.Name == name {
			return c.Icon
		}
	}
	if kind == Income {
		return defaultIncomeIcon
	}
	return defaultExpenseIcon
}
