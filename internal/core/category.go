package core

// Category tags a transaction within a fixed vocabulary. The set is closed
// and partitioned by transaction type; there is no user-defined taxonomy.
type Category string

// Income categories.
const (
	CategorySalary      Category = "salary"
	CategoryFreelance   Category = "freelance"
	CategoryInvestment  Category = "investment"
	CategoryGift        Category = "gift"
	CategoryOtherIncome Category = "other_income"
)

// Expense categories.
const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryEducation     Category = "education"
	CategoryBills         Category = "bills"
	CategoryOtherExpense  Category = "other_expense"
)

var incomeCategories = []Category{
	CategorySalary,
	CategoryFreelance,
	CategoryInvestment,
	CategoryGift,
	CategoryOtherIncome,
}

var expenseCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHealth,
	CategoryEducation,
	CategoryBills,
	CategoryOtherExpense,
}

// CategoriesFor returns the vocabulary for one transaction type, in display
// order. The returned slice must not be mutated.
func CategoriesFor(t Type) []Category {
	if t == Income {
		return incomeCategories
	}
	return expenseCategories
}

// BelongsTo reports whether the category is part of the given type's set.
func (c Category) BelongsTo(t Type) bool {
	for _, known := range CategoriesFor(t) {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory validates a submitted tag against the type's vocabulary.
// Used at the input boundary, where an unknown tag is a caller error.
func ParseCategory(tag string, t Type) (Category, error) {
	c := Category(tag)
	if !c.BelongsTo(t) {
		return "", ErrUnknownCategory
	}
	return c, nil
}

// FallbackCategory is the "other" bucket for a type. Tags read back from
// storage that are no longer recognized land here instead of failing.
func FallbackCategory(t Type) Category {
	if t == Income {
		return CategoryOtherIncome
	}
	return CategoryOtherExpense
}

// NormalizeCategory maps a stored tag to a member of the type's vocabulary,
// falling back to the type's "other" bucket for anything unrecognized.
func NormalizeCategory(tag string, t Type) Category {
	if c := Category(tag); c.BelongsTo(t) {
		return c
	}
	return FallbackCategory(t)
}

// DisplayName returns the human-readable category label. Presentation-only;
// the aggregation engine keys strictly on the tag.
func (c Category) DisplayName() string {
	switch c {
	case CategorySalary:
		return "Зарплата"
	case CategoryFreelance:
		return "Фриланс"
	case CategoryInvestment:
		return "Инвестиции"
	case CategoryGift:
		return "Подарок"
	case CategoryFood:
		return "Еда"
	case CategoryTransport:
		return "Транспорт"
	case CategoryShopping:
		return "Покупки"
	case CategoryEntertainment:
		return "Развлечения"
	case CategoryHealth:
		return "Здоровье"
	case CategoryEducation:
		return "Образование"
	case CategoryBills:
		return "Счета"
	case CategoryOtherIncome, CategoryOtherExpense:
		return "Другое"
	default:
		return "Другое"
	}
}
