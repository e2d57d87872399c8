package models

// Category tags the sheet a line item was read from
type Category string

const (
	CategoryIncome         Category = "income"
	CategoryPersonnel      Category = "personnel"
	CategoryBuilding       Category = "building"
	CategoryCommunication  Category = "communication"
	CategoryTransportation Category = "transportation"
	CategoryPrinting       Category = "printing"
	CategoryAdvertising    Category = "advertising"
	CategoryStationery     Category = "stationery"
	CategoryFood           Category = "food"
	CategoryAccommodation  Category = "accommodation"
	CategoryMiscellaneous  Category = "miscellaneous"
)

// Categories lists every category in report order
var Categories = []Category{
	CategoryIncome,
	CategoryPersonnel,
	CategoryBuilding,
	CategoryCommunication,
	CategoryTransportation,
	CategoryPrinting,
	CategoryAdvertising,
	CategoryStationery,
	CategoryFood,
	CategoryAccommodation,
	CategoryMiscellaneous,
}

// ExpenseCategories lists the spending categories (everything but income)
var ExpenseCategories = Categories[1:]

var categoryLabels = map[Category]string{
	CategoryIncome:         "収入",
	CategoryPersonnel:      "人件",
	CategoryBuilding:       "家屋",
	CategoryCommunication:  "通信",
	CategoryTransportation: "交通",
	CategoryPrinting:       "印刷",
	CategoryAdvertising:    "広告",
	CategoryStationery:     "文具",
	CategoryFood:           "食料",
	CategoryAccommodation:  "休泊",
	CategoryMiscellaneous:  "雑費",
}

// Label returns the Japanese label, which is also the sheet name used by the report forms
func (c Category) Label() string {
	return categoryLabels[c]
}

// IsValid reports whether c is a known category
func (c Category) IsValid() bool {
	_, ok := categoryLabels[c]
	return ok
}
