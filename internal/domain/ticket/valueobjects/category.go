package valueobjects

import "fmt"

type Category string

const (
	CategoryITSupport Category = "it_support"
	CategoryHR        Category = "hr"
	CategoryFinance   Category = "finance"
	CategoryFacility  Category = "facility"
	CategoryOther     Category = "other"
)

var validCategories = map[Category]bool{
	CategoryITSupport: true,
	CategoryHR:        true,
	CategoryFinance:   true,
	CategoryFacility:  true,
	CategoryOther:     true,
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
