package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dataglance/dataglance/internal/catalog"
)

func TestClassifyRetail(t *testing.T) {
	c := NewClassifier(catalog.Default())

	domain, confidence := c.Classify([]string{"Date", "Product", "Amount", "CustomerID"})
	assert.Equal(t, catalog.DomainRetail, domain)
	assert.Greater(t, confidence, 0.0)
	assert.LessOrEqual(t, confidence, 1.0)
}

func TestClassifyRealEstate(t *testing.T) {
	c := NewClassifier(catalog.Default())

	domain, confidence := c.Classify([]string{"SaleDate", "Suburb", "SalePrice", "Agent", "Bedrooms"})
	assert.Equal(t, catalog.DomainRealEstate, domain)
	assert.Greater(t, confidence, 0.0)
}

func TestClassifyRestaurant(t *testing.T) {
	c := NewClassifier(catalog.Default())

	domain, _ := c.Classify([]string{"Date", "MenuItem", "Amount", "TableID"})
	assert.Equal(t, catalog.DomainRestaurant, domain)
}

func TestClassifyNoMatchFallsBackToGeneral(t *testing.T) {
	c := NewClassifier(catalog.Default())

	domain, confidence := c.Classify([]string{"xyzzy", "qwerty", "asdf"})
	assert.Equal(t, catalog.DomainGeneral, domain)
	assert.Zero(t, confidence)
}

func TestClassifyCaseInsensitive(t *testing.T) {
	c := NewClassifier(catalog.Default())

	upper, _ := c.Classify([]string{"DATE", "PRODUCT", "AMOUNT"})
	lower, _ := c.Classify([]string{"date", "product", "amount"})
	assert.Equal(t, upper, lower)
	assert.Equal(t, catalog.DomainRetail, upper)
}
