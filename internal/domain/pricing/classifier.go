package pricing

import (
	"strings"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/enum"
)

// DefaultKeywords mark a product name as area-priced.
var DefaultKeywords = []string{"giấy", "paper"}

// Classifier decides the pricing mode of a product name by keyword
// substring. The zero value and nil use DefaultKeywords.
type Classifier struct {
	keywords []string
}

// NewClassifier folds the keywords once. Blank keywords are ignored; an empty
// list falls back to DefaultKeywords.
func NewClassifier(keywords []string) *Classifier {
	c := &Classifier{}
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			c.keywords = append(c.keywords, k)
		}
	}
	if len(c.keywords) == 0 {
		c.keywords = DefaultKeywords
	}
	return c
}

var defaultClassifier = NewClassifier(nil)

// IsAreaPriced reports whether name contains one of the keywords, ignoring case.
func (c *Classifier) IsAreaPriced(name string) bool {
	if c == nil || len(c.keywords) == 0 {
		c = defaultClassifier
	}
	if name == "" {
		return false
	}
	folded := strings.ToLower(name)
	for _, k := range c.keywords {
		if strings.Contains(folded, k) {
			return true
		}
	}
	return false
}

// Classify returns the pricing mode for name.
func (c *Classifier) Classify(name string) enum.PricingMode {
	if c.IsAreaPriced(name) {
		return enum.PricingModeArea
	}
	return enum.PricingModeUnit
}

// Reclassify sets the mode of every item from its name, discarding any mode
// the input carried. Orders coming from outside go through it.
func (c *Classifier) Reclassify(order *entity.Order) {
	if order == nil {
		return
	}
	for i := range order.Items {
		order.Items[i].Mode = c.Classify(order.Items[i].Name)
	}
}

// Normalize fills the mode of every item that does not carry one yet.
// Records saved before modes existed come back classified by name. Only
// history and draft reads use it; external input goes through Reclassify.
func (c *Classifier) Normalize(order *entity.Order) {
	if order == nil {
		return
	}
	for i := range order.Items {
		if !order.Items[i].Mode.IsValid() {
			order.Items[i].Mode = c.Classify(order.Items[i].Name)
		}
	}
}

// IsAreaPriced classifies name with DefaultKeywords.
func IsAreaPriced(name string) bool {
	return defaultClassifier.IsAreaPriced(name)
}
