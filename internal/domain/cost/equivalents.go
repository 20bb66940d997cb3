package cost

import "math"

// Item is something the money could have bought.
type Item struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

var equivalentCatalog = []Item{
	{"premium coffee", 150},
	{"movie ticket", 300},
	{"gym membership (1 month)", 1500},
	{"tablet", 10000},
	{"domestic trip", 15000},
	{"international trip", 50000},
	{"flagship smartphone", 35000},
	{"laptop", 30000},
}

// Descending price ladder used for shopping suggestions.
var shoppingLadder = []Item{
	{"compact SUV", 650000},
	{"trip to Los Angeles or New York", 80000},
	{"MacBook Pro laptop", 45000},
	{"top-end smartphone", 35000},
	{"iPad Air tablet", 18000},
	{"pair of premium sneakers", 6000},
	{"premium gym membership (1 month)", 3600},
	{"fine-dining dinner", 2500},
}

const (
	maxShoppingLines    = 3
	maxShoppingQuantity = 3
)

// Equivalent is how many of an item the total buys.
type Equivalent struct {
	Item
	Count int `json:"count"`
}

// Equivalents lists every catalog item the total can buy at least once, in
// catalog order.
func Equivalents(total float64) []Equivalent {
	out := make([]Equivalent, 0, len(equivalentCatalog))
	for _, item := range equivalentCatalog {
		if total >= item.Price {
			out = append(out, Equivalent{Item: item, Count: int(total / item.Price)})
		}
	}
	return out
}

// ShoppingLine is one suggested purchase.
type ShoppingLine struct {
	Item
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// Shopping walks the price ladder greedily. Each affordable rung shows at
// most three units and leaves total mod price for the next rung; the walk
// stops after three lines. When nothing is affordable the cheapest rung is
// suggested once.
func Shopping(total float64) []ShoppingLine {
	var lines []ShoppingLine
	remaining := total
	for _, item := range shoppingLadder {
		if remaining < item.Price {
			continue
		}
		qty := min(int(math.Floor(remaining/item.Price)), maxShoppingQuantity)
		lines = append(lines, ShoppingLine{Item: item, Quantity: qty, Subtotal: item.Price * float64(qty)})
		remaining = math.Mod(remaining, item.Price)
		if len(lines) >= maxShoppingLines {
			break
		}
	}
	if len(lines) == 0 && total > 0 {
		cheapest := shoppingLadder[0]
		for _, item := range shoppingLadder[1:] {
			if item.Price < cheapest.Price {
				cheapest = item
			}
		}
		lines = append(lines, ShoppingLine{Item: cheapest, Quantity: 1, Subtotal: cheapest.Price})
	}
	return lines
}
