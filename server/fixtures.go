package server

import (
	"fmt"
	"sort"
)

// Ingredient is a dish component stored at a warehouse track position.
type Ingredient struct {
	Name     string `yaml:"name" json:"name"`
	Position int    `yaml:"position" json:"position"`
}

// Dish is a catalog dish and the ingredients it needs.
type Dish struct {
	ID          int          `yaml:"id" json:"dishId"`
	Name        string       `yaml:"name" json:"dishName"`
	Ingredients []Ingredient `yaml:"ingredients" json:"-"`
}

// OrderFixture is an order as written in the fixture file; the dish is referenced by id.
type OrderFixture struct {
	ID     int    `yaml:"id"`
	Name   string `yaml:"name"`
	DishID int    `yaml:"dish_id"`
}

// Order is an order with its dish resolved.
type Order struct {
	ID   int    `json:"orderId"`
	Name string `json:"orderName"`
	Dish Dish   `json:"dish"`
}

// Fixtures is the read-only lookup data behind the listing endpoints.
// It is stub data standing in for a real inventory; the planner never sees it.
// Built once at startup and never mutated, so it is safe for concurrent reads.
type Fixtures struct {
	warehouse map[int]string
	dishes    map[int]Dish
	orders    map[int]Order
	orderIDs  []int // ascending
}

const (
	defaultWarehouseSlots = 10
	defaultCatalogSize    = 10
	firstOrderID          = 1000
	firstDishID           = 500
)

// DefaultWarehouse labels tracks 0, 10, ..., 90 as "Ingredient 1" .. "Ingredient 10".
func DefaultWarehouse() map[int]string {
	w := make(map[int]string, defaultWarehouseSlots)
	for i := 0; i < defaultWarehouseSlots; i++ {
		w[i*10] = fmt.Sprintf("Ingredient %d", i+1)
	}
	return w
}

// NewFixtures builds the lookup tables from cfg, filling empty sections with
// defaults. Orders that reference an unknown dish are rejected.
func NewFixtures(cfg FixtureConfig) (*Fixtures, error) {
	f := &Fixtures{
		warehouse: cfg.Warehouse,
		dishes:    make(map[int]Dish),
		orders:    make(map[int]Order),
	}
	if len(f.warehouse) == 0 {
		f.warehouse = DefaultWarehouse()
	}
	for pos := range f.warehouse {
		if pos < 0 {
			return nil, fmt.Errorf("warehouse position %d is negative", pos)
		}
	}

	dishes := cfg.Dishes
	if len(dishes) == 0 {
		dishes = defaultDishes(f.warehouse)
	}
	for _, d := range dishes {
		if _, dup := f.dishes[d.ID]; dup {
			return nil, fmt.Errorf("dish %d defined twice", d.ID)
		}
		for _, ing := range d.Ingredients {
			if ing.Position < 0 {
				return nil, fmt.Errorf("dish %d ingredient %q has negative position %d", d.ID, ing.Name, ing.Position)
			}
		}
		f.dishes[d.ID] = d
	}

	orders := cfg.Orders
	if len(orders) == 0 {
		orders = defaultOrders(dishes)
	}
	for _, o := range orders {
		dish, ok := f.dishes[o.DishID]
		if !ok {
			return nil, fmt.Errorf("order %d references unknown dish %d", o.ID, o.DishID)
		}
		if _, dup := f.orders[o.ID]; dup {
			return nil, fmt.Errorf("order %d defined twice", o.ID)
		}
		f.orders[o.ID] = Order{ID: o.ID, Name: o.Name, Dish: dish}
		f.orderIDs = append(f.orderIDs, o.ID)
	}
	sort.Ints(f.orderIDs)
	return f, nil
}

// defaultDishes gives dish i three ingredients spread across the warehouse.
func defaultDishes(warehouse map[int]string) []Dish {
	positions := make([]int, 0, len(warehouse))
	for pos := range warehouse {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	dishes := make([]Dish, defaultCatalogSize)
	for i := range dishes {
		d := Dish{ID: firstDishID + i, Name: fmt.Sprintf("Dish %d", i+1)}
		for _, offset := range []int{0, 3, 7} {
			pos := positions[(i+offset)%len(positions)]
			d.Ingredients = append(d.Ingredients, Ingredient{Name: warehouse[pos], Position: pos})
		}
		dishes[i] = d
	}
	return dishes
}

func defaultOrders(dishes []Dish) []OrderFixture {
	orders := make([]OrderFixture, len(dishes))
	for i, d := range dishes {
		orders[i] = OrderFixture{ID: firstOrderID + i, Name: fmt.Sprintf("Order %d", i+1), DishID: d.ID}
	}
	return orders
}

// Label returns the ingredient name stored at pos.
func (f *Fixtures) Label(pos int) (string, bool) {
	name, ok := f.warehouse[pos]
	return name, ok
}

// Warehouse returns a copy of the position-to-label map.
func (f *Fixtures) Warehouse() map[int]string {
	out := make(map[int]string, len(f.warehouse))
	for k, v := range f.warehouse {
		out[k] = v
	}
	return out
}

// Dish looks up a dish by id.
func (f *Fixtures) Dish(id int) (Dish, bool) {
	d, ok := f.dishes[id]
	return d, ok
}

// Order looks up an order by id.
func (f *Fixtures) Order(id int) (Order, bool) {
	o, ok := f.orders[id]
	return o, ok
}

// RecentOrders returns up to limit fixture orders in id order. Every listed
// order resolves through Order.
func (f *Fixtures) RecentOrders(limit int) []Order {
	if limit > len(f.orderIDs) {
		limit = len(f.orderIDs)
	}
	out := make([]Order, 0, max(limit, 0))
	for _, id := range f.orderIDs[:max(limit, 0)] {
		out = append(out, f.orders[id])
	}
	return out
}

// Positions returns the track positions of a dish's ingredients in recipe order.
func (d Dish) Positions() []int {
	out := make([]int, len(d.Ingredients))
	for i, ing := range d.Ingredients {
		out[i] = ing.Position
	}
	return out
}
