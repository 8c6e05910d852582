package mockpos

import (
	"time"

	"posdash/internal/adapters/upstream"
)

// Restaurant doubles as a store in the store hierarchy
type Restaurant struct {
	ID       string
	Name     string
	Location string
	State    string
	City     string
	OCEmail  string
	OMEmail  string
}

// Product carries its category tags
type Product struct {
	ID          string
	Name        string
	Price       float64
	FamilyGroup string
	Tags        map[string]string
}

// Machine is a till; its location names the delivery channel and POD
type Machine struct {
	ID       string
	Location string
	Channel  string
}

// Sale is one fixture transaction before enrichment
type Sale struct {
	ID           string
	MachineID    string
	ProductID    string
	RestaurantID string
	Amount       float64
	At           string
}

// Dataset is everything the mock backend serves
type Dataset struct {
	Restaurants  []Restaurant
	Products     []Product
	Machines     []Machine
	Transactions []upstream.Transaction
}

var restaurants = []Restaurant{
	{ID: "R1", Name: "Downtown Diner", Location: "Main Street", State: "Karnataka", City: "Bengaluru", OCEmail: "oc.south@posdash.test", OMEmail: "om.downtown@posdash.test"},
	{ID: "R2", Name: "Burger Hub", Location: "Mall Branch", State: "Maharashtra", City: "Mumbai", OCEmail: "oc.west@posdash.test", OMEmail: "om.mall@posdash.test"},
}

var products = []Product{
	{ID: "1", Name: "Classic Fries", Price: 3.99, FamilyGroup: "Sides", Tags: map[string]string{
		"subcategory_1": "Food", "reporting_2": "Sides", "piecategory_3": "Fries", "reporting_id_4": "FR-01"}},
	{ID: "2", Name: "Cheese Burger", Price: 8.99, FamilyGroup: "Burgers", Tags: map[string]string{
		"subcategory_1": "Food", "reporting_2": "Mains", "piecategory_3": "Burgers", "reporting_id_4": "BG-01"}},
	{ID: "3", Name: "Soft Drink", Price: 2.99, FamilyGroup: "Beverages", Tags: map[string]string{
		"subcategory_1": "Beverages", "reporting_2": "Cold", "piecategory_3": "Soda", "reporting_id_4": "SD-01"}},
	{ID: "4", Name: "Chicken Wings", Price: 6.99, FamilyGroup: "Chicken", Tags: map[string]string{
		"subcategory_1": "Food", "reporting_2": "Mains", "piecategory_3": "Chicken", "reporting_id_4": "CW-01"}},
	{ID: "5", Name: "Salad Bowl", Price: 7.99, FamilyGroup: "Healthy", Tags: map[string]string{
		"subcategory_1": "Food", "reporting_2": "Mains", "piecategory_3": "Salads"}},
}

var machines = []Machine{
	{ID: "A1", Location: "Main Counter", Channel: "Counter"},
	{ID: "A2", Location: "Drive-Thru", Channel: "Drive-Thru"},
	{ID: "A3", Location: "Outdoor Kiosk", Channel: "Kiosk"},
}

var sales = []Sale{
	{"T1", "A1", "2", "R1", 8.99, "2024-03-21T08:30:00"},
	{"T2", "A2", "1", "R1", 3.99, "2024-03-21T09:15:00"},
	{"T3", "A3", "3", "R2", 2.99, "2024-03-21T10:00:00"},
	{"T4", "A1", "4", "R1", 6.99, "2024-03-21T12:30:00"},
	{"T5", "A2", "2", "R2", 8.99, "2024-03-21T13:45:00"},
	{"T6", "A3", "5", "R1", 7.99, "2024-03-20T09:00:00"},
	{"T7", "A1", "1", "R2", 3.99, "2024-03-20T11:30:00"},
	{"T8", "A2", "3", "R1", 2.99, "2024-03-20T14:15:00"},
	{"T9", "A3", "2", "R2", 8.99, "2024-03-20T17:00:00"},
	{"T10", "A1", "4", "R1", 6.99, "2024-03-19T12:00:00"},
	{"T11", "A2", "5", "R2", 7.99, "2024-03-18T15:30:00"},
	{"T12", "A3", "1", "R1", 3.99, "2024-03-17T10:45:00"},
	{"T13", "A1", "2", "R2", 8.99, "2024-03-16T13:15:00"},
	{"T14", "A2", "3", "R1", 2.99, "2024-03-15T16:00:00"},
	{"T15", "A3", "4", "R2", 6.99, "2024-03-19T18:30:00"},
	{"T16", "A1", "5", "R1", 7.99, "2024-03-18T19:45:00"},
	{"T17", "A2", "1", "R2", 3.99, "2024-03-17T20:15:00"},
	{"T18", "A1", "2", "R1", 8.99, "2024-03-21T18:00:00"},
	{"T19", "A2", "3", "R2", 2.99, "2024-03-21T19:30:00"},
	{"T20", "A3", "4", "R1", 6.99, "2024-03-20T20:45:00"},
}

// FixtureNow is the instant the fixtures were recorded around
var FixtureNow = time.Date(2024, 3, 21, 20, 0, 0, 0, time.Local)

// Fixtures returns the built in dataset with every transaction enriched
func Fixtures() Dataset {
	d := Dataset{Restaurants: restaurants, Products: products, Machines: machines}
	for i, s := range sales {
		d.Transactions = append(d.Transactions, d.enrich(i, s))
	}
	return d
}

func (d Dataset) enrich(i int, s Sale) upstream.Transaction {
	at, _ := upstream.ParseTime(s.At)
	p, _ := d.product(s.ProductID)
	m, _ := d.machine(s.MachineID)

	saleType := "Dine In"
	if m.ID == "A2" {
		saleType = "Take Away"
	} else if i%4 == 3 {
		saleType = "Delivery"
	}

	return upstream.Transaction{
		ID:              upstream.Text(s.ID),
		RestaurantID:    s.RestaurantID,
		ProductID:       upstream.Text(s.ProductID),
		ProductName:     p.Name,
		MachineID:       s.MachineID,
		TransactionType: saleType,
		DeliveryChannel: m.Channel,
		Pod:             m.Location,
		Timestamp:       upstream.Millis(at.UnixMilli()),
		Amount:          s.Amount,
		Quantity:        1,
		ItemFamilyGroup: p.FamilyGroup,
		ItemDayPart:     dayPart(at),
		StoreCode:       s.RestaurantID,
	}
}

func dayPart(t time.Time) string {
	switch h := t.Hour(); {
	case h < 11:
		return "Breakfast"
	case h < 16:
		return "Lunch"
	case h < 19:
		return "Snacks"
	default:
		return "Dinner"
	}
}

func (d Dataset) product(id string) (Product, bool) {
	for _, p := range d.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func (d Dataset) machine(id string) (Machine, bool) {
	for _, m := range d.Machines {
		if m.ID == id {
			return m, true
		}
	}
	return Machine{}, false
}

func (d Dataset) restaurant(id string) (Restaurant, bool) {
	for _, r := range d.Restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return Restaurant{}, false
}
