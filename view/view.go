package view

import (
	"Storefront/models"
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"
	"sync"
)

//go:embed templates/*
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var ErrNoElement = errors.New("no such element")

var templates = template.Must(template.ParseFS(templateFS, "templates/index.gohtml"))

// Static returns the embedded browser assets rooted at the static directory.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// View is one session's document: the inventory and cart containers, the
// per-item quantity elements and any alerts not yet shown.
type View struct {
	mu         sync.Mutex
	inventory  []models.InventoryItem
	quantities map[int]int
	cart       []models.CartItem
	alerts     []string

	inventoryRenders int
	cartRenders      int
}

func New() *View {
	return &View{quantities: make(map[int]int)}
}

// RenderInventory replaces the inventory container.
func (v *View) RenderInventory(inventory []models.InventoryItem) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.inventory = append([]models.InventoryItem(nil), inventory...)
	v.quantities = make(map[int]int, len(inventory))
	for _, item := range inventory {
		v.quantities[item.ID] = item.Quantity
	}
	v.inventoryRenders++
}

// RenderCart replaces the cart container.
func (v *View) RenderCart(cart []models.CartItem) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.cart = append([]models.CartItem(nil), cart...)
	v.cartRenders++
}

// UpdateQuantity rewrites the quantity element of one inventory row and
// leaves the rest of the document alone.
func (v *View) UpdateQuantity(id, quantity int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.quantities[id]; ok {
		v.quantities[id] = quantity
	}
}

// Alert queues a notice for the next page write.
func (v *View) Alert(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.alerts = append(v.alerts, message)
}

// Renders reports how many times each container has been rendered.
func (v *View) Renders() (inventory, cart int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inventoryRenders, v.cartRenders
}

type pageData struct {
	Alerts    []string
	Inventory []models.InventoryItem
	Cart      []models.CartItem
}

// WritePage writes the full document and consumes pending alerts.
func (v *View) WritePage(w io.Writer) error {
	v.mu.Lock()
	data := pageData{
		Alerts:    v.alerts,
		Inventory: make([]models.InventoryItem, len(v.inventory)),
		Cart:      append([]models.CartItem(nil), v.cart...),
	}
	for i, item := range v.inventory {
		item.Quantity = v.quantities[item.ID]
		data.Inventory[i] = item
	}
	v.alerts = nil
	v.mu.Unlock()

	return templates.ExecuteTemplate(w, "index.gohtml", data)
}

// WriteQuantity writes the single quantity element for id.
func (v *View) WriteQuantity(w io.Writer, id int) error {
	v.mu.Lock()
	quantity, ok := v.quantities[id]
	v.mu.Unlock()
	if !ok {
		return ErrNoElement
	}

	return templates.ExecuteTemplate(w, "quantity", models.InventoryItem{ID: id, Quantity: quantity})
}
