package orders

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tapnserve/pos/internal/menu"
)

// Cart workflow errors surfaced to the user.
var (
	ErrTableRequired  = errors.New("table number is required")
	ErrTableOccupied  = errors.New("table already has an order in progress")
	ErrTablePinned    = errors.New("table number cannot be changed for this order")
	ErrEmptyCart      = errors.New("cart is empty")
	ErrSubmitInFlight = errors.New("a submit is already in progress")
)

// Mode distinguishes a fresh order from add-to-existing-order, which is
// entered only from the active-orders view and pins the table number.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

// Phase is the workflow state. Transitions:
//
//	NoTable -> TableSet -> Composing -> TableSet -> Submitting
//
// Submit and Cancel are terminal actions handled by CompleteSubmit,
// FailSubmit and Cancel.
type Phase int

const (
	PhaseNoTable Phase = iota
	PhaseTableSet
	PhaseComposing
	PhaseSubmitting
)

func (p Phase) String() string {
	switch p {
	case PhaseNoTable:
		return "no-table"
	case PhaseTableSet:
		return "table-set"
	case PhaseComposing:
		return "composing"
	case PhaseSubmitting:
		return "submitting"
	}
	return "unknown"
}

// ProductRef is the price-bearing snapshot of the product a cart line was
// built from.
type ProductRef struct {
	ID    string
	Name  string
	Price float64
}

// CartItem is one assembled line of the transient cart. It exists only while
// an order is being composed and is destroyed on submit or cancel.
type CartItem struct {
	LineID        uuid.UUID
	ProductID     string
	Product       ProductRef
	Extra         string
	Without       string
	Specification string
}

// PendingSelection holds the in-flight customization of a non-drink product.
type PendingSelection struct {
	Product       menu.MenuItem
	Extras        []string
	Exclusions    []string
	Specification string
}

// Cart is the explicit workflow state for composing one order. All methods
// are pure state transitions; network submission is driven by the caller via
// BuildPayload, BeginSubmit, CompleteSubmit and FailSubmit. The UI serializes
// input, so Cart needs no internal locking.
type Cart struct {
	mode        Mode
	phase       Phase
	tableNumber string
	items       []CartItem
	pending     *PendingSelection
	seeded      []EnrichedItem
}

// NewCart starts the workflow for a fresh order: no table, empty cart.
func NewCart() *Cart {
	return &Cart{mode: ModeCreate, phase: PhaseNoTable}
}

// NewUpdateCart starts the workflow in add-to-existing-order mode. The table
// number is pinned and the existing items are carried for display only; they
// are never resubmitted.
func NewUpdateCart(tableNumber string, existing []EnrichedItem) *Cart {
	return &Cart{
		mode:        ModeUpdate,
		phase:       PhaseTableSet,
		tableNumber: strings.TrimSpace(tableNumber),
		seeded:      append([]EnrichedItem(nil), existing...),
	}
}

func (c *Cart) Mode() Mode          { return c.mode }
func (c *Cart) Phase() Phase        { return c.phase }
func (c *Cart) TableNumber() string { return c.tableNumber }

// Items returns a copy of the cart lines in composition order.
func (c *Cart) Items() []CartItem {
	return append([]CartItem(nil), c.items...)
}

// Seeded returns the display-only items carried into update mode.
func (c *Cart) Seeded() []EnrichedItem {
	return append([]EnrichedItem(nil), c.seeded...)
}

// Pending returns the in-flight customization, or nil outside Composing.
func (c *Cart) Pending() *PendingSelection {
	return c.pending
}

// SelectTable binds the cart to a table. In create mode the transition is
// rejected when the freshly fetched active-orders snapshot already holds an
// in-progress order for that table.
func (c *Cart) SelectTable(tableNumber string, active *Snapshot) error {
	if c.mode == ModeUpdate {
		return ErrTablePinned
	}
	if c.phase != PhaseNoTable && c.phase != PhaseTableSet {
		return fmt.Errorf("cannot change table while %s", c.phase)
	}

	trimmed := strings.TrimSpace(tableNumber)
	if trimmed == "" {
		return ErrTableRequired
	}
	if active.HasActiveOrder(trimmed) {
		return fmt.Errorf("%w: table %s", ErrTableOccupied, trimmed)
	}

	c.tableNumber = trimmed
	c.phase = PhaseTableSet
	return nil
}

// BeginItem starts adding a product. Drinks bypass customization and are
// appended immediately with identity and price only; the returned flag is
// true when a customization selection was opened instead.
func (c *Cart) BeginItem(item menu.MenuItem) (composing bool, err error) {
	if c.phase != PhaseTableSet {
		return false, fmt.Errorf("cannot add items while %s", c.phase)
	}

	if item.IsDrink() {
		c.items = append(c.items, newCartItem(item, "", "", ""))
		return false, nil
	}

	c.pending = &PendingSelection{Product: item}
	c.phase = PhaseComposing
	return true, nil
}

// ToggleExtra adds or removes an ingredient from the pending extras
// multi-select. Only ingredients of the pending product are eligible.
func (c *Cart) ToggleExtra(ingredient string) error {
	pending, err := c.composing()
	if err != nil {
		return err
	}
	if !pending.Product.HasIngredient(ingredient) {
		return fmt.Errorf("%q is not an ingredient of %s", ingredient, pending.Product.Name)
	}
	pending.Extras = toggle(pending.Extras, ingredient)
	return nil
}

// ToggleExclusion adds or removes an ingredient from the pending exclusions
// multi-select.
func (c *Cart) ToggleExclusion(ingredient string) error {
	pending, err := c.composing()
	if err != nil {
		return err
	}
	if !pending.Product.HasIngredient(ingredient) {
		return fmt.Errorf("%q is not an ingredient of %s", ingredient, pending.Product.Name)
	}
	pending.Exclusions = toggle(pending.Exclusions, ingredient)
	return nil
}

// SetSpecification records free-text special instructions for the pending
// item.
func (c *Cart) SetSpecification(text string) error {
	pending, err := c.composing()
	if err != nil {
		return err
	}
	pending.Specification = strings.TrimSpace(text)
	return nil
}

// ConfirmItem appends the customized item to the cart, joining the
// multi-selected extras and exclusions into single display strings.
func (c *Cart) ConfirmItem() error {
	pending, err := c.composing()
	if err != nil {
		return err
	}

	c.items = append(c.items, newCartItem(
		pending.Product,
		strings.Join(pending.Extras, ", "),
		strings.Join(pending.Exclusions, ", "),
		pending.Specification,
	))
	c.pending = nil
	c.phase = PhaseTableSet
	return nil
}

// CancelItem discards the pending selection without touching the cart.
func (c *Cart) CancelItem() error {
	if _, err := c.composing(); err != nil {
		return err
	}
	c.pending = nil
	c.phase = PhaseTableSet
	return nil
}

// RemoveItem deletes one cart line, preserving the relative order of the
// rest.
func (c *Cart) RemoveItem(index int) error {
	if c.phase != PhaseTableSet {
		return fmt.Errorf("cannot remove items while %s", c.phase)
	}
	if index < 0 || index >= len(c.items) {
		return fmt.Errorf("no cart item at position %d", index+1)
	}
	c.items = append(c.items[:index], c.items[index+1:]...)
	return nil
}

// Total is the sum of the constituent product prices. Customization has no
// price effect.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.items {
		total += item.Product.Price
	}
	return total
}

// BuildPayload validates the workflow and assembles the submit payload with
// items in composition order.
func (c *Cart) BuildPayload() (*CreateOrderRequest, error) {
	if strings.TrimSpace(c.tableNumber) == "" {
		return nil, ErrTableRequired
	}
	if len(c.items) == 0 {
		return nil, ErrEmptyCart
	}

	req := &CreateOrderRequest{TableNumber: c.tableNumber}
	for _, item := range c.items {
		req.Items = append(req.Items, OrderItem{
			ProductID:     item.ProductID,
			Extra:         item.Extra,
			Without:       item.Without,
			Specification: item.Specification,
		})
	}
	return req, nil
}

// BeginSubmit guards against concurrent submits and parks the workflow in
// Submitting until CompleteSubmit or FailSubmit.
func (c *Cart) BeginSubmit() (*CreateOrderRequest, error) {
	if c.phase == PhaseSubmitting {
		return nil, ErrSubmitInFlight
	}
	if c.phase != PhaseTableSet {
		return nil, fmt.Errorf("cannot submit while %s", c.phase)
	}

	payload, err := c.BuildPayload()
	if err != nil {
		return nil, err
	}
	c.phase = PhaseSubmitting
	return payload, nil
}

// CompleteSubmit clears the cart after a successful submit. In create mode
// the table number is cleared as well and the workflow returns to NoTable.
func (c *Cart) CompleteSubmit() {
	c.items = nil
	c.pending = nil
	if c.mode == ModeCreate {
		c.tableNumber = ""
		c.phase = PhaseNoTable
		return
	}
	c.phase = PhaseTableSet
}

// FailSubmit returns the workflow to its pre-call state, leaving the cart
// untouched for retry.
func (c *Cart) FailSubmit() {
	c.phase = PhaseTableSet
}

// Cancel clears the cart (and, in create mode, the table number) and exits
// the workflow.
func (c *Cart) Cancel() {
	c.items = nil
	c.pending = nil
	if c.mode == ModeCreate {
		c.tableNumber = ""
		c.phase = PhaseNoTable
		return
	}
	c.phase = PhaseTableSet
}

func (c *Cart) composing() (*PendingSelection, error) {
	if c.phase != PhaseComposing || c.pending == nil {
		return nil, fmt.Errorf("no item is being customized")
	}
	return c.pending, nil
}

func newCartItem(item menu.MenuItem, extra, without, specification string) CartItem {
	return CartItem{
		LineID:    uuid.New(),
		ProductID: item.ID,
		Product: ProductRef{
			ID:    item.ID,
			Name:  item.Name,
			Price: item.Price,
		},
		Extra:         extra,
		Without:       without,
		Specification: specification,
	}
}

func toggle(list []string, value string) []string {
	trimmed := strings.TrimSpace(value)
	for i, existing := range list {
		if strings.EqualFold(existing, trimmed) {
			return append(list[:i], list[i+1:]...)
		}
	}
	return append(list, trimmed)
}
