package order

import (
	"errors"
	"fmt"

	"lastmile/internal/pkg/errs"
	"lastmile/internal/pkg/guard"
)

// ErrItemIsNotConstructed is returned when using a zero-value Item.
var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

// Item is one order line: a product name, a quantity and a cold-chain flag.
// Cold-chain items must stay within their temperature band from pickup to
// delivery; a single cold-chain item makes the whole order cold-chain.
type Item struct {
	name              string
	quantity          int
	requiresColdChain bool
	guard             guard.ConstructorGuard
}

// NewItem creates a validated order line. Name must be non-empty and
// quantity positive.
func NewItem(name string, quantity int, requiresColdChain bool) (Item, error) {
	item := Item{
		requiresColdChain: requiresColdChain,
		guard:             guard.NewConstructorGuard(),
	}

	if err := errors.Join(item.setName(name), item.setQuantity(quantity)); err != nil {
		return Item{}, err
	}

	return item, nil
}

// Validate checks that the Item was created through its constructor.
func (i Item) Validate() error {
	return i.guard.Validate(ErrItemIsNotConstructed)
}

// Name returns the product name.
func (i Item) Name() string {
	return i.name
}

// Quantity returns the unit count.
func (i Item) Quantity() int {
	return i.quantity
}

// RequiresColdChain reports whether the line needs temperature control.
func (i Item) RequiresColdChain() bool {
	return i.requiresColdChain
}

func (i *Item) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("item name")
	}
	i.name = name
	return nil
}

func (i *Item) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("item quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
