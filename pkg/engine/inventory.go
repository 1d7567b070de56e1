package engine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ranasykuri/mysteryadvanturebot/pkg/content"
)

// PickUpResult describes an item taken from the current location.
type PickUpResult struct {
	Item    content.Item
	Message string
}

// PickUp takes the first item in the current location whose name or ID
// contains query, ignoring case. Items are scanned in the location's order.
func (e *Engine) PickUp(query string) (*PickUpResult, error) {
	if err := e.playing(); err != nil {
		return nil, err
	}
	here, err := e.currentLocation()
	if err != nil {
		return nil, err
	}

	for _, itemID := range here.Items {
		item := e.world.Items[itemID]
		if !matches(query, item.Name, item.ID) {
			continue
		}
		here.RemoveItem(itemID)
		e.player.AddItem(item)
		e.Logger().Info("Item picked up", "item", itemID, "location", here.ID)
		return &PickUpResult{
			Item:    item,
			Message: fmt.Sprintf("You take the %s.", item.Name),
		}, nil
	}
	return nil, fmt.Errorf("%w here: %q", ErrItemNotFound, query)
}

// InventoryResult lists carried items in pickup order.
type InventoryResult struct {
	Items   []content.Item
	Empty   bool
	Message string
}

// ListInventory returns the carried items. An empty inventory is reported,
// not treated as a failure.
func (e *Engine) ListInventory() *InventoryResult {
	items := slices.Clone(e.player.Inventory)
	if len(items) == 0 {
		return &InventoryResult{Items: items, Empty: true, Message: "Your inventory is empty."}
	}

	var b strings.Builder
	b.WriteString("You are carrying:")
	for i, item := range items {
		fmt.Fprintf(&b, "\n%d. %s", i+1, item.Name)
	}
	return &InventoryResult{Items: items, Message: b.String()}
}
