package compose

import (
	"strconv"

	"github.com/google/uuid"
)

// itemNamespace scopes derived item IDs so they never collide with IDs
// derived for other purposes.
var itemNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/flexgrid/item"))

// Item is one card, post, story, or tag in a grid.
type Item struct {
	ID      string `json:"id" toml:"id"`
	Image   string `json:"image,omitempty" toml:"image"`
	Label   string `json:"label,omitempty" toml:"label"`
	Caption string `json:"caption,omitempty" toml:"caption"`
}

// ItemID derives a stable identifier from seed. The same seed always yields
// the same ID.
func ItemID(seed string) string {
	return uuid.NewSHA1(itemNamespace, []byte(seed)).String()
}

// WithDerivedIDs returns a copy of items where every item lacking an ID gets
// one derived from scope and its position.
func WithDerivedIDs(scope string, items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = ItemID(scope + "/" + strconv.Itoa(i))
		}
		out[i] = it
	}
	return out
}
