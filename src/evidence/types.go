package evidence

// Item is one accepted search result inside a pack. IDs are sequential
// (E1, E2, ...) in acceptance order and unique within the pack; evaluators
// cite items by ID.
type Item struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Snippet  string `json:"snippet,omitempty"`
	Query    string `json:"query"`
	Provider string `json:"provider"`
}

// Pack is the finite, IDed evidence set handed to both model evaluations.
// Built once per request and never mutated afterwards.
type Pack struct {
	Enabled       bool     `json:"enabled"`
	ProvidersUsed []string `json:"providersUsed"`
	Queries       []string `json:"queries"`
	Items         []Item   `json:"items"`
}

// ItemByID returns the pack item with the given ID, if present.
func (p *Pack) ItemByID(id string) (Item, bool) {
	for _, item := range p.Items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}
