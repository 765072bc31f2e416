package entity

// Card is immutable; ImageURL is derived from ID.
type Card struct {
	ID       string `json:"id"`
	ImageURL string `json:"imageUrl"`
}

func NewCard(id string) Card {
	return Card{
		ID:       id,
		ImageURL: "/cards/" + id + ".jpg",
	}
}
