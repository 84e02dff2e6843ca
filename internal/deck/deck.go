package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

var (
	// ErrDeckExhausted is returned when a draw is requested from an empty deck.
	ErrDeckExhausted = errors.New("deck exhausted")

	// ErrDuplicateDraw is returned when a drawn card was already seen this
	// hand. This can only happen through state corruption, never through
	// client input.
	ErrDuplicateDraw = errors.New("duplicate card drawn")
)

// Deck is the authoritative card stock for one hand. The top of the deck is
// the last element. Every card handed out is recorded in the seen set; a
// repeat is an invariant violation surfaced as ErrDuplicateDraw.
type Deck struct {
	cards  []Card
	burned []Card
	seen   map[Card]struct{}
	rng    *rand.Rand
}

// New builds a full 52-card deck in canonical order and verifies it. The
// deck is not shuffled; callers shuffle explicitly.
func New(rng *rand.Rand) (*Deck, error) {
	d := &Deck{
		cards: make([]Card, 0, 52),
		seen:  make(map[Card]struct{}, 52),
		rng:   rng,
	}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	if err := d.verify(); err != nil {
		return nil, err
	}
	return d, nil
}

// verify asserts the freshly built deck has exactly 52 distinct cards, all
// matching the card grammar.
func (d *Deck) verify() error {
	if len(d.cards) != 52 {
		return fmt.Errorf("deck has %d cards, want 52", len(d.cards))
	}
	unique := make(map[Card]struct{}, 52)
	for _, c := range d.cards {
		if !c.Valid() {
			return fmt.Errorf("deck contains malformed card %v", c)
		}
		if _, dup := unique[c]; dup {
			return fmt.Errorf("deck contains duplicate card %s", c)
		}
		unique[c] = struct{}{}
	}
	return nil
}

// Shuffle applies a Fisher-Yates shuffle using the deck's rng.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card. The reason is free text used only
// for the error message when a draw fails.
func (d *Deck) Draw(reason string) (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, fmt.Errorf("drawing for %s: %w", reason, ErrDeckExhausted)
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	if _, dup := d.seen[card]; dup {
		return Card{}, fmt.Errorf("drawing %s for %s: %w", card, reason, ErrDuplicateDraw)
	}
	d.seen[card] = struct{}{}
	return card, nil
}

// Burn draws one card face down onto the burn pile.
func (d *Deck) Burn(reason string) error {
	card, err := d.Draw(reason)
	if err != nil {
		return err
	}
	d.burned = append(d.burned, card)
	return nil
}

// Remaining returns the number of undrawn cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// BurnCount returns the number of burned cards.
func (d *Deck) BurnCount() int {
	return len(d.burned)
}

// SeenCount returns the number of cards drawn so far, burns included.
func (d *Deck) SeenCount() int {
	return len(d.seen)
}

// Stack reorders the deck so the given cards are drawn in the given order
// before any others. Used by tests that need a rigged deal; the cards must
// currently be undrawn.
func (d *Deck) Stack(cards ...Card) error {
	rest := make([]Card, 0, len(d.cards))
	want := make(map[Card]int, len(cards))
	for i, c := range cards {
		if _, dup := want[c]; dup {
			return fmt.Errorf("stack request repeats card %s", c)
		}
		want[c] = i
	}
	for _, c := range d.cards {
		if _, ok := want[c]; !ok {
			rest = append(rest, c)
		}
	}
	if len(rest)+len(cards) != len(d.cards) {
		return fmt.Errorf("stack request includes cards not in the deck")
	}
	// Top of the deck is the last element, so append in reverse draw order.
	d.cards = rest
	for i := len(cards) - 1; i >= 0; i-- {
		d.cards = append(d.cards, cards[i])
	}
	return nil
}
