// Package deck implements the card grammar and the authoritative deck: a
// two-character wire format ("AS", "TD"), Fisher-Yates shuffling, and draws
// that are checked against everything already seen this hand.
package deck

import (
	"encoding/json"
	"fmt"
)

// Suit represents a card suit.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the wire character for the suit.
func (s Suit) String() string {
	switch s {
	case Spades:
		return "S"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are high (14).
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the wire character for the rank.
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + int(r)))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is a playing card. The zero value is not a valid card.
type Card struct {
	Rank Rank
	Suit Suit
}

// NewCard creates a card from rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// String returns the two-character code, rank then suit, e.g. "AS".
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Value returns the comparison value of the rank (2-14, aces high).
func (c Card) Value() int {
	return int(c.Rank)
}

// Valid reports whether the card matches the card grammar.
func (c Card) Valid() bool {
	return c.Rank >= Two && c.Rank <= Ace && c.Suit >= Spades && c.Suit <= Clubs
}

// Parse converts a two-character code into a Card.
func Parse(code string) (Card, error) {
	if len(code) != 2 {
		return Card{}, fmt.Errorf("card code must be 2 characters, got %q", code)
	}

	var rank Rank
	switch ch := code[0]; {
	case ch >= '2' && ch <= '9':
		rank = Rank(ch - '0')
	case ch == 'T':
		rank = Ten
	case ch == 'J':
		rank = Jack
	case ch == 'Q':
		rank = Queen
	case ch == 'K':
		rank = King
	case ch == 'A':
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank character %q in %q", ch, code)
	}

	var suit Suit
	switch code[1] {
	case 'S':
		suit = Spades
	case 'H':
		suit = Hearts
	case 'D':
		suit = Diamonds
	case 'C':
		suit = Clubs
	default:
		return Card{}, fmt.Errorf("invalid suit character %q in %q", code[1], code)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// MustParse parses a card code and panics on error. Intended for tests and
// literals, not for untrusted input.
func MustParse(code string) Card {
	c, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseAll parses a slice of card codes.
func ParseAll(codes ...string) ([]Card, error) {
	cards := make([]Card, 0, len(codes))
	for _, code := range codes {
		c, err := Parse(code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MarshalJSON encodes the card as its two-character code.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a card from its two-character code.
func (c *Card) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	parsed, err := Parse(code)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
