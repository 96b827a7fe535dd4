package domain

import (
	"errors"

	"github.com/samber/mo"
)

// ErrNoPrice is returned when a set of tiers has no usable display price.
var ErrNoPrice = errors.New("no price tier set")

type TierKind string

const (
	TierGame      TierKind = "game"
	TierConsole   TierKind = "console"
	TierCondition TierKind = "condition"
)

// Tiers is the category dependent meaning of an item's optional prices.
type Tiers interface {
	Kind() TierKind
	// DisplayPrice is the first present positive tier in priority order.
	DisplayPrice() mo.Option[float64]
	// Count is how many tiers are present.
	Count() int
	// Price looks a tier up by its condition name; "" means the display price.
	Price(condition string) mo.Option[float64]
	apply(it *Item)
}

// GameTiers: price holds Complete-in-Box, goodPrice Box-and-Game and
// acceptablePrice Disc-Only.
type GameTiers struct {
	CompleteInBox mo.Option[float64]
	BoxAndGame    mo.Option[float64]
	DiscOnly      mo.Option[float64]
}

func (t GameTiers) Kind() TierKind { return TierGame }

func (t GameTiers) DisplayPrice() mo.Option[float64] {
	return FirstPositive(t.CompleteInBox, t.BoxAndGame, t.DiscOnly)
}

func (t GameTiers) Count() int { return present(t.CompleteInBox, t.BoxAndGame, t.DiscOnly) }

func (t GameTiers) Price(condition string) mo.Option[float64] {
	switch condition {
	case "", "complete":
		return t.DisplayPrice()
	case "box_and_game":
		return FirstPositive(t.BoxAndGame)
	case "disc_only":
		return FirstPositive(t.DiscOnly)
	}
	return mo.None[float64]()
}

func (t GameTiers) apply(it *Item) {
	it.GoodPrice = Ptr(t.BoxAndGame)
	it.AcceptablePrice = Ptr(t.DiscOnly)
}

type ConsoleTiers struct {
	Complete       mo.Option[float64]
	WithController mo.Option[float64]
	Only           mo.Option[float64]
}

func (t ConsoleTiers) Kind() TierKind { return TierConsole }

func (t ConsoleTiers) DisplayPrice() mo.Option[float64] {
	return FirstPositive(t.Complete, t.WithController, t.Only)
}

func (t ConsoleTiers) Count() int { return present(t.Complete, t.WithController, t.Only) }

func (t ConsoleTiers) Price(condition string) mo.Option[float64] {
	switch condition {
	case "":
		return t.DisplayPrice()
	case "complete":
		return FirstPositive(t.Complete)
	case "with_controller":
		return FirstPositive(t.WithController)
	case "console_only":
		return FirstPositive(t.Only)
	}
	return mo.None[float64]()
}

func (t ConsoleTiers) apply(it *Item) {
	it.CompleteConsolePrice = Ptr(t.Complete)
	it.ConsoleWithController = Ptr(t.WithController)
	it.ConsoleOnlyPrice = Ptr(t.Only)
}

// ConditionTiers is used by controllers, accessories and handhelds.
type ConditionTiers struct {
	Good       mo.Option[float64]
	Acceptable mo.Option[float64]
}

func (t ConditionTiers) Kind() TierKind { return TierCondition }

func (t ConditionTiers) DisplayPrice() mo.Option[float64] {
	return FirstPositive(t.Good, t.Acceptable)
}

func (t ConditionTiers) Count() int { return present(t.Good, t.Acceptable) }

func (t ConditionTiers) Price(condition string) mo.Option[float64] {
	switch condition {
	case "":
		return t.DisplayPrice()
	case "good":
		return FirstPositive(t.Good)
	case "acceptable":
		return FirstPositive(t.Acceptable)
	}
	return mo.None[float64]()
}

func (t ConditionTiers) apply(it *Item) {
	it.GoodPrice = Ptr(t.Good)
	it.AcceptablePrice = Ptr(t.Acceptable)
}

// ApplyTiers writes the tiers into the item's price columns and sets Price
// to the display price. Columns belonging to other tier kinds are cleared.
func (it *Item) ApplyTiers(t Tiers) error {
	p, ok := t.DisplayPrice().Get()
	if !ok {
		return ErrNoPrice
	}
	it.AcceptablePrice, it.GoodPrice = nil, nil
	it.ConsoleOnlyPrice, it.ConsoleWithController, it.CompleteConsolePrice = nil, nil, nil
	t.apply(it)
	it.Price = p
	return nil
}

// TiersFor reads the item's price columns according to its category.
func TiersFor(categoryName string, it Item) Tiers {
	switch categoryName {
	case CategoryGames:
		return GameTiers{
			CompleteInBox: positive(it.Price),
			BoxAndGame:    Opt(it.GoodPrice),
			DiscOnly:      Opt(it.AcceptablePrice),
		}
	case CategoryConsoles:
		return ConsoleTiers{
			Complete:       Opt(it.CompleteConsolePrice),
			WithController: Opt(it.ConsoleWithController),
			Only:           Opt(it.ConsoleOnlyPrice),
		}
	default:
		good := Opt(it.GoodPrice)
		if good.IsAbsent() && Opt(it.AcceptablePrice).IsAbsent() {
			good = positive(it.Price)
		}
		return ConditionTiers{Good: good, Acceptable: Opt(it.AcceptablePrice)}
	}
}

// FirstPositive returns the first option holding a value above zero.
func FirstPositive(opts ...mo.Option[float64]) mo.Option[float64] {
	for _, o := range opts {
		if v, ok := o.Get(); ok && v > 0 {
			return mo.Some(v)
		}
	}
	return mo.None[float64]()
}

// Opt converts a nullable column into an option.
func Opt(p *float64) mo.Option[float64] {
	if p == nil {
		return mo.None[float64]()
	}
	return mo.Some(*p)
}

// Ptr converts an option into a nullable column.
func Ptr(o mo.Option[float64]) *float64 {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return &v
}

func positive(v float64) mo.Option[float64] {
	if v > 0 {
		return mo.Some(v)
	}
	return mo.None[float64]()
}

func present(opts ...mo.Option[float64]) int {
	n := 0
	for _, o := range opts {
		if o.IsPresent() {
			n++
		}
	}
	return n
}
