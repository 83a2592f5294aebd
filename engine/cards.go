package engine

import (
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed cards.yaml
var cardTableYAML []byte

// Effect is the printed, additive part of a card plus its special tag.
type Effect struct {
	Cards   int
	Actions int
	Buys    int
	Coins   int
	Special Special
}

// Card is static card data. Cards are looked up by name and never change.
type Card struct {
	Name           string
	Type           CardType
	Cost           int
	Effect         Effect
	VictoryPoints  int
	DynamicVictory bool // Gardens: worth floor(owned/10)
	Description    string
	Basic          bool
}

func (c Card) IsAction() bool   { return c.Type.IsAction() }
func (c Card) IsTreasure() bool { return c.Type == TypeTreasure }
func (c Card) IsVictory() bool  { return c.Type == TypeVictory }
func (c Card) IsAttack() bool   { return c.Type == TypeActionAttack }
func (c Card) IsReaction() bool { return c.Type == TypeActionReaction }

type cardSpec struct {
	Name           string `yaml:"name"`
	Type           string `yaml:"type"`
	Cost           int    `yaml:"cost"`
	Cards          int    `yaml:"cards"`
	Actions        int    `yaml:"actions"`
	Buys           int    `yaml:"buys"`
	Coins          int    `yaml:"coins"`
	Special        string `yaml:"special"`
	VictoryPoints  int    `yaml:"victory_points"`
	DynamicVictory bool   `yaml:"dynamic_victory"`
	Description    string `yaml:"description"`
}

type cardTable struct {
	Basic   []cardSpec `yaml:"basic"`
	Kingdom []cardSpec `yaml:"kingdom"`
}

var (
	cardsByName  map[string]Card
	basicNames   []string
	kingdomNames []string // sorted
)

func init() {
	if err := loadCardTable(cardTableYAML); err != nil {
		panic(fmt.Sprintf("engine: card table: %v", err))
	}
}

// loadCardTable decodes the embedded card table. Any defect is a configuration
// error that must stop the program before a game can be built.
func loadCardTable(data []byte) error {
	var table cardTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return err
	}
	byName := make(map[string]Card, len(table.Basic)+len(table.Kingdom))
	var basic, kingdom []string
	add := func(spec cardSpec, isBasic bool) error {
		if spec.Name == "" {
			return fmt.Errorf("card with empty name")
		}
		if _, dup := byName[spec.Name]; dup {
			return fmt.Errorf("duplicate card %q", spec.Name)
		}
		typ := -1
		for i, n := range cardTypeNames {
			if n == spec.Type {
				typ = i
			}
		}
		if typ < 0 {
			return fmt.Errorf("card %q: unknown type %q", spec.Name, spec.Type)
		}
		special, ok := parseSpecial(spec.Special)
		if !ok {
			return fmt.Errorf("card %q: unknown special %q", spec.Name, spec.Special)
		}
		byName[spec.Name] = Card{
			Name: spec.Name,
			Type: CardType(typ),
			Cost: spec.Cost,
			Effect: Effect{
				Cards:   spec.Cards,
				Actions: spec.Actions,
				Buys:    spec.Buys,
				Coins:   spec.Coins,
				Special: special,
			},
			VictoryPoints:  spec.VictoryPoints,
			DynamicVictory: spec.DynamicVictory,
			Description:    spec.Description,
			Basic:          isBasic,
		}
		if isBasic {
			basic = append(basic, spec.Name)
		} else {
			kingdom = append(kingdom, spec.Name)
		}
		return nil
	}
	for _, spec := range table.Basic {
		if err := add(spec, true); err != nil {
			return err
		}
	}
	for _, spec := range table.Kingdom {
		if err := add(spec, false); err != nil {
			return err
		}
	}
	slices.Sort(kingdom)
	cardsByName, basicNames, kingdomNames = byName, basic, kingdom
	return nil
}

// LookupCard returns the static definition of a card.
func LookupCard(name string) (Card, bool) {
	c, ok := cardsByName[name]
	return c, ok
}

// cardInfo is LookupCard for engine internals: a miss means the state holds a
// card the table does not know, which is a configuration error.
func cardInfo(name string) (Card, error) {
	c, ok := cardsByName[name]
	if !ok {
		return Card{}, configErr("unknown card: %s", name)
	}
	return c, nil
}

// KingdomCardNames returns every non-basic card name in sorted order.
func KingdomCardNames() []string { return slices.Clone(kingdomNames) }

// BasicCardNames returns the basic supply cards in table order.
func BasicCardNames() []string { return slices.Clone(basicNames) }

// AllCards returns every card definition, basic cards first.
func AllCards() []Card {
	out := make([]Card, 0, len(cardsByName))
	for _, n := range basicNames {
		out = append(out, cardsByName[n])
	}
	for _, n := range kingdomNames {
		out = append(out, cardsByName[n])
	}
	return out
}

func isAction(name string) bool {
	c, ok := cardsByName[name]
	return ok && c.IsAction()
}

func isTreasure(name string) bool {
	c, ok := cardsByName[name]
	return ok && c.IsTreasure()
}

func isVictory(name string) bool {
	c, ok := cardsByName[name]
	return ok && c.IsVictory()
}

func isReaction(name string) bool {
	c, ok := cardsByName[name]
	return ok && c.IsReaction()
}

func costOf(name string) int {
	return cardsByName[name].Cost
}
