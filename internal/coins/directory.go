// Package coins is the static directory of tracked symbols.
package coins

import (
	"strings"

	"BoomDoomRadar/internal/model"
)

var all = []model.Coin{
	{Symbol: "ACT", Name: "ACT", Icon: "🎭"},
	{Symbol: "AI16Z", Name: "AI16Z", Icon: "🤖"},
	{Symbol: "AMC", Name: "AMC", Icon: "🎬"},
	{Symbol: "AVA", Name: "AVA", Icon: "🌟"},
	{Symbol: "BABYDOGE", Name: "Baby Doge", Icon: "🐕"},
	{Symbol: "BERTRAM", Name: "Bertram", Icon: "🎩"},
	{Symbol: "BDFINK", Name: "BDFink", Icon: "🎨"},
	{Symbol: "BHOLE", Name: "BHole", Icon: "🕳️"},
	{Symbol: "BOME", Name: "Bome", Icon: "💥"},
	{Symbol: "BONK", Name: "Bonk", Icon: "🐕"},
	{Symbol: "CHILL", Name: "Chill", Icon: "😎"},
	{Symbol: "COMEDIAN", Name: "Comedian", Icon: "🎭"},
	{Symbol: "FART", Name: "Fart", Icon: "💨"},
	{Symbol: "FARTBOY", Name: "Fart Boy", Icon: "💨"},
	{Symbol: "FLOTUS", Name: "FLOTUS", Icon: "👑"},
	{Symbol: "FWOG", Name: "Fwog", Icon: "🐸"},
	{Symbol: "GIGACHAD", Name: "Gigachad", Icon: "💪"},
	{Symbol: "GME", Name: "GameStop", Icon: "🎮"},
	{Symbol: "GOAT", Name: "GOAT", Icon: "🐐"},
	{Symbol: "HYSK", Name: "HYSK", Icon: "🎯"},
	{Symbol: "KWEEN", Name: "Kween", Icon: "👑"},
	{Symbol: "LIBRA", Name: "Libra", Icon: "⚖️"},
	{Symbol: "MANEKI", Name: "Maneki", Icon: "🐱"},
	{Symbol: "MCDULL", Name: "McDull", Icon: "🐷"},
	{Symbol: "MGTX", Name: "MGTX", Icon: "💎"},
	{Symbol: "MEW", Name: "MEW", Icon: "🐱"},
	{Symbol: "MICHI", Name: "Michi", Icon: "🐱"},
	{Symbol: "MOODENG", Name: "Moodeng", Icon: "😊"},
	{Symbol: "MYRO", Name: "Myro", Icon: "🐕"},
	{Symbol: "PAIN", Name: "Pain", Icon: "😫"},
	{Symbol: "PEANUT", Name: "Peanut", Icon: "🥜"},
	{Symbol: "PEPE", Name: "Pepe", Icon: "🐸"},
	{Symbol: "PIPPIN", Name: "Pippin", Icon: "🎭"},
	{Symbol: "PONKE", Name: "Ponke", Icon: "🐒"},
	{Symbol: "POPCAT", Name: "Popcat", Icon: "🐱"},
	{Symbol: "PWEASE", Name: "Pwease", Icon: "🙏"},
	{Symbol: "QUACK", Name: "Quack", Icon: "🦆"},
	{Symbol: "RETARDIO", Name: "Retardio", Icon: "🤪"},
	{Symbol: "SAMO", Name: "Samoyedcoin", Icon: "🐕"},
	{Symbol: "SIGMA", Name: "Sigma", Icon: "💪"},
	{Symbol: "SLERF", Name: "Slerf", Icon: "🦊"},
	{Symbol: "STONKS", Name: "Stonks", Icon: "📈"},
	{Symbol: "TATE", Name: "Tate", Icon: "🎭"},
	{Symbol: "TRUMP", Name: "Trump", Icon: "👔"},
	{Symbol: "UFD", Name: "UFD", Icon: "🎭"},
	{Symbol: "VINE", Name: "Vine", Icon: "🍇"},
	{Symbol: "WEN", Name: "Wen", Icon: "⏰"},
	{Symbol: "WIF", Name: "Wif", Icon: "🐕"},
	{Symbol: "ZEREBRO", Name: "Zerebro", Icon: "🧠"},
}

// Directory is an immutable set of coins.
type Directory struct {
	coins []model.Coin
}

// Default returns the directory of bundled tickers.
func Default() *Directory {
	return New(all)
}

// New builds a directory over a copy of coins.
func New(coins []model.Coin) *Directory {
	c := make([]model.Coin, len(coins))
	copy(c, coins)
	return &Directory{coins: c}
}

// All returns a copy of every coin in directory order.
func (d *Directory) All() []model.Coin {
	out := make([]model.Coin, len(d.coins))
	copy(out, d.coins)
	return out
}

// Lookup finds a coin by symbol or display name, ignoring case.
// Symbol matches win over name matches.
func (d *Directory) Lookup(query string) (model.Coin, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return model.Coin{}, false
	}
	for _, c := range d.coins {
		if strings.EqualFold(c.Symbol, q) {
			return c, true
		}
	}
	for _, c := range d.coins {
		if strings.EqualFold(c.Name, q) {
			return c, true
		}
	}
	return model.Coin{}, false
}

// Search returns coins whose symbol or name contains query, ignoring case.
// An empty query returns everything.
func (d *Directory) Search(query string) []model.Coin {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return d.All()
	}
	var out []model.Coin
	for _, c := range d.coins {
		if strings.Contains(strings.ToLower(c.Symbol), q) || strings.Contains(strings.ToLower(c.Name), q) {
			out = append(out, c)
		}
	}
	return out
}
