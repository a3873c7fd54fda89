package model

// Coin is static reference data for one tradable symbol.
type Coin struct {
	Symbol string
	Name   string
	Icon   string
}
