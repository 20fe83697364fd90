package model

// Merchant is a row of the known-merchant table.
type Merchant struct {
	Name         string // canonical display name, e.g. "McDonald's"
	Abbreviation string // short form seen in messages, may be empty
	Category     string
}

// Bank is a row of the bank table.
type Bank struct {
	Name      string
	SenderIDs []string // e.g. "VK-HDFCBK"
}
