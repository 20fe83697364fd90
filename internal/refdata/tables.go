package refdata

import "github.com/cleared-dev/smsledger/internal/model"

// Tables is the serializable form of the reference data. Keyword tables live
// in keywords.yaml; merchants and banks live in their own CSV files.
type Tables struct {
	Prefilter        PrefilterTables    `yaml:"prefilter"`
	Promotional      PromotionalTables  `yaml:"promotional"`
	Fraud            FraudTables        `yaml:"fraud"`
	TxnIndicators    TxnIndicators      `yaml:"transaction_indicators"`
	TransactionVerbs []string           `yaml:"transaction_verbs"`
	BalanceCues      []string           `yaml:"balance_cues"`
	Categories       []CategoryKeywords `yaml:"categories"`

	Merchants []model.Merchant `yaml:"-"`
	Banks     []model.Bank     `yaml:"-"`
}

// PrefilterTables drive the cheap accept/reject gate.
type PrefilterTables struct {
	NonFinancial  []string `yaml:"non_financial"`  // patterns
	Financial     []string `yaml:"financial"`      // patterns
	CurrencyVerbs []string `yaml:"currency_verbs"` // phrases that make a bare amount financial
	Auth          []string `yaml:"auth"`           // patterns
	AuthPassCues  []string `yaml:"auth_pass_cues"` // phrases
	Blacklist     []string `yaml:"blacklist"`      // phrases
}

// PromotionalTables hold the promotional keyword list.
type PromotionalTables struct {
	Keywords []string `yaml:"keywords"`
}

// FraudTables drive the fraud risk layers.
type FraudTables struct {
	SecurityAlerts []string    `yaml:"security_alerts"` // phrases
	Legitimate     []string    `yaml:"legitimate"`      // patterns
	Rules          []FraudRule `yaml:"rules"`
	Shorteners     []string    `yaml:"shorteners"`
	TransferCues   []string    `yaml:"transfer_cues"` // phrases
}

// FraudRule tags messages matching Pattern with Category.
type FraudRule struct {
	Category model.IndicatorCategory `yaml:"category"`
	Pattern  string                  `yaml:"pattern"`
}

// TxnIndicators are keyword phrases per transaction type.
type TxnIndicators struct {
	Debit    []string `yaml:"debit"`
	Credit   []string `yaml:"credit"`
	Refund   []string `yaml:"refund"`
	Transfer []string `yaml:"transfer"`
	EMI      []string `yaml:"emi"`
}

// CategoryKeywords maps keywords to a spending category.
type CategoryKeywords struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}
