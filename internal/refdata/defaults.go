package refdata

import "github.com/cleared-dev/smsledger/internal/model"

// DefaultTables returns the built-in reference tables.
func DefaultTables() Tables {
	return Tables{
		Prefilter:        defaultPrefilter(),
		Promotional:      PromotionalTables{Keywords: defaultPromoKeywords()},
		Fraud:            defaultFraud(),
		TxnIndicators:    defaultTxnIndicators(),
		TransactionVerbs: []string{"debited", "credited", "payment", "spent", "purchase", "transaction", "paid", "withdrawn", "transferred", "sent"},
		BalanceCues: []string{
			"available balance", "avl bal", "avl. bal", "avl.bal", "balance is", "balance as of",
			"closing balance", "current balance", "account balance", "a/c balance", "bal:",
		},
		Categories: defaultCategories(),
		Merchants:  defaultMerchants(),
		Banks:      defaultBanks(),
	}
}

func defaultPrefilter() PrefilterTables {
	return PrefilterTables{
		NonFinancial: []string{
			`\brecharge\s+(?:of\s+(?:\S+\s+){1,3})?(?:is\s+|was\s+|has\s+been\s+)?successful`,
			`\bplan\s+(?:is\s+)?activated\b`,
			`\bplan\s+validity\b`,
			`\bdata\s*:\s*[0-9.]+\s*gb\b`,
			`\bdata\s+usage\b`,
			`[0-9]+%\s+of\s+(?:your\s+)?(?:daily\s+)?data\b`,
			`\byou\s+have\s+used\b`,
			`\bsubscription\s+(?:has\s+been\s+|is\s+)?renewed\b`,
		},
		Financial: []string{
			`\b(?:debited|credited|transferred|withdrawn|deducted|refunded|spent)\b`,
			`\b(?:transaction|txn|payment|purchase)\b`,
			`\b(?:a/c|acct|account)\s*(?:no\.?\s*)?[x*]*\d{3,}`,
			`\bcard\s+(?:ending\s+(?:with\s+)?|no\.?\s*)?[x*]*\d{4}\b`,
			`\bbalance\b`,
			`\bavl\.?\s*(?:bal|lmt|limit)\b`,
			`\b(?:upi|neft|imps|rtgs)\b`,
			`\bemi\b`,
		},
		CurrencyVerbs: []string{"debited", "credited", "transaction", "txn", "spent", "payment", "paid", "sent", "balance", "emi", "withdrawal", "bill"},
		Auth: []string{
			`\b2fa\s+code\b`,
			`\bverification\s+code\b`,
			`\botp\s+(?:is|for)\b`,
			`\bone[\s-]time\s+password\b`,
			`\bsecurity\s+code\b`,
			`\blogin\s+code\b`,
			`\botp\b`,
		},
		AuthPassCues: []string{"transaction", "payment", "debited", "credited", "rs.", "rs", "inr", "₹"},
		Blacklist: []string{
			"out for delivery", "delivered", "shipped", "your order has", "track your order",
			"unsubscribe", "newsletter", "download the app", "rate us", "feedback",
			"appointment", "webinar", "register now",
		},
	}
}

func defaultPromoKeywords() []string {
	return []string{
		"offer", "discount", "sale", "cashback", "exclusive", "limited time", "special", "deal",
		"promotion", "promo", "voucher", "coupon", "code", "win", "prize", "contest", "lucky",
		"draw", "festival", "seasonal", "anniversary", "celebration", "bonus", "reward", "points",
		"membership",
	}
}

func defaultFraud() FraudTables {
	return FraudTables{
		SecurityAlerts: []string{
			"not you?", "block upi", "suspicious transaction", "unauthorized transaction",
			"unauthorised transaction", "fraud alert", "suspicious activity", "unrecognized transaction",
		},
		Legitimate: []string{
			`\bsent\s+rs\.?`,
			`\bdebited\b`,
			`\bavl\.?\s*bal\b`,
			`\bupi\s*ref\.?\s*no\b`,
			`\bcredited\s+(?:to|with|in)\b`,
		},
		Rules: []FraudRule{
			{model.IndicatorKYCScam, `\b(?:update|complete|verify|re-?submit)\s+(?:your\s+)?kyc\b`},
			{model.IndicatorKYCScam, `\bkyc\b.{0,40}\b(?:expir\w*|pending|suspend\w*|block\w*)`},
			{model.IndicatorKYCScam, `\baccount\s+(?:will\s+be|has\s+been|is)\s+(?:blocked|suspended|deactivated|frozen)\b`},
			{model.IndicatorKYCScam, `\bpan\s+(?:card\s+)?(?:update|link)\w*`},
			{model.IndicatorUrgentAction, `\burgent(?:ly)?\b`},
			{model.IndicatorUrgentAction, `\bimmediately\b`},
			{model.IndicatorUrgentAction, `\bact\s+now\b`},
			{model.IndicatorUrgentAction, `\bwithin\s+\d+\s+(?:hours|hrs|minutes|mins)\b`},
			{model.IndicatorUrgentAction, `\blast\s+chance\b`},
			{model.IndicatorCredentialPhishing, `\bshare\s+(?:your\s+)?(?:otp|pin|cvv|password)\b`},
			{model.IndicatorCredentialPhishing, `\b(?:enter|confirm|provide|send)\s+(?:your\s+)?(?:otp|pin|cvv|password|card\s+details|login\s+details)\b`},
			{model.IndicatorCredentialPhishing, `\bverify\s+your\s+(?:identity|account|details)\b`},
			{model.IndicatorPrizeScam, `\b(?:you\s+(?:have\s+)?won|winner|lucky\s+draw|lottery|jackpot)\b`},
			{model.IndicatorPrizeScam, `\bclaim\s+(?:your\s+)?(?:prize|reward|gift|cash)\b`},
			{model.IndicatorSuspiciousPhrase, `\bclick\s+(?:here|the\s+link|below)\b`},
			{model.IndicatorSuspiciousPhrase, `\b(?:loan\s+(?:approved|sanctioned)|pre-?approved\s+loan)\b`},
			{model.IndicatorSuspiciousPhrase, `\bgift\s+card\b`},
		},
		Shorteners: []string{
			"bit.ly", "goo.gl", "tinyurl.com", "t.co", "ow.ly", "is.gd", "buff.ly", "adf.ly",
			"bit.do", "cutt.ly", "rb.gy", "shorturl.at", "tiny.cc",
		},
		TransferCues: []string{"upi", "neft", "imps", "rtgs"},
	}
}

func defaultTxnIndicators() TxnIndicators {
	return TxnIndicators{
		Debit:    []string{"debited", "spent", "paid", "purchase", "deducted", "charged", "withdrawn", "withdrawal"},
		Credit:   []string{"credited", "received", "deposited", "added to"},
		Refund:   []string{"refund", "refunded", "reversal", "reversed", "chargeback"},
		Transfer: []string{"transferred", "transfer", "sent", "neft", "imps", "rtgs", "upi"},
		EMI:      []string{"emi", "installment", "instalment"},
	}
}

func defaultCategories() []CategoryKeywords {
	return []CategoryKeywords{
		{"Groceries", []string{"grocery", "supermarket", "mart", "fresh", "basket", "kirana", "blinkit", "zepto"}},
		{"Food Delivery", []string{"swiggy", "zomato", "food delivery"}},
		{"Fast Food", []string{"mcdonald", "burger", "pizza", "kfc", "domino"}},
		{"Dining", []string{"restaurant", "cafe", "coffee", "starbucks", "kitchen", "bistro", "dine"}},
		{"Transportation", []string{"uber", "ola", "rapido", "taxi", "cab", "metro"}},
		{"Fuel", []string{"petrol", "fuel", "diesel", "petroleum", "indian oil"}},
		{"Travel", []string{"airline", "airways", "flight", "hotel", "irctc", "railway", "makemytrip", "travel"}},
		{"Shopping", []string{"amazon", "flipkart", "myntra", "ajio", "store", "shop", "retail", "mall"}},
		{"Entertainment", []string{"movie", "cinema", "netflix", "spotify", "hotstar", "pvr", "inox", "bookmyshow"}},
		{"Utilities", []string{"electricity", "power", "water", "broadband", "recharge", "airtel", "jio", "bsnl"}},
		{"Healthcare", []string{"pharmacy", "hospital", "clinic", "medical", "apollo", "pharmeasy"}},
		{"Education", []string{"school", "college", "university", "tuition", "course"}},
		{"Insurance", []string{"insurance", "lic", "premium"}},
		{"Loan", []string{"loan", "emi"}},
		{"Investment", []string{"mutual fund", "sip", "zerodha", "groww"}},
	}
}

func defaultMerchants() []model.Merchant {
	return []model.Merchant{
		{Name: "Swiggy", Category: "Food Delivery"},
		{Name: "Zomato", Category: "Food Delivery"},
		{Name: "McDonald's", Category: "Fast Food"},
		{Name: "Domino's", Category: "Fast Food"},
		{Name: "KFC", Category: "Fast Food"},
		{Name: "Pizza Hut", Category: "Fast Food"},
		{Name: "Starbucks", Category: "Dining"},
		{Name: "Amazon Pay", Category: "Shopping"},
		{Name: "Amazon", Abbreviation: "AMZN", Category: "Shopping"},
		{Name: "Flipkart", Category: "Shopping"},
		{Name: "Myntra", Category: "Shopping"},
		{Name: "BigBasket", Abbreviation: "BBNOW", Category: "Groceries"},
		{Name: "Blinkit", Category: "Groceries"},
		{Name: "Zepto", Category: "Groceries"},
		{Name: "DMart", Category: "Groceries"},
		{Name: "Uber", Category: "Transportation"},
		{Name: "Ola", Category: "Transportation"},
		{Name: "Rapido", Category: "Transportation"},
		{Name: "IRCTC", Category: "Travel"},
		{Name: "MakeMyTrip", Abbreviation: "MMT", Category: "Travel"},
		{Name: "Netflix", Category: "Entertainment"},
		{Name: "Spotify", Category: "Entertainment"},
		{Name: "BookMyShow", Category: "Entertainment"},
		{Name: "Airtel", Category: "Utilities"},
		{Name: "Jio", Category: "Utilities"},
		{Name: "Tata Power", Category: "Utilities"},
		{Name: "Apollo Pharmacy", Category: "Healthcare"},
		{Name: "Indian Oil", Abbreviation: "IOCL", Category: "Fuel"},
		{Name: "Bharat Petroleum", Abbreviation: "BPCL", Category: "Fuel"},
		{Name: "Paytm", Category: "Wallet"},
		{Name: "PhonePe", Category: "Wallet"},
		{Name: "Google Pay", Abbreviation: "GPay", Category: "Wallet"},
	}
}

func defaultBanks() []model.Bank {
	return []model.Bank{
		{Name: "ICICI", SenderIDs: []string{"ICICIB", "ICICIBK", "ICICIT"}},
		{Name: "HDFC", SenderIDs: []string{"HDFCBK", "HDFCBN"}},
		{Name: "SBI", SenderIDs: []string{"SBIINB", "SBIPSG", "ATMSBI", "CBSSBI"}},
		{Name: "AXIS", SenderIDs: []string{"AXISBK"}},
		{Name: "KOTAK", SenderIDs: []string{"KOTAKB"}},
		{Name: "YES", SenderIDs: []string{"YESBNK"}},
		{Name: "PNB", SenderIDs: []string{"PNBSMS"}},
		{Name: "CANARA", SenderIDs: []string{"CANBNK"}},
		{Name: "BOI", SenderIDs: []string{"BOIIND"}},
		{Name: "UNION", SenderIDs: []string{"UBOI"}},
		{Name: "IDBI", SenderIDs: []string{"IDBIBK"}},
		{Name: "BARODA", SenderIDs: []string{"BOBTXN", "BOBSMS"}},
	}
}
