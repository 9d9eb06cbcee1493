package classifier

// Department tier keyword sets. Tiers are evaluated in the order they
// appear in newTiers; first match wins and no later tier is consulted.
// Matching is substring-based against the raw lower-cased complaint, so
// multi-word phrases with surrounding punctuation still hit.

// theftDisputeKeywords cover fraud/identity-theft/security terms and
// debt-collection/credit-bureau terms. A hit here also forces the
// sentiment label to Negative.
var theftDisputeKeywords = []string{
	"fraud", "stole", "unauthorized", "suspicious email", "scam", "stolen",
	"dispute", "report fraud", "identity theft", "phishing", "data breach",
	"compromised account", "unrecognized transaction", "hacked", "security issue",
	"debt collection", "collect debt", "collection agency", "owed money",
	"bill collector", "harassment", "credit bureau", "debt dispute", "collection call",
	"credit report", "credit score", "credit history", "dispute credit",
	"reporting error", "fico", "equifax", "transunion", "experian", "credit inquiry",
}

var creditCardKeywords = []string{
	"credit card", "prepaid card", "double charged", "transaction error",
	"card payment", "billing issue", "lost card", "stolen card", "card balance",
	"annual fee", "statement", "rewards", "card dispute", "credit limit", "apr",
}

var mortgagesLoansKeywords = []string{
	"mortgage", "loan", "personal loan", "home loan", "auto loan",
	"interest rate", "refinance", "payment plan", "student loan", "debt",
	"loan application", "mortgage payment", "vehicle loan", "payday loan", "title loan",
}

var bankAccountKeywords = []string{
	"bank account", "savings account", "checking account", "online banking",
	"mobile app", "account access", "deposit", "withdrawal", "transfer funds",
	"account balance", "atm", "branch", "login", "passcode", "routing number",
	"direct deposit", "account closed", "new account", "money transfer",
	"virtual currency", "money service", "wire transfer", "cryptocurrency",
	"send money", "receive money", "payment app", "remittance",
}
