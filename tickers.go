package thirteenf

import "strings"

// tickerEntry pairs a 13F issuer name with its exchange ticker. Issuer
// names in filings are free text, so lookup also tries substring matching
// in both directions against these patterns, in declaration order.
type tickerEntry struct {
	name   string
	ticker string
}

// tickerTable is a static mapping of common issuer names as they appear in
// 13F filings. It is a curated excerpt, not a complete symbology feed;
// unknown issuers report "N/A".
var tickerTable = []tickerEntry{
	{"APPLE INC", "AAPL"},
	{"AMERICAN EXPRESS CO", "AXP"},
	{"BANK AMER CORP", "BAC"},
	{"BANK OF AMERICA CORP", "BAC"},
	{"COCA COLA CO", "KO"},
	{"COCA-COLA CO", "KO"},
	{"CHEVRON CORP NEW", "CVX"},
	{"OCCIDENTAL PETE CORP", "OXY"},
	{"KRAFT HEINZ CO", "KHC"},
	{"MOODYS CORP", "MCO"},
	{"VERISIGN INC", "VRSN"},
	{"DAVITA INC", "DVA"},
	{"HP INC", "HPQ"},
	{"CAPITAL ONE FINL CORP", "COF"},
	{"KROGER CO", "KR"},
	{"CHUBB LIMITED", "CB"},
	{"VISA INC", "V"},
	{"MASTERCARD INC", "MA"},
	{"CONSTELLATION BRANDS INC", "STZ"},
	{"AMAZON COM INC", "AMZN"},
	{"AON PLC", "AON"},
	{"SIRIUS XM HOLDINGS INC", "SIRI"},
	{"DOMINOS PIZZA INC", "DPZ"},
}

var tickerByName = func() map[string]string {
	m := make(map[string]string, len(tickerTable))
	for _, e := range tickerTable {
		m[e.name] = e.ticker
	}
	return m
}()

// TickerSymbol resolves an issuer name to a ticker: exact match first,
// then bidirectional substring match, else "N/A".
func TickerSymbol(companyName string) string {
	name := strings.ToUpper(strings.TrimSpace(companyName))
	if name == "" {
		return "N/A"
	}
	if ticker, ok := tickerByName[name]; ok {
		return ticker
	}
	for _, e := range tickerTable {
		if strings.Contains(name, e.name) || strings.Contains(e.name, name) {
			return e.ticker
		}
	}
	return "N/A"
}
