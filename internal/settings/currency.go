package settings

// Currency is a display label: a symbol for amounts and a human-readable
// name for the picker.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

var currencies = []Currency{
	{Code: "RUB", Symbol: "₽", Name: "Российский рубль"},
	{Code: "USD", Symbol: "$", Name: "Доллар США"},
	{Code: "EUR", Symbol: "€", Name: "Евро"},
	{Code: "UAH", Symbol: "₴", Name: "Украинская гривна"},
	{Code: "BYN", Symbol: "Br", Name: "Белорусский рубль"},
	{Code: "KZT", Symbol: "₸", Name: "Казахстанский тенге"},
}

// Currencies returns the supported catalog in display order.
func Currencies() []Currency {
	return currencies
}

// CurrencyInfo looks up a currency by code.
func CurrencyInfo(code string) (Currency, bool) {
	for _, c := range currencies {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}
