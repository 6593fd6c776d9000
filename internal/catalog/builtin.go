package catalog

import "ChartFeed/internal/model"

type d = model.CurrencyDescriptor

var builtin = []Category{
	{Name: "GAU Index", Symbols: []d{
		{Symbol: "GAUUSD", DisplayName: "GAU vs USD", Description: "GAU Index vs US Dollar"},
	}},
	{Name: "Major Currencies", Symbols: []d{
		{Symbol: "GAUEUR", DisplayName: "GAU vs EUR", Description: "Euro"},
		{Symbol: "GAUGBP", DisplayName: "GAU vs GBP", Description: "British Pound"},
		{Symbol: "GAUJPY", DisplayName: "GAU vs JPY", Description: "Japanese Yen"},
		{Symbol: "GAUCHF", DisplayName: "GAU vs CHF", Description: "Swiss Franc"},
		{Symbol: "GAUCAD", DisplayName: "GAU vs CAD", Description: "Canadian Dollar"},
		{Symbol: "GAUAUD", DisplayName: "GAU vs AUD", Description: "Australian Dollar"},
		{Symbol: "GAUNZD", DisplayName: "GAU vs NZD", Description: "New Zealand Dollar"},
	}},
	{Name: "Asian Currencies", Symbols: []d{
		{Symbol: "GAUCNY", DisplayName: "GAU vs CNY", Description: "Chinese Yuan"},
		{Symbol: "GAUHKD", DisplayName: "GAU vs HKD", Description: "Hong Kong Dollar"},
		{Symbol: "GAUINR", DisplayName: "GAU vs INR", Description: "Indian Rupee"},
		{Symbol: "GAUKRW", DisplayName: "GAU vs KRW", Description: "South Korean Won"},
		{Symbol: "GAUSGD", DisplayName: "GAU vs SGD", Description: "Singapore Dollar"},
		{Symbol: "GAUTHB", DisplayName: "GAU vs THB", Description: "Thai Baht"},
		{Symbol: "GAUIDR", DisplayName: "GAU vs IDR", Description: "Indonesian Rupiah"},
		{Symbol: "GAUMYR", DisplayName: "GAU vs MYR", Description: "Malaysian Ringgit"},
		{Symbol: "GAUPHP", DisplayName: "GAU vs PHP", Description: "Philippine Peso"},
		{Symbol: "GAUVND", DisplayName: "GAU vs VND", Description: "Vietnamese Dong"},
	}},
	{Name: "European Currencies", Symbols: []d{
		{Symbol: "GAUSEK", DisplayName: "GAU vs SEK", Description: "Swedish Krona"},
		{Symbol: "GAUNOK", DisplayName: "GAU vs NOK", Description: "Norwegian Krone"},
		{Symbol: "GAUDKK", DisplayName: "GAU vs DKK", Description: "Danish Krone"},
		{Symbol: "GAUPLN", DisplayName: "GAU vs PLN", Description: "Polish Zloty"},
		{Symbol: "GAUCZK", DisplayName: "GAU vs CZK", Description: "Czech Koruna"},
		{Symbol: "GAUHUF", DisplayName: "GAU vs HUF", Description: "Hungarian Forint"},
		{Symbol: "GAURON", DisplayName: "GAU vs RON", Description: "Romanian Leu"},
		{Symbol: "GAURUB", DisplayName: "GAU vs RUB", Description: "Russian Ruble"},
		{Symbol: "GAUTRY", DisplayName: "GAU vs TRY", Description: "Turkish Lira"},
	}},
	{Name: "Americas", Symbols: []d{
		{Symbol: "GAUMXN", DisplayName: "GAU vs MXN", Description: "Mexican Peso"},
		{Symbol: "GAUBRL", DisplayName: "GAU vs BRL", Description: "Brazilian Real"},
		{Symbol: "GAUARS", DisplayName: "GAU vs ARS", Description: "Argentine Peso"},
		{Symbol: "GAUCLP", DisplayName: "GAU vs CLP", Description: "Chilean Peso"},
		{Symbol: "GAUCOP", DisplayName: "GAU vs COP", Description: "Colombian Peso"},
	}},
	{Name: "Other", Symbols: []d{
		{Symbol: "GAUZAR", DisplayName: "GAU vs ZAR", Description: "South African Rand"},
		{Symbol: "GAUILS", DisplayName: "GAU vs ILS", Description: "Israeli Shekel"},
		{Symbol: "GAUSAR", DisplayName: "GAU vs SAR", Description: "Saudi Riyal"},
		{Symbol: "GAUAED", DisplayName: "GAU vs AED", Description: "UAE Dirham"},
	}},
}
