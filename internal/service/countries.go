package service

var countryNames = map[string]string{
	"AR": "Argentina",
	"AT": "Austria",
	"AU": "Australia",
	"BE": "Belgium",
	"BO": "Bolivia",
	"BR": "Brazil",
	"CA": "Canada",
	"CH": "Switzerland",
	"CL": "Chile",
	"CN": "China",
	"CO": "Colombia",
	"CR": "Costa Rica",
	"CU": "Cuba",
	"CZ": "Czech Republic",
	"DE": "Germany",
	"DK": "Denmark",
	"DO": "Dominican Republic",
	"EC": "Ecuador",
	"EG": "Egypt",
	"ES": "Spain",
	"FI": "Finland",
	"FR": "France",
	"GB": "United Kingdom",
	"GR": "Greece",
	"GT": "Guatemala",
	"HN": "Honduras",
	"ID": "Indonesia",
	"IE": "Ireland",
	"IL": "Israel",
	"IN": "India",
	"IT": "Italy",
	"JP": "Japan",
	"KR": "South Korea",
	"MX": "Mexico",
	"NG": "Nigeria",
	"NI": "Nicaragua",
	"NL": "Netherlands",
	"NO": "Norway",
	"NZ": "New Zealand",
	"PA": "Panama",
	"PE": "Peru",
	"PH": "Philippines",
	"PL": "Poland",
	"PT": "Portugal",
	"PY": "Paraguay",
	"RO": "Romania",
	"RU": "Russia",
	"SA": "Saudi Arabia",
	"SE": "Sweden",
	"SV": "El Salvador",
	"TR": "Turkey",
	"UA": "Ukraine",
	"US": "United States",
	"UY": "Uruguay",
	"VE": "Venezuela",
	"ZA": "South Africa",
}

// CountryName maps an ISO 3166-1 alpha-2 code to an English name, returning
// the code itself when it is not known
func CountryName(code string) string {
	if name, ok := countryNames[code]; ok {
		return name
	}
	return code
}
