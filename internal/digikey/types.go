package digikey

// Part is one candidate record returned by the part-search API.
//
// Field names follow the DigiKey part-search v4 response shape so the JSON
// mapping stays declarative.
type Part struct {
	DigiKeyPartNumber      string       `json:"DigiKeyPartNumber"`
	ManufacturerPartNumber string       `json:"ManufacturerPartNumber"`
	Manufacturer           Manufacturer `json:"Manufacturer"`
	ProductDescription     string       `json:"ProductDescription"`
	PrimaryDatasheet       string       `json:"PrimaryDatasheet"`
	Parameters             []Parameter  `json:"Parameters"`
}

// Manufacturer wraps the nested manufacturer name.
type Manufacturer struct {
	Value string `json:"Value"`
}

// Parameter is one (name, value) pair from a part's parameter list.
// Order is meaningful: footprint extraction is a first-match scan.
type Parameter struct {
	Parameter string `json:"Parameter"`
	Value     string `json:"Value"`
}

type searchRequest struct {
	Keywords            string     `json:"Keywords"`
	SearchOptions       string     `json:"SearchOptions"`
	RecordCount         int        `json:"RecordCount"`
	RecordStartPosition int        `json:"RecordStartPosition"`
	Sort                searchSort `json:"Sort"`
	RequestedQuantity   int        `json:"RequestedQuantity"`
}

type searchSort struct {
	Option          string `json:"Option"`
	Direction       string `json:"Direction"`
	SortParameterID int    `json:"SortParameterId"`
}

type searchResponse struct {
	Parts []Part `json:"Parts"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}
