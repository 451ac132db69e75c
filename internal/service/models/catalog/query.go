package catalog

// QueryServicesModel represents filter parameters for querying services.
type QueryServicesModel struct {
	Ids    []int64 `json:"ids,omitempty"`
	Limit  int     `json:"limit,omitempty"`
	Offset int     `json:"offset,omitempty"`
}

// QueryPastriesModel represents filter parameters for querying pastries.
type QueryPastriesModel struct {
	Search   string `json:"search,omitempty"`
	Category string `json:"category,omitempty"`
	Limit    int    `json:"limit,omitempty"`
	Offset   int    `json:"offset,omitempty"`
}
