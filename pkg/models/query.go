package models

// QueryRequest is the body accepted by the query endpoints. Input is a
// comma-separated list; options left empty take their first choice.
type QueryRequest struct {
	Input       string `json:"input"`
	AnalyteType string `json:"analyte_type,omitempty"`
	Match       string `json:"match,omitempty"`
	NamesOrIDs  string `json:"names_or_ids,omitempty"`
	Format      string `json:"format,omitempty"`
}

type QueryResponse struct {
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
	Error   string   `json:"error"`
}
