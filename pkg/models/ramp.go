package models

// Bodies sent upstream, one per RaMP endpoint. The request tag names the
// QueryRequest field a value comes from, for validation messages.

type PathwaysFromAnalytes struct {
	Analytes []string `json:"analytes" request:"input" validate:"min=1,dive,required"`
}

type OntologiesFromMetabolites struct {
	Metabolite []string `json:"metabolite" request:"input" validate:"min=1,dive,required"`
	NamesOrIDs string   `json:"namesOrIds" request:"names_or_ids" validate:"oneof=names ids"`
}

type AnalytesFromPathways struct {
	Pathway     []string `json:"pathway" request:"input" validate:"min=1,dive,required"`
	AnalyteType string   `json:"analyte_type" request:"analyte_type" validate:"oneof=both gene compound"`
	Match       string   `json:"match" request:"match" validate:"oneof=exact partial"`
}

type MetabolitesFromOntologies struct {
	Ontology []string `json:"ontology" request:"input" validate:"min=1,dive,required"`
	Format   string   `json:"format" request:"format" validate:"oneof=json xml"`
}
