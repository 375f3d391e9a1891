package endpoint

import (
	"fmt"
	"strings"
)

const (
	PathwaysFromAnalytes      = "pathways-from-analytes"
	OntologiesFromMetabolites = "ontologies-from-metabolites"
	AnalytesFromPathways      = "analytes-from-pathways"
	MetabolitesFromOntologies = "metabolites-from-ontologies"
)

const (
	OptionAnalyteType = "analyte_type"
	OptionMatch       = "match"
	OptionNamesOrIDs  = "names_or_ids"
	OptionFormat      = "format"
)

type Option struct {
	Name    string   `json:"name"`
	Label   string   `json:"label"`
	Choices []string `json:"choices"`
}

// Default is the value used when a request leaves the option empty.
func (o Option) Default() string {
	return o.Choices[0]
}

type Endpoint struct {
	Path         string   `json:"path"`
	Title        string   `json:"title"`
	InputLabel   string   `json:"input_label"`
	DefaultInput string   `json:"default_input"`
	Options      []Option `json:"options"`
}

var analytesInput = "ensembl:ENSG00000135679, hmdb:HMDB0000064, hmdb:HMDB0000148, ensembl:ENSG00000141510"

var catalog = []Endpoint{
	{
		Path:         AnalytesFromPathways,
		Title:        "Analytes from Pathways",
		InputLabel:   "Enter pathways (comma-separated)",
		DefaultInput: "De Novo Triacylglycerol Biosynthesis, sphingolipid metabolism",
		Options: []Option{
			{Name: OptionAnalyteType, Label: "Select Analyte Type", Choices: []string{"both", "gene", "compound"}},
			{Name: OptionMatch, Label: "Select Match Type", Choices: []string{"exact", "partial"}},
		},
	},
	{
		Path:         OntologiesFromMetabolites,
		Title:        "Ontologies from Metabolites",
		InputLabel:   "Enter metabolites (comma-separated)",
		DefaultInput: analytesInput,
		Options: []Option{
			{Name: OptionNamesOrIDs, Label: "Names or IDs", Choices: []string{"names", "ids"}},
		},
	},
	{
		Path:         PathwaysFromAnalytes,
		Title:        "Pathways from Analytes",
		InputLabel:   "Enter analytes (comma-separated)",
		DefaultInput: analytesInput,
		Options:      []Option{},
	},
	{
		Path:         MetabolitesFromOntologies,
		Title:        "Metabolites from Ontologies",
		InputLabel:   "Enter ontology terms (comma-separated)",
		DefaultInput: "Colon, Liver, Lung",
		Options: []Option{
			{Name: OptionFormat, Label: "Select Format", Choices: []string{"json", "xml"}},
		},
	},
}

type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown endpoint: %s", e.Path)
}

// All returns the endpoints in display order.
func All() []Endpoint {
	return append([]Endpoint{}, catalog...)
}

func Lookup(path string) (Endpoint, error) {
	for _, e := range catalog {
		if e.Path == path {
			return e, nil
		}
	}
	return Endpoint{}, &NotFoundError{Path: path}
}

func (e Endpoint) Option(name string) (Option, bool) {
	for _, o := range e.Options {
		if o.Name == name {
			return o, true
		}
	}
	return Option{}, false
}

// SplitList splits comma-separated input, trimming spaces and dropping
// empty entries.
func SplitList(input string) []string {
	ss := strings.Split(input, ",")
	aux := make([]string, 0, len(ss))

	for _, entry := range ss {
		if s := strings.TrimSpace(entry); s != "" {
			aux = append(aux, s)
		}
	}

	return aux
}
