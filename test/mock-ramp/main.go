package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

// Canned replies, one per envelope the real API is known to return.
var responses = map[string]string{
	"pathways-from-analytes": `{
		"data": [
			{"pathwayName": "Creatine metabolism", "pathwaySource": "smpdb", "pathwayId": "SMP0000018", "inputId": "hmdb:HMDB0000064", "commonName": "Creatine"},
			{"pathwayName": "Arginine and proline metabolism", "pathwaySource": "kegg", "pathwayId": "map00330", "inputId": "hmdb:HMDB0000064", "commonName": "Creatine"}
		],
		"function_call": ["getPathwayFromAnalyte(analytes = c('hmdb:HMDB0000064'))"],
		"numFoundInDB": "1 out of 1"
	}`,
	"ontologies-from-metabolites": `[
		{"Metabolites": "hmdb:HMDB0000064", "commonName": "Creatine", "Ontology": "Liver", "HMDBOntologyType": "Tissue and substructures"},
		{"Metabolites": "hmdb:HMDB0000148", "commonName": "L-Glutamic acid", "Ontology": "Colon", "HMDBOntologyType": "Tissue and substructures"}
	]`,
	"analytes-from-pathways": `{
		"data": [
			{"analyteName": "Sphingosine", "sourceAnalyteIDs": "hmdb:HMDB0000252", "geneOrCompound": "compound", "pathwayName": "sphingolipid metabolism", "source": {"name": "wiki", "pathwayId": "WP4725"}},
			{"analyteName": "SPTLC1", "sourceAnalyteIDs": "ensembl:ENSG00000090054", "geneOrCompound": "gene", "pathwayName": "sphingolipid metabolism", "source": {"name": "reactome", "pathwayId": "R-HSA-428157"}}
		]
	}`,
	"metabolites-from-ontologies": `{"ontology": "Colon", "metabolites": ["hmdb:HMDB0000148", "hmdb:HMDB0000064"]}`,
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "5762"
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/{endpoint}", handleQuery).Methods(http.MethodPost)
	r.HandleFunc("/api", handleRoot).Methods(http.MethodGet)

	log.Printf("Starting mock RaMP API server on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Mock RaMP API server failed: %v", err)
	}
}

func handleQuery(w http.ResponseWriter, r *http.Request) {
	endpoint := mux.Vars(r)["endpoint"]

	response, found := responses[endpoint]
	if !found {
		http.NotFound(w, r)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("Invalid JSON payload for %s: %v", endpoint, err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	log.Printf("Received query for %s: %s", endpoint, body)

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, response)
}

func handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, `{"message": "mock RaMP API"}`)
}
