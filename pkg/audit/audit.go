package audit

// QueryData describes one submission against a RaMP endpoint.
type QueryData struct {
	Endpoint  string
	Input     []string
	Options   map[string]string
	Timestamp int64
}

type Audit interface {
	Write(*QueryData) error
}
