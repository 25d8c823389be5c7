package audit

import "fmt"

// Operation is the scope transition an OnBehalfOfEvent records.
type Operation string

const (
	OperationEnter  Operation = "enter"
	OperationExit   Operation = "exit"
	OperationReject Operation = "reject"
)

// OnBehalfOfEvent records a client entering, leaving or being refused an
// on-behalf-of scope.
type OnBehalfOfEvent struct {
	ActingFor string
	Operation Operation
	APIURL    string
	Err       error
}

func (e OnBehalfOfEvent) MessageID() string {
	return "on-behalf-of"
}

func (e OnBehalfOfEvent) Message() string {
	switch e.Operation {
	case OperationEnter:
		return fmt.Sprintf("started acting on behalf of %s", e.ActingFor)
	case OperationReject:
		return fmt.Sprintf("refused to act on behalf of %s: %v", e.ActingFor, e.Err)
	default:
		if e.Err != nil {
			return fmt.Sprintf("stopped acting on behalf of %s after a failure: %v", e.ActingFor, e.Err)
		}
		return fmt.Sprintf("stopped acting on behalf of %s", e.ActingFor)
	}
}

func (e OnBehalfOfEvent) Severity() Severity {
	if e.Err != nil {
		return SeverityWarning
	}
	return SeverityInfo
}

func (e OnBehalfOfEvent) Facility() int {
	return FacilityAuthPriv
}

func (e OnBehalfOfEvent) StructuredData() map[string]map[string]string {
	result := "success"
	if e.Err != nil {
		result = "failure"
	}
	sd := map[string]map[string]string{
		SDIDSubject: {
			"on_behalf_of": e.ActingFor,
		},
		SDIDAction: {
			"operation": string(e.Operation),
			"result":    result,
		},
	}
	if e.APIURL != "" {
		sd[SDIDClient] = map[string]string{
			"api_url": e.APIURL,
		}
	}
	return sd
}
