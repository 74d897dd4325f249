package domain

import "time"

// SourceID identifies one upstream data source.
type SourceID string

const (
	SourceProfile        SourceID = "profile"
	SourcePlans          SourceID = "plans"
	SourceMeetings       SourceID = "meetings"
	SourceLegalDocuments SourceID = "legal_documents"
	SourceChatHistory    SourceID = "chat_history"
	SourceRiskSessions   SourceID = "risk_sessions"
	SourceEstate         SourceID = "estate"
	SourceMutualFunds    SourceID = "mutual_funds"
	SourceTaxPlanning    SourceID = "tax_planning"
	SourceInvitations    SourceID = "invitations"
)

// ConfiguredSources returns every source the aggregator must settle before a
// report can be normalized. Order is stable for logging and manifests.
func ConfiguredSources() []SourceID {
	return []SourceID{
		SourceProfile,
		SourcePlans,
		SourceMeetings,
		SourceLegalDocuments,
		SourceChatHistory,
		SourceRiskSessions,
		SourceEstate,
		SourceMutualFunds,
		SourceTaxPlanning,
		SourceInvitations,
	}
}

type SourceStatus string

const (
	SourceStatusOK      SourceStatus = "ok"
	SourceStatusFailed  SourceStatus = "failed"
	SourceStatusTimeout SourceStatus = "timeout"
)

type ErrorKind string

const (
	ErrorKindNotFound     ErrorKind = "not_found"
	ErrorKindUnauthorized ErrorKind = "unauthorized"
	ErrorKindTimeout      ErrorKind = "timeout"
	ErrorKindMalformed    ErrorKind = "malformed"
	ErrorKindUnknown      ErrorKind = "unknown"
)

// SourceError is an adapter failure translated into data. It never escapes
// the aggregation boundary as a Go error.
type SourceError struct {
	Kind   ErrorKind
	Detail string
}

func (e SourceError) Error() string {
	return string(e.Kind) + ": " + e.Detail
}

// RawRecord is one untyped record as returned by a source, before
// normalization.
type RawRecord map[string]any

// SourceResult is the terminal outcome of one adapter invocation.
// Immutable once produced.
type SourceResult struct {
	SourceID  SourceID
	Status    SourceStatus
	Payload   []RawRecord
	Err       *SourceError
	FetchedAt time.Time
}

func (r SourceResult) OK() bool {
	return r.Status == SourceStatusOK
}

// RawBundle holds every source result for one report request. It is written
// once by the aggregator and read-only afterwards; a complete bundle has an
// entry for every configured source.
type RawBundle struct {
	ClientID string
	Results  map[SourceID]SourceResult
}

func (b RawBundle) Result(id SourceID) (SourceResult, bool) {
	r, ok := b.Results[id]
	return r, ok
}

// Complete reports whether every configured source has settled.
func (b RawBundle) Complete() bool {
	for _, id := range ConfiguredSources() {
		if _, ok := b.Results[id]; !ok {
			return false
		}
	}
	return true
}
