package model

import "strings"

// ObjectID mirrors the {"$oid": "..."} wrapper of the bundled dataset.
type ObjectID struct {
	OID string `json:"$oid"`
}

// Record is one host/target gene-pair entry.
type Record struct {
	ID                  ObjectID `json:"_id"`
	HostGeneName        string   `json:"hgene_name"`
	TargetGeneName      string   `json:"tgene_name"`
	SequenceDescription string   `json:"seq_desc"`
	HostSequence        string   `json:"hgene_seq"`
	TargetSequence      string   `json:"tgene_seq"`
	IsOutOfFrame        bool     `json:"isOutOfFrame"`
	IsAnalyzed          bool     `json:"isAnalyzed"`
}

func (r Record) FrameStatus() string {
	if r.IsOutOfFrame {
		return "Out of Frame"
	}
	return "In Frame"
}

func (r Record) AnalysisStatus() string {
	if r.IsAnalyzed {
		return "Analyzed"
	}
	return "Pending Analysis"
}

// Sequence returns the host or target sequence.
func (r Record) Sequence(side Side) string {
	if side == SideTarget {
		return r.TargetSequence
	}
	return r.HostSequence
}

// GeneName returns the gene name belonging to side.
func (r Record) GeneName(side Side) string {
	if side == SideTarget {
		return r.TargetGeneName
	}
	return r.HostGeneName
}

// Side selects which sequence of a record is analysed.
type Side int

const (
	SideHost Side = iota
	SideTarget
)

func (s Side) String() string {
	switch s {
	case SideTarget:
		return "target"
	default:
		return "host"
	}
}

// Title is the heading shown above a sequence and its chart.
func (s Side) Title() string {
	switch s {
	case SideTarget:
		return "Target Gene Sequence"
	default:
		return "Host Gene Sequence"
	}
}

func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	*s = ParseSide(string(b))
	return nil
}

func ParseSide(raw string) Side {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "target", "tgene", "t":
		return SideTarget
	default:
		return SideHost // default to host
	}
}

// SignalPoint is one position of a mapped sequence. Smoothed is nil while
// the rolling window has not filled yet.
type SignalPoint struct {
	Position int      `json:"position"`
	Symbol   string   `json:"amino_acid"`
	RawValue float64  `json:"p_value"`
	Smoothed *float64 `json:"rolling_mean"`
}
