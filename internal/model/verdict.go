package model

import (
	"errors"
	"fmt"
)

var errUnknownLabel = errors.New("unknown verdict label")

// Verdict is the tri-state answer of a single signal source. The zero value is
// Unknown so an unset verdict can never be mistaken for Legitimate.
type Verdict int

const (
	// Unknown means the source gave no signal (unconfigured, unreachable, failed).
	Unknown Verdict = iota
	// Phishing means the source flagged the URL.
	Phishing
	// Legitimate means the source checked the URL and found nothing.
	Legitimate
)

func (v Verdict) String() string {
	switch v {
	case Phishing:
		return "Phishing"
	case Legitimate:
		return "Legitimate"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the verdict as its label.
func (v Verdict) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a label produced by MarshalText.
func (v *Verdict) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Phishing":
		*v = Phishing
	case "Legitimate":
		*v = Legitimate
	case "Unknown":
		*v = Unknown
	default:
		return fmt.Errorf("%w: %q", errUnknownLabel, text)
	}
	return nil
}

// FinalVerdict is the fused decision over the three sources.
type FinalVerdict int

const (
	// Suspicious is returned when no label reaches a majority.
	Suspicious FinalVerdict = iota
	// FinalPhishing is a majority Phishing decision.
	FinalPhishing
	// FinalLegitimate is a majority Legitimate decision.
	FinalLegitimate
)

func (f FinalVerdict) String() string {
	switch f {
	case FinalPhishing:
		return "Phishing"
	case FinalLegitimate:
		return "Legitimate"
	default:
		return "Suspicious"
	}
}

// MarshalText encodes the final verdict as its label.
func (f FinalVerdict) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a label produced by MarshalText.
func (f *FinalVerdict) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Phishing":
		*f = FinalPhishing
	case "Legitimate":
		*f = FinalLegitimate
	case "Suspicious":
		*f = Suspicious
	default:
		return fmt.Errorf("%w: %q", errUnknownLabel, text)
	}
	return nil
}
