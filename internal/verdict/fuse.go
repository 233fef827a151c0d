// Package verdict combines the local model vote with the reputation votes.
package verdict

import "github.com/Bahjat/phish-verdict/internal/model"

// FromLabel maps the classifier's binary output onto a vote.
func FromLabel(phishing bool) model.Verdict {
	if phishing {
		return model.Phishing
	}
	return model.Legitimate
}

// Fuse returns the 2-of-3 majority over the three votes. Unknown votes count
// for neither side, so a single definite vote never wins on its own.
func Fuse(local, a, b model.Verdict) model.FinalVerdict {
	var phishing, legitimate int
	for _, v := range [...]model.Verdict{local, a, b} {
		switch v {
		case model.Phishing:
			phishing++
		case model.Legitimate:
			legitimate++
		case model.Unknown:
		}
	}

	switch {
	case phishing >= 2:
		return model.FinalPhishing
	case legitimate >= 2:
		return model.FinalLegitimate
	default:
		return model.Suspicious
	}
}
