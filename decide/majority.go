package decide

import "github.com/confsift/confsift"

// MajorityVote aggregates per-table verdicts into a page verdict by
// simple majority. This is the alternate page policy for table-only
// pages; DecidePage remains the primary one. A page with no tables is
// gibberish, ties break toward USEFUL.
func MajorityVote(verdicts []confsift.Verdict) confsift.Verdict {
	if len(verdicts) == 0 {
		return confsift.VerdictGibberish
	}

	useful, gibberish := 0, 0
	for _, v := range verdicts {
		switch v {
		case confsift.VerdictUseful:
			useful++
		case confsift.VerdictGibberish:
			gibberish++
		}
	}

	half := float64(len(verdicts)) * 0.5
	if float64(useful) >= half {
		return confsift.VerdictUseful
	}
	if float64(gibberish) >= half {
		return confsift.VerdictGibberish
	}
	return confsift.VerdictCantDecide
}
