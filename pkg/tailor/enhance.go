package tailor

import (
	"context"
	"encoding/json"

	"github.com/kriti1799/Resume-Builder/pkg/profile"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// maxGrowthFactor bounds how much longer the enhanced content may be than
// the source. A rewrite that balloons past this would no longer fit the
// page, so the source content is kept instead.
const maxGrowthFactor = 2

// enhance runs Stage 1 and enforces its contract: the output may only
// reword facts already in the profile, must not introduce sections absent
// from the input, and must stay close to the source length. Any failure
// degrades to the unmodified source profile.
func (p *Pipeline) enhance(ctx context.Context, prof profile.CandidateProfile, jobDescription string) (enhancedJSON []byte) {
	sourceJSON, err := json.Marshal(prof)
	if err != nil {
		// A schema struct always marshals; guard anyway.
		enhancedJSON = []byte(`{}`)
		return enhancedJSON
	}

	enhancedJSON, err = p.rewriter.Enhance(ctx, sourceJSON, jobDescription)
	if err != nil {
		enhancedJSON = sourceJSON
		return enhancedJSON
	}

	if len(enhancedJSON) > maxGrowthFactor*len(sourceJSON) {
		enhancedJSON = sourceJSON
		return enhancedJSON
	}

	enhancedJSON = pruneSections(enhancedJSON, prof.NonEmptySections())
	return enhancedJSON
}

// pruneSections deletes any top-level key the source profile does not
// populate, so the enhance stage can never invent a section.
func pruneSections(enhancedJSON []byte, allowed []string) (pruned []byte) {
	pruned = enhancedJSON

	allowedSet := make(map[string]bool, len(allowed))
	for _, key := range allowed {
		allowedSet[key] = true
	}

	var extra []string
	gjson.ParseBytes(pruned).ForEach(func(key, _ gjson.Result) bool {
		if !allowedSet[key.String()] {
			extra = append(extra, key.String())
		}
		return true
	})

	for _, key := range extra {
		out, err := sjson.DeleteBytes(pruned, key)
		if err == nil {
			pruned = out
		}
	}

	return pruned
}
