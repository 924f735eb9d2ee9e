package engine

import (
	"context"
	"slices"

	"github.com/CompassSecurity/commitleak/pkg/format"
	"github.com/CompassSecurity/commitleak/pkg/scanner/types"
	"github.com/rs/zerolog/log"
	"github.com/trufflesecurity/trufflehog/v3/pkg/engine/defaults"
	"github.com/wandb/parallel"
)

// DetectWithTruffleHog runs the TruffleHog default detectors over the same
// text as the pattern matcher and maps their results into findings. Verified
// results are reported as high confidence, unverified ones as medium. A
// failing detector is logged and contributes zero findings.
func DetectWithTruffleHog(ctx context.Context, text string, maxThreads int, verify bool) []types.Finding {
	data := []byte(text)
	group := parallel.Collect[[]types.Finding](parallel.Limited(ctx, maxThreads))

	for _, detector := range defaults.DefaultDetectors() {
		group.Go(func(ctx context.Context) ([]types.Finding, error) {
			findings := []types.Finding{}
			results, err := detector.FromData(ctx, verify, data)
			if err != nil {
				log.Debug().Err(err).Msg("TruffleHog detector failed")
				return findings, nil
			}

			for _, result := range results {
				secret := result.Raw
				if len(result.RawV2) > 0 {
					secret = result.RawV2
				}

				if !result.Verified && verify {
					continue
				}

				confidence := types.ConfidenceMedium
				if result.Verified {
					confidence = types.ConfidenceHigh
				}

				snippet := format.TruncateString(string(secret), MaxSnippetLength)
				findings = append(findings, types.Finding{
					Line:       LocateLine(text, snippet),
					Snippet:    snippet,
					Type:       result.DetectorType.String(),
					Rationale:  "TruffleHog " + result.DetectorType.String() + " detector match",
					Confidence: confidence,
					Source:     types.SourceTruffleHog,
				})
			}
			return findings, nil
		})
	}

	results, err := group.Wait()
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed waiting for TruffleHog detection")
	}

	return slices.Concat(results...)
}
