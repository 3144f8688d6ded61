package registry

import (
	"fmt"
	"strings"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/sahilmgandhi/rtk/internal/engine/parse"
)

// decodeSarif is the structured document decoder for SARIF v2.1.0 output.
// A syntactically valid JSON document that is not a SARIF report (no runs)
// is a schema violation and therefore a strict failure.
func decodeSarif(data []byte) ([]parse.Record, error) {
	report, err := sarif.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding SARIF: %w", err)
	}
	if len(report.Runs) == 0 {
		return nil, fmt.Errorf("document has no SARIF runs")
	}

	var records []parse.Record
	for _, run := range report.Runs {
		for _, res := range run.Results {
			level := "info"
			if res.Level != nil {
				level = *res.Level
			}

			kind := parse.KindInfo
			switch strings.ToLower(level) {
			case "error":
				kind = parse.KindError
			case "warning":
				kind = parse.KindWarning
			}

			rec := parse.Record{Kind: kind}
			if res.RuleID != nil {
				rec.Code = *res.RuleID
			}
			if res.Message.Text != nil {
				rec.Message = *res.Message.Text
			}

			if len(res.Locations) > 0 {
				if phys := res.Locations[0].PhysicalLocation; phys != nil {
					loc := parse.Location{}
					if phys.ArtifactLocation != nil && phys.ArtifactLocation.URI != nil {
						loc.File = *phys.ArtifactLocation.URI
					}
					if phys.Region != nil {
						if phys.Region.StartLine != nil {
							loc.Line = *phys.Region.StartLine
						}
						if phys.Region.StartColumn != nil {
							loc.Column = *phys.Region.StartColumn
						}
					}
					if loc != (parse.Location{}) {
						rec.Loc = &loc
					}
				}
			}

			records = append(records, rec)
		}
	}
	return records, nil
}
