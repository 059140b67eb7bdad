package engine

import "fmt"

// String renders the report in its fixed field order. V-Base carries the
// always-zero "SCC reuse time" field and a flat index-byte total;
// V-Shared drops the reuse-time field and instead breaks the index-byte
// line into "total (fabricBytes)" — both are output-shape quirks
// inherited from the two original binaries (see DESIGN.md). The
// index-bytes-then-SCC-reuse-time order below matches main_2dreach.cpp's
// own print sequence (Index size before SCC reuse time), not the
// reverse.
func (r *Report) String() string {
	indexLine := fmt.Sprintf("%d", r.TotalIndexBytes)
	sccLine := ""
	if r.MethodName == "2DReach" {
		sccLine = fmt.Sprintf("SCC reuse time (s): %.10f\n", r.SCCReuseSeconds)
	} else {
		indexLine = fmt.Sprintf("%d (%d)", r.TotalIndexBytes, r.FabricBytes)
	}

	return fmt.Sprintf(
		"input prefix: %s\n"+
			"query file: %s\n"+
			"method: %s\n"+
			"indexing time (s): %.10f\n"+
			"total index bytes: %s\n"+
			"%s"+
			"components: %d\n"+
			"stored points: %d\n"+
			"queries: %d\n"+
			"true answers: %d\n"+
			"average query time (s): %.10f\n",
		r.InputPrefix,
		r.QueryFile,
		r.MethodName,
		r.IndexingSeconds,
		indexLine,
		sccLine,
		r.NumComponents,
		r.TotalStoredPoints,
		r.NumQueries,
		r.NumTrueAnswers,
		r.AverageQuerySeconds,
	)
}
