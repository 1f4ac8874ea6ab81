// steps.go — optional diagnostic rendering of the classification table.
package gosaddle

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// writeSteps renders one row per stationary point with the symbolic
// condition each classification imposes, A and B still free. Presentation
// only — nothing here feeds back into the search.
func (c *Calculator) writeSteps(w io.Writer, cond pointConditions) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Point\tType\tf_xx\tf_xx*f_yy-f_xy^2")
	fmt.Fprintf(tw, "%s\tMaximum\t%s < 0\t%s > 0\n", coords(c.maximum), cond.fxxMax, cond.dMax)
	fmt.Fprintf(tw, "%s\tMinimum\t%s > 0\t%s > 0\n", coords(c.minimum), cond.fxxMin, cond.dMin)
	fmt.Fprintf(tw, "%s\tSaddle\t%s != 0\t%s < 0\n", coords(c.saddle), cond.fxxSaddle, cond.dSaddle)
	tw.Flush()
}

func coords(p [2]float64) string {
	return "(" + strconv.FormatFloat(p[0], 'g', -1, 64) + ", " + strconv.FormatFloat(p[1], 'g', -1, 64) + ")"
}
